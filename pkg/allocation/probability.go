package allocation

import (
	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/samber/lo"
)

type probabilityModel struct {
	table       *model.CourseTable
	decayFactor float64
}

func newProbabilityModel(table *model.CourseTable, decayFactor float64) *probabilityModel {
	return &probabilityModel{
		table:       table,
		decayFactor: decayFactor,
	}
}

// initWeights returns a vector parallel to courses holding each course's static weight at the slot-position
func (probability *probabilityModel) initWeights(courses []*model.Course, slot uint64) []float64 {
	return lo.Map(courses, func(course *model.Course, _ int) float64 {
		return probability.table.Weight(slot, course.Mode)
	})
}

// carriedWeights seeds the first slot of a day: the last known weight of every course, or its static weight if none is known
func (probability *probabilityModel) carriedWeights(courses []*model.Course, carry map[string]float64) []float64 {
	return lo.Map(courses, func(course *model.Course, _ int) float64 {
		if weight, ok := carry[course.Name]; ok {
			return weight
		}
		return probability.table.Weight(1, course.Mode)
	})
}

// decay scales every weight by the decay factor and renormalizes the vector to sum 1. A zero vector is returned as is.
func (probability *probabilityModel) decay(weights []float64) []float64 {
	decayed := lo.Map(weights, func(weight float64, _ int) float64 {
		return weight * probability.decayFactor
	})
	return normalize(decayed)
}

func normalize(weights []float64) []float64 {
	total := lo.Sum(weights)
	if total <= 0 {
		return weights
	}
	return lo.Map(weights, func(weight float64, _ int) float64 {
		return weight / total
	})
}
