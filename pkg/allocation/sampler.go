package allocation

import (
	"math/rand/v2"
	"sort"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
)

// weightedSampler draws indices proportionally to their weights using a cumulative-weight table over an injected source
type weightedSampler struct {
	random *rand.Rand
}

func newWeightedSampler(source rand.Source) *weightedSampler {
	return &weightedSampler{random: rand.New(source)}
}

// Choose returns an index whose weight is positive. Non-positive weights are never chosen.
func (sampler *weightedSampler) Choose(weights []float64) (int, error) {
	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, weight := range weights {
		if weight > 0 {
			total += weight
		}
		cumulative[i] = total
	}
	if total <= 0 {
		return -1, model.ErrZeroWeights
	}

	// First index whose cumulative weight strictly exceeds the target; zero-weight entries never satisfy it first
	target := sampler.random.Float64() * total
	index := sort.Search(len(cumulative), func(i int) bool {
		return cumulative[i] > target
	})
	if index == len(cumulative) { // Guards against rounding at the upper end
		index = lastPositive(weights)
	}
	return index, nil
}

// IntN returns a uniform integer in [0, n)
func (sampler *weightedSampler) IntN(n int) int {
	return sampler.random.IntN(n)
}

func lastPositive(weights []float64) int {
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
