package allocation

import (
	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// unplaceableHours matches every pooled course hour of the class to a distinct free time where its teacher is willing
// and its mode has a positive weight. It returns how many hours are left out of the largest matching, which is a lower
// bound on the hours the greedy allocation cannot place. Daily maximums and teachers shared with other classes are ignored.
func unplaceableHours(class *model.Class, table *model.CourseTable, judge rationalityJudge) (int, error) {
	pool := coursePool(class, table)
	if len(pool) == 0 {
		return 0, nil
	}
	free := lo.Filter(table.Times(), func(time model.CourseTime, _ int) bool {
		return !classBusyAt(class, time)
	})
	if len(free) == 0 {
		return len(pool), nil
	}

	// Build neighbors predicate from the static constraints of each course
	neighbors := func(courseAny any, timeAny any) (bool, error) {
		course := courseAny.(*model.Course)
		time := timeAny.(model.CourseTime)

		teacher, ok := class.TeacherFor(course)
		if !ok || teacher.Unwilling(time.Slot) {
			return false, nil
		}
		if judge.enforceProhibit && course.Prohibited(time.Slot) {
			return false, nil
		}
		return table.Weight(time.Slot, course.Mode) > 0, nil
	}

	// Transform hours and times to slices of any
	hoursAny, timesAny := lo.Map(pool, func(course *model.Course, _ int) any { return course }), lo.Map(free, func(time model.CourseTime, _ int) any { return time })

	graph, err := bipartitegraph.NewBipartiteGraph(hoursAny, timesAny, neighbors)
	if err != nil {
		return 0, err
	}

	matching := graph.LargestMatching()
	return len(pool) - len(matching), nil
}
