package allocation

import (
	"slices"
	"testing"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	// Builds a valid timetable for the elective settings and returns its context
	build := func(t *testing.T) (*model.SchedulingContext, model.Timetable) {
		schedulingContext := contextFromYaml(t, electiveSettings)
		timetable, err := NewGreedyTimetabler(11, DefaultOptions(), nil).Build(schedulingContext)
		require.NoError(t, err)
		return schedulingContext, timetable
	}

	// Deep copy so every tampering stays local to its subtest
	tamper := func(timetable model.Timetable, class int, mutate func([]model.Assignment) []model.Assignment) model.Timetable {
		copied := timetable
		copied.Classes = slices.Clone(timetable.Classes)
		copied.Classes[class].Assignments = mutate(slices.Clone(timetable.Classes[class].Assignments))
		return copied
	}

	indexOf := func(assignments []model.Assignment, course string) int {
		return slices.IndexFunc(assignments, func(assignment model.Assignment) bool { return assignment.Course == course })
	}

	t.Run("Valid timetable", func(t *testing.T) {
		schedulingContext, timetable := build(t)
		assert.True(t, verify(schedulingContext, timetable, nil))
	})

	t.Run("Incomplete class", func(t *testing.T) {
		schedulingContext, timetable := build(t)
		tampered := tamper(timetable, 0, func(assignments []model.Assignment) []model.Assignment {
			return assignments[1:]
		})
		assert.False(t, verify(schedulingContext, tampered, nil))
	})

	t.Run("Advance decision moved", func(t *testing.T) {
		schedulingContext, timetable := build(t)
		tampered := tamper(timetable, 1, func(assignments []model.Assignment) []model.Assignment {
			flag, math := indexOf(assignments, "Flag"), indexOf(assignments, "Math")
			assignments[flag].Course, assignments[math].Course = "Math", "Flag"
			assignments[flag].Teacher, assignments[math].Teacher = assignments[math].Teacher, ""
			return assignments
		})
		assert.False(t, verify(schedulingContext, tampered, nil))
	})

	t.Run("Elective out of sync", func(t *testing.T) {
		schedulingContext, timetable := build(t)
		tampered := tamper(timetable, 0, func(assignments []model.Assignment) []model.Assignment {
			walk, math := indexOf(assignments, "Walk"), indexOf(assignments, "Math")
			assignments[walk].Course, assignments[math].Course = assignments[math].Course, assignments[walk].Course
			assignments[walk].Teacher, assignments[math].Teacher = assignments[math].Teacher, assignments[walk].Teacher
			return assignments
		})
		assert.False(t, verify(schedulingContext, tampered, nil))
	})

	t.Run("Teacher double-booked", func(t *testing.T) {
		schedulingContext, timetable := build(t)
		tampered := tamper(timetable, 1, func(assignments []model.Assignment) []model.Assignment {
			for i := range assignments {
				if assignments[i].Course == "Math" {
					assignments[i].Teacher = "T1" // Teaches class 1 at the same times
				}
			}
			return assignments
		})
		assert.False(t, verify(schedulingContext, tampered, nil))
	})

	t.Run("Daily maximum exceeded", func(t *testing.T) {
		schedulingContext := contextFromYaml(t, dailyMaxSettings)
		timetable := model.Timetable{Classes: []model.ClassTimetable{{
			Class: "1",
			Track: "arts",
			Assignments: []model.Assignment{
				{Day: 1, Slot: 1, Course: "A", Teacher: "TA"},
				{Day: 1, Slot: 2, Course: "A", Teacher: "TA"},
				{Day: 2, Slot: 1, Course: "B", Teacher: "TB"},
				{Day: 2, Slot: 2, Course: "B", Teacher: "TB"},
			},
		}}}
		assert.False(t, verify(schedulingContext, timetable, nil))
	})

	t.Run("Unwilling slot", func(t *testing.T) {
		schedulingContext := contextFromYaml(t, unwillingSettings)
		timetable := model.Timetable{Classes: []model.ClassTimetable{{
			Class: "1",
			Track: "arts",
			Assignments: []model.Assignment{
				{Day: 1, Slot: 1, Course: "B", Teacher: "TB"},
				{Day: 1, Slot: 2, Course: "A", Teacher: "TA"},
				{Day: 2, Slot: 1, Course: "A", Teacher: "TA"},
				{Day: 2, Slot: 2, Course: "B", Teacher: "TB"},
			},
		}}}
		assert.False(t, verify(schedulingContext, timetable, nil))
	})
}
