package allocation

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestElectiveAllocator(t *testing.T) {
	newAllocator := func(schedulingContext *model.SchedulingContext, seed uint64, options Options) *electiveAllocator {
		options = options.withDefaults()
		return newElectiveAllocator(
			schedulingContext.Table,
			rationalityJudge{enforceProhibit: options.EnforceProhibit},
			newWeightedSampler(rand.NewPCG(seed, seed)),
			options,
			zap.NewNop(),
		)
	}

	t.Run("Participants share every placement", func(t *testing.T) {
		for seed := range uint64(20) {
			//** Arrange
			schedulingContext := contextFromYaml(t, electiveSettings)
			require.NoError(t, applyAdvanceDecisions(schedulingContext.AdvanceDecisions, schedulingContext.Classes, zap.NewNop()))
			allocator := newAllocator(schedulingContext, seed, DefaultOptions())

			//** Act
			err := allocator.Allocate(schedulingContext.Electives)

			//** Assert
			require.NoError(t, err)
			walk, _ := schedulingContext.Course("Walk")
			teacher, _ := schedulingContext.Teacher("TW")
			first, _ := schedulingContext.Class("1")
			second, _ := schedulingContext.Class("2")

			g := NewWithT(t)
			times := walkTimes(first, walk)
			g.Expect(times).To(HaveLen(2))
			g.Expect(times).To(Equal(walkTimes(second, walk)))
			g.Expect(times).NotTo(ContainElement(model.CourseTime{Day: 1, Slot: 1}))
			g.Expect(times[0].Day).NotTo(Equal(times[1].Day)) // Daily maximum of 1
			g.Expect(teacher.Busy()).To(HaveLen(2))
		}
	})

	t.Run("Unwilling teacher exhausts the grid", func(t *testing.T) {
		//** Arrange
		schedulingContext := contextFromYaml(t, unwillingElectiveSettings)
		allocator := newAllocator(schedulingContext, 1, DefaultOptions())

		//** Act
		err := allocator.Allocate(schedulingContext.Electives)

		//** Assert
		var exhaustion *model.ExhaustionError
		require.True(t, errors.As(err, &exhaustion))
		assert.Equal(t, "1,2", exhaustion.Diagnostic.Class)
		assert.Equal(t, []string{"Walk"}, exhaustion.Diagnostic.Pool)
		assert.Equal(t, 3, exhaustion.Diagnostic.Attempts) // Both times rejected, then nothing is left
		for _, class := range schedulingContext.Classes {
			assert.Empty(t, class.Decided()) // Nothing was committed
		}
	})

	t.Run("Retry ceiling", func(t *testing.T) {
		//** Arrange
		schedulingContext := contextFromYaml(t, unwillingElectiveSettings)
		options := DefaultOptions()
		options.MaxElectiveAttempts = 1
		allocator := newAllocator(schedulingContext, 1, options)

		//** Act
		err := allocator.Allocate(schedulingContext.Electives)

		//** Assert
		var exhaustion *model.ExhaustionError
		require.True(t, errors.As(err, &exhaustion))
		assert.Contains(t, exhaustion.Error(), "retry ceiling")
		assert.Equal(t, 1, exhaustion.Diagnostic.Attempts)
	})
}

const unwillingElectiveSettings = `
weekdays: 1
course_schedule:
  - probability: [1, 0, 0, 0, 0]
  - probability: [1, 0, 0, 0, 0]
courses:
  - {name: Math, mode: 0, max_daily_courses: 1}
elective_courses:
  - {name: Walk, max_daily_courses: 1, teacher_name: TW, relation_classes: ["1", "2"]}
teachers:
  - {name: T1, course: [Math]}
  - {name: T2, course: [Math]}
  - {name: TW, course: [Walk], unwilling: [1, 2]}
classes:
  - {number: "1", mode: 0, teachers: [{course: Math, teacher: T1}]}
  - {number: "2", mode: 0, teachers: [{course: Math, teacher: T2}]}
course_hours:
  arts: [{course: Math, hours: 1}]
  science: []
`

func walkTimes(class *model.Class, walk *model.Course) []model.CourseTime {
	times := make([]model.CourseTime, 0)
	for _, assignment := range class.Assignments() {
		if assignment.Course == walk.Name {
			times = append(times, assignment.Time())
		}
	}
	return times
}
