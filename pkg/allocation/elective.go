package allocation

import (
	"fmt"
	"strings"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type electiveAllocator struct {
	table    *model.CourseTable
	judge    rationalityJudge
	sampler  *weightedSampler
	options  Options
	logger   *zap.Logger
	chosen   map[model.CourseTime]bool // Times already taken by any elective during this run
	lastTime model.CourseTime
}

func newElectiveAllocator(table *model.CourseTable, judge rationalityJudge, sampler *weightedSampler, options Options, logger *zap.Logger) *electiveAllocator {
	return &electiveAllocator{
		table:   table,
		judge:   judge,
		sampler: sampler,
		options: options,
		logger:  logger,
		chosen:  make(map[model.CourseTime]bool),
	}
}

func (allocator *electiveAllocator) Allocate(electives []model.Elective) error {
	for _, elective := range electives {
		for range elective.Hours {
			time, err := allocator.place(elective)
			if err != nil {
				return err
			}
			allocator.chosen[time] = true
		}
	}
	return nil
}

// place draws random times until every participating class accepts one, then commits it to all of them at once
func (allocator *electiveAllocator) place(elective model.Elective) (model.CourseTime, error) {
	rejected := make(map[model.CourseTime]bool)
	excludedDays := make(map[uint64]bool)
	allocator.lastTime = model.CourseTime{}

	for attempt := 1; attempt <= allocator.options.MaxElectiveAttempts; attempt++ {
		candidates := lo.Filter(allocator.table.Times(), func(time model.CourseTime, _ int) bool {
			return !allocator.chosen[time] && !rejected[time] && !excludedDays[time.Day]
		})
		if len(candidates) == 0 {
			return model.CourseTime{}, allocator.exhausted(elective, attempt, "no time is left that suits every participating class")
		}

		time := candidates[allocator.sampler.IntN(len(candidates))]
		allocator.lastTime = time

		outcome, err := allocator.evaluate(elective, time)
		if err != nil {
			return model.CourseTime{}, err
		}
		if outcome.Admissible() {
			if err := allocator.commit(elective, time); err != nil {
				return model.CourseTime{}, err
			}
			allocator.logger.Debug("elective placed",
				zap.String("course", elective.Course.Name),
				zap.Uint64("day", time.Day),
				zap.Uint64("slot", time.Slot),
				zap.Int("attempts", attempt),
			)
			return time, nil
		}

		rejected[time] = true
		if outcome.Suppress() && allocator.options.ElectiveSuppression {
			excludedDays[time.Day] = true
		}
	}

	return model.CourseTime{}, allocator.exhausted(elective, allocator.options.MaxElectiveAttempts, "retry ceiling reached")
}

// evaluate judges the time for every participating class against the state before commit
func (allocator *electiveAllocator) evaluate(elective model.Elective, time model.CourseTime) (Outcome, error) {
	for _, class := range elective.Classes {
		if classBusyAt(class, time) {
			return RejectedRetry, nil
		}
		teacher, err := boundTeacher(class, elective.Course)
		if err != nil {
			return RejectedRetry, err
		}
		if outcome := allocator.judge.Judge(elective.Course, time.Slot, teacher, time, class); !outcome.Admissible() {
			return outcome, nil
		}
	}
	return Accepted, nil
}

func (allocator *electiveAllocator) commit(elective model.Elective, time model.CourseTime) error {
	for _, class := range elective.Classes {
		if err := class.Decide(time, elective.Course); err != nil {
			return err
		}
	}

	// Participating classes commonly share the elective's teacher, who is marked busy once
	teachers := lo.Uniq(lo.FilterMap(elective.Classes, func(class *model.Class, _ int) (*model.Teacher, bool) {
		return class.TeacherFor(elective.Course)
	}))
	for _, teacher := range teachers {
		if err := teacher.MarkBusy(time, elective.Course); err != nil {
			return err
		}
	}
	return nil
}

func (allocator *electiveAllocator) exhausted(elective model.Elective, attempts int, reason string) error {
	classes := lo.Map(elective.Classes, func(class *model.Class, _ int) string { return class.Number })
	return &model.ExhaustionError{
		Reason: fmt.Sprintf("cannot place elective \"%v\": %v", elective.Course.Name, reason),
		Diagnostic: model.Diagnostic{
			Class:    strings.Join(classes, ","),
			Day:      allocator.lastTime.Day,
			Slot:     allocator.lastTime.Slot,
			Pool:     []string{elective.Course.Name},
			Attempts: attempts,
		},
	}
}
