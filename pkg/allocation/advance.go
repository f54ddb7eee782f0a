package allocation

import (
	"fmt"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"go.uber.org/zap"
)

// applyAdvanceDecisions records every fixed placement and marks the bound teachers busy.
// Decisions without target classes apply to all classes.
func applyAdvanceDecisions(decisions []model.AdvanceDecision, classes []*model.Class, logger *zap.Logger) error {
	targets := func(decision model.AdvanceDecision) []*model.Class {
		if len(decision.Classes) == 0 {
			return classes
		}
		return decision.Classes
	}

	for _, decision := range decisions {
		for _, class := range targets(decision) {
			if err := class.Decide(decision.Time, decision.Course); err != nil {
				return fmt.Errorf("cannot apply advance decision \"%v\" at %v: %w", decision.Course.Name, decision.Time, err)
			}
		}
	}

	// Set teacher busy state
	for _, decision := range decisions {
		for _, class := range targets(decision) {
			teacher, ok := class.TeacherFor(decision.Course)
			if !ok { // Ceremonial courses may have no teacher
				continue
			}
			// A teacher shared by several target classes is marked once
			if teacher.BusyAt(decision.Time) {
				continue
			}
			if err := teacher.MarkBusy(decision.Time, decision.Course); err != nil {
				return err
			}
		}
		logger.Debug("advance decision applied",
			zap.String("course", decision.Course.Name),
			zap.Uint64("day", decision.Time.Day),
			zap.Uint64("slot", decision.Time.Slot),
			zap.Int("classes", len(targets(decision))),
		)
	}

	return nil
}
