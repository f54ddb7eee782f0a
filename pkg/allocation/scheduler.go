package allocation

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Timetabler interface {
	Build(
		schedulingContext *model.SchedulingContext,
	) (timetable model.Timetable, err error)

	Verify(
		schedulingContext *model.SchedulingContext,
		timetable model.Timetable,
	) bool
}

type Phase int

const (
	Idle Phase = iota
	Seeding
	ElectivePlacement
	PerClassAllocation
	Done
	Aborted
)

var phaseNames = map[Phase]string{
	Idle:               "idle",
	Seeding:            "seeding",
	ElectivePlacement:  "elective-placement",
	PerClassAllocation: "per-class-allocation",
	Done:               "done",
	Aborted:            "aborted",
}

func (phase Phase) String() string {
	return phaseNames[phase]
}

// GreedyTimetabler fills every class slot by slot with weighted random draws. It runs once and is not safe for concurrent use.
type GreedyTimetabler struct {
	seed       uint64
	options    Options
	logger     *zap.Logger
	sampler    *weightedSampler
	judge      rationalityJudge
	phase      Phase
	diagnostic *model.Diagnostic
}

func NewGreedyTimetabler(seed uint64, options Options, logger *zap.Logger) *GreedyTimetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	options = options.withDefaults()
	return &GreedyTimetabler{
		seed:    seed,
		options: options,
		logger:  logger,
		sampler: newWeightedSampler(rand.NewPCG(seed, seed)),
		judge:   rationalityJudge{enforceProhibit: options.EnforceProhibit},
		phase:   Idle,
	}
}

func (timetabler *GreedyTimetabler) Phase() Phase {
	return timetabler.phase
}

// Diagnostic returns the allocation state captured when the run was aborted by exhaustion
func (timetabler *GreedyTimetabler) Diagnostic() (model.Diagnostic, bool) {
	if timetabler.diagnostic == nil {
		return model.Diagnostic{}, false
	}
	return *timetabler.diagnostic, true
}

func (timetabler *GreedyTimetabler) Build(schedulingContext *model.SchedulingContext) (model.Timetable, error) {
	if timetabler.phase != Idle {
		return model.Timetable{}, fmt.Errorf("timetabler already ran (phase %v): build a new one for every run", timetabler.phase)
	}

	runId := uuid.NewString()
	logger := timetabler.logger.With(zap.String("run_id", runId), zap.Uint64("seed", timetabler.seed))

	timetable, err := timetabler.build(schedulingContext, logger)
	if err != nil {
		timetabler.phase = Aborted
		fields := []zap.Field{zap.Error(err)}
		if exhaustion := (*model.ExhaustionError)(nil); errors.As(err, &exhaustion) {
			timetabler.diagnostic = &exhaustion.Diagnostic
			fields = append(fields,
				zap.String("class", exhaustion.Diagnostic.Class),
				zap.Uint64("day", exhaustion.Diagnostic.Day),
				zap.Uint64("slot", exhaustion.Diagnostic.Slot),
				zap.Strings("pool", exhaustion.Diagnostic.Pool),
				zap.Float64s("weights", exhaustion.Diagnostic.Weights),
				zap.Int("attempts", exhaustion.Diagnostic.Attempts),
			)
		}
		logger.Error("timetable construction aborted", fields...)
		return model.Timetable{}, err
	}

	timetable.RunId = runId
	timetabler.enter(Done, logger)
	return timetable, nil
}

func (timetabler *GreedyTimetabler) build(schedulingContext *model.SchedulingContext, logger *zap.Logger) (model.Timetable, error) {
	if err := checkBindings(schedulingContext); err != nil {
		return model.Timetable{}, err
	}

	//** Seed advance decisions
	timetabler.enter(Seeding, logger)
	if err := applyAdvanceDecisions(schedulingContext.AdvanceDecisions, schedulingContext.Classes, logger); err != nil {
		return model.Timetable{}, err
	}

	//** Place electives
	timetabler.enter(ElectivePlacement, logger)
	electives := newElectiveAllocator(schedulingContext.Table, timetabler.judge, timetabler.sampler, timetabler.options, logger)
	if err := electives.Allocate(schedulingContext.Electives); err != nil {
		return model.Timetable{}, err
	}

	//** Allocate every class in input order
	timetabler.enter(PerClassAllocation, logger)
	probability := newProbabilityModel(schedulingContext.Table, timetabler.options.DecayFactor)
	carry := make(map[string]float64) // Shared across days and classes
	for _, class := range schedulingContext.Classes {
		if unplaceable, err := unplaceableHours(class, schedulingContext.Table, timetabler.judge); err != nil {
			return model.Timetable{}, err
		} else if unplaceable > 0 {
			logger.Warn("class has hours that fit no free slot", zap.String("class", class.Number), zap.Int("hours", unplaceable))
		}
		if err := timetabler.allocateClass(class, schedulingContext.Table, probability, carry, logger); err != nil {
			return model.Timetable{}, err
		}
		logger.Info("class allocated", zap.String("class", class.Number))
	}

	return model.TimetableFromContext("", timetabler.seed, schedulingContext), nil
}

func (timetabler *GreedyTimetabler) Verify(schedulingContext *model.SchedulingContext, timetable model.Timetable) bool {
	return verify(schedulingContext, timetable, timetabler.logger)
}

func (timetabler *GreedyTimetabler) enter(phase Phase, logger *zap.Logger) {
	logger.Info("phase transition", zap.Stringer("from", timetabler.phase), zap.Stringer("to", phase))
	timetabler.phase = phase
}

func (timetabler *GreedyTimetabler) allocateClass(
	class *model.Class,
	table *model.CourseTable,
	probability *probabilityModel,
	carry map[string]float64,
	logger *zap.Logger,
) error {
	pool := coursePool(class, table)

	for day := uint64(1); day <= table.Weekdays; day++ {
		suppressed := make(map[string]bool) // Day-scoped
		for slot := uint64(1); slot <= table.Depth; slot++ {
			time := model.CourseTime{Day: day, Slot: slot}
			if classBusyAt(class, time) {
				continue
			}

			var weights []float64
			if slot == 1 {
				weights = probability.carriedWeights(pool, carry)
			} else {
				weights = probability.initWeights(pool, slot)
			}

			index, err := timetabler.draw(class, time, pool, weights, suppressed)
			if err != nil {
				return err
			}

			course := pool[index]
			teacher, err := boundTeacher(class, course)
			if err != nil {
				return err
			}
			if err := teacher.MarkBusy(time, course); err != nil {
				return err
			}
			if err := class.Decide(time, course); err != nil {
				return err
			}
			logger.Debug("course placed",
				zap.String("class", class.Number),
				zap.String("course", course.Name),
				zap.String("teacher", teacher.Name),
				zap.Uint64("day", day),
				zap.Uint64("slot", slot),
			)

			pool = slices.Delete(pool, index, index+1)
			weights = probability.decay(slices.Delete(weights, index, index+1))
			for i, weight := range weights {
				if weight > 0 {
					carry[pool[i].Name] = weight
				}
			}
		}
	}

	if len(pool) > 0 {
		return fmt.Errorf("class \"%v\" has %d course hours left after the week was filled", class.Number, len(pool))
	}
	return nil
}

// draw samples the pool until the judge accepts a course for the time. Rejected courses are excluded for this slot, suppressed ones for the rest of the day.
func (timetabler *GreedyTimetabler) draw(
	class *model.Class,
	time model.CourseTime,
	pool []*model.Course,
	weights []float64,
	suppressed map[string]bool,
) (int, error) {
	rejected := make(map[string]bool)

	for attempt := 1; attempt <= timetabler.options.MaxDrawAttempts; attempt++ {
		eligible := lo.Map(weights, func(weight float64, i int) float64 {
			if suppressed[pool[i].Name] || rejected[pool[i].Name] {
				return 0
			}
			return weight
		})

		index, err := timetabler.sampler.Choose(eligible)
		if err != nil {
			return -1, exhausted(class, time, pool, eligible, attempt, "no admissible course is left", err)
		}

		course := pool[index]
		teacher, err := boundTeacher(class, course)
		if err != nil {
			return -1, err
		}
		switch outcome := timetabler.judge.Judge(course, time.Slot, teacher, time, class); outcome {
		case Accepted:
			return index, nil
		case RejectedSuppress:
			suppressed[course.Name] = true
		default:
			rejected[course.Name] = true
		}
	}

	return -1, exhausted(class, time, pool, weights, timetabler.options.MaxDrawAttempts, "draw attempt ceiling reached", nil)
}

// boundTeacher returns the teacher bound to the course in the class. Contexts assembled through the model API may lack a binding.
func boundTeacher(class *model.Class, course *model.Course) (*model.Teacher, error) {
	teacher, ok := class.TeacherFor(course)
	if !ok {
		return nil, &model.ConfigurationError{Reason: fmt.Sprintf("class \"%v\" has no teacher bound to course \"%v\"", class.Number, course.Name)}
	}
	return teacher, nil
}

// checkBindings makes sure every drawable course and every elective has a teacher in each of its classes before anything is allocated
func checkBindings(schedulingContext *model.SchedulingContext) error {
	for _, class := range schedulingContext.Classes {
		for _, course := range lo.Uniq(coursePool(class, schedulingContext.Table)) {
			if _, err := boundTeacher(class, course); err != nil {
				return err
			}
		}
	}
	for _, elective := range schedulingContext.Electives {
		for _, class := range elective.Classes {
			if _, err := boundTeacher(class, elective.Course); err != nil {
				return err
			}
		}
	}
	return nil
}

// coursePool expands the class's remaining hours into one entry per hour, dropping courses that can never be drawn
func coursePool(class *model.Class, table *model.CourseTable) []*model.Course {
	pool := make([]*model.Course, 0)
	for _, hours := range class.Hours() {
		if !hours.Course.Mode.Drawable() || !table.Drawable(hours.Course.Mode) {
			continue
		}
		for range hours.Hours {
			pool = append(pool, hours.Course)
		}
	}
	return pool
}

func exhausted(class *model.Class, time model.CourseTime, pool []*model.Course, weights []float64, attempts int, reason string, err error) error {
	return &model.ExhaustionError{
		Reason: fmt.Sprintf("cannot fill %v of class \"%v\": %v", time, class.Number, reason),
		Diagnostic: model.Diagnostic{
			Class:    class.Number,
			Day:      time.Day,
			Slot:     time.Slot,
			Pool:     lo.Map(pool, func(course *model.Course, _ int) string { return course.Name }),
			Weights:  slices.Clone(weights),
			Attempts: attempts,
		},
		Err: err,
	}
}
