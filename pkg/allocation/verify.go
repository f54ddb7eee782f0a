package allocation

import (
	"slices"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type teacherTime struct {
	teacher string
	time    model.CourseTime
}

type classCourseDay struct {
	class  string
	course string
	day    uint64
}

// verify checks a finished timetable against the scheduling context it was built from
func verify(schedulingContext *model.SchedulingContext, timetable model.Timetable, logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}
	reject := func(message string, fields ...zap.Field) bool {
		logger.Warn("timetable verification failed: "+message, fields...)
		return false
	}

	table := schedulingContext.Table

	//** Index advance decisions by (time, course)
	advanced := make(map[model.CourseTime]map[string]bool)
	for _, decision := range schedulingContext.AdvanceDecisions {
		if _, ok := advanced[decision.Time]; !ok {
			advanced[decision.Time] = make(map[string]bool)
		}
		advanced[decision.Time][decision.Course.Name] = true
	}

	if len(timetable.Classes) != len(schedulingContext.Classes) {
		return reject("class count mismatch", zap.Int("expected", len(schedulingContext.Classes)), zap.Int("actual", len(timetable.Classes)))
	}

	teacherAssistance := make(map[teacherTime]string) // Course taught by the teacher at the time
	dailyCount := make(map[classCourseDay]uint64)
	placements := make(map[string]map[string][]model.CourseTime) // Class -> course -> times

	for _, classTimetable := range timetable.Classes {
		class, ok := schedulingContext.Class(classTimetable.Class)
		if !ok {
			return reject("unknown class", zap.String("class", classTimetable.Class))
		}

		// Completeness and class double-booking
		if uint64(len(classTimetable.Assignments)) != table.Capacity() {
			return reject("class is not complete", zap.String("class", class.Number), zap.Int("assignments", len(classTimetable.Assignments)))
		}
		times := lo.Map(classTimetable.Assignments, func(assignment model.Assignment, _ int) model.CourseTime { return assignment.Time() })
		if len(lo.Uniq(times)) != len(times) {
			return reject("class is double-booked", zap.String("class", class.Number))
		}
		if !slices.IsSortedFunc(times, model.CourseTime.Compare) {
			return reject("assignments are not sorted", zap.String("class", class.Number))
		}

		placements[class.Number] = make(map[string][]model.CourseTime)
		for _, assignment := range classTimetable.Assignments {
			time := assignment.Time()
			if !table.Contains(time) {
				return reject("assignment outside of the grid", zap.String("class", class.Number), zap.Stringer("time", time))
			}
			course, ok := schedulingContext.Course(assignment.Course)
			if !ok {
				return reject("unknown course", zap.String("course", assignment.Course))
			}
			placements[class.Number][course.Name] = append(placements[class.Number][course.Name], time)

			isAdvanced := advanced[time][course.Name]
			if !isAdvanced {
				key := classCourseDay{class: class.Number, course: course.Name, day: time.Day}
				dailyCount[key]++
				if dailyCount[key] > course.DailyMax {
					return reject("daily maximum exceeded", zap.String("class", class.Number), zap.String("course", course.Name), zap.Uint64("day", time.Day))
				}
			}

			if assignment.Teacher == "" {
				if course.Mode != model.Ceremonial {
					return reject("course without teacher", zap.String("class", class.Number), zap.String("course", course.Name))
				}
				continue
			}
			teacher, ok := schedulingContext.Teacher(assignment.Teacher)
			if !ok {
				return reject("unknown teacher", zap.String("teacher", assignment.Teacher))
			}
			if teacher.Unwilling(time.Slot) {
				return reject("teacher placed at an unwilling slot", zap.String("teacher", teacher.Name), zap.Stringer("time", time))
			}

			// A teacher may only appear in several classes at once for a shared course
			key := teacherTime{teacher: teacher.Name, time: time}
			if taught, ok := teacherAssistance[key]; ok {
				shared := taught == course.Name && (course.Mode == model.Rotating || isAdvanced)
				if !shared {
					return reject("teacher is double-booked", zap.String("teacher", teacher.Name), zap.Stringer("time", time))
				}
			}
			teacherAssistance[key] = course.Name
		}
	}

	//** Advance decisions are kept in place
	for _, decision := range schedulingContext.AdvanceDecisions {
		targets := decision.Classes
		if len(targets) == 0 {
			targets = schedulingContext.Classes
		}
		for _, class := range targets {
			if !slices.Contains(placements[class.Number][decision.Course.Name], decision.Time) {
				return reject("advance decision was not kept", zap.String("class", class.Number), zap.String("course", decision.Course.Name), zap.Stringer("time", decision.Time))
			}
		}
	}

	//** Every participant of an elective holds it at exactly the same times
	for _, elective := range schedulingContext.Electives {
		var expected []model.CourseTime
		for i, class := range elective.Classes {
			times := placements[class.Number][elective.Course.Name]
			if uint64(len(times)) != elective.Hours {
				return reject("elective hours mismatch", zap.String("class", class.Number), zap.String("course", elective.Course.Name))
			}
			if i == 0 {
				expected = times
			} else if !slices.Equal(expected, times) {
				return reject("elective is not synchronized", zap.String("class", class.Number), zap.String("course", elective.Course.Name))
			}
		}
	}

	return true
}
