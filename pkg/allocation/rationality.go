package allocation

import "github.com/gzk6332987/CourseSchedule/pkg/model"

type Outcome int

const (
	Accepted         Outcome = iota
	RejectedRetry            // Rejected at this time; the course stays eligible elsewhere
	RejectedSuppress         // Rejected and suppressed for the rest of the day
)

var outcomeNames = map[Outcome]string{
	Accepted:         "accepted",
	RejectedRetry:    "rejected-retry",
	RejectedSuppress: "rejected-suppress",
}

func (outcome Outcome) String() string {
	return outcomeNames[outcome]
}

func (outcome Outcome) Admissible() bool {
	return outcome == Accepted
}

func (outcome Outcome) Suppress() bool {
	return outcome == RejectedSuppress
}

type rationalityJudge struct {
	enforceProhibit bool
}

// Judge evaluates a candidate assignment. The checks are ordered: only the daily-max check suppresses.
func (judge rationalityJudge) Judge(course *model.Course, courseCount uint64, teacher *model.Teacher, time model.CourseTime, class *model.Class) Outcome {
	if teacher.Unwilling(courseCount) {
		return RejectedRetry
	}
	if judge.enforceProhibit && course.Prohibited(courseCount) {
		return RejectedRetry
	}
	if teacher.BusyAt(time) {
		return RejectedRetry
	}
	// The candidate itself is counted: existing entries alone would let a course reach dailyMax+1 in one day
	if class.DailyCount(time.Day, course)+1 > course.DailyMax {
		return RejectedSuppress
	}
	return Accepted
}

func classBusyAt(class *model.Class, time model.CourseTime) bool {
	return class.BusyAt(time)
}
