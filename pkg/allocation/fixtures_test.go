package allocation

import (
	"testing"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/stretchr/testify/require"
)

func contextFromYaml(t *testing.T, settings string) *model.SchedulingContext {
	t.Helper()
	schedulingContext, err := model.InputFromBytes([]byte(settings), model.Yaml)
	require.NoError(t, err)
	return schedulingContext
}

// Two classes with dedicated teachers and no daily limits in practice; every seed succeeds
const unconstrainedSettings = `
weekdays: 3
course_schedule:
  - probability: [0.5, 0.3, 0.2, 0, 0]
  - probability: [0.4, 0.3, 0.3, 0, 0]
  - probability: [0.2, 0.4, 0.4, 0, 0]
courses:
  - {name: Math, mode: 0, max_daily_courses: 3}
  - {name: Physics, mode: 1, max_daily_courses: 3}
  - {name: Music, mode: 2, max_daily_courses: 3}
teachers:
  - {name: T1, course: [Math]}
  - {name: T2, course: [Physics]}
  - {name: T3, course: [Music]}
  - {name: T4, course: [Math]}
  - {name: T5, course: [Physics]}
  - {name: T6, course: [Music]}
classes:
  - number: "1"
    mode: 0
    teachers: [{course: Math, teacher: T1}, {course: Physics, teacher: T2}, {course: Music, teacher: T3}]
  - number: "2"
    mode: 1
    teachers: [{course: Math, teacher: T4}, {course: Physics, teacher: T5}, {course: Music, teacher: T6}]
course_hours:
  arts: [{course: Math, hours: 4}, {course: Physics, hours: 3}, {course: Music, hours: 2}]
  science: [{course: Math, hours: 3}, {course: Physics, hours: 4}, {course: Music, hours: 2}]
`

// Every day must hold exactly one A and one B
const dailyMaxSettings = `
weekdays: 2
course_schedule:
  - probability: [1, 0, 0, 0, 0]
  - probability: [1, 0, 0, 0, 0]
courses:
  - {name: A, mode: 0, max_daily_courses: 1}
  - {name: B, mode: 0, max_daily_courses: 1}
teachers:
  - {name: TA, course: [A]}
  - {name: TB, course: [B]}
classes:
  - {number: "1", mode: 0, teachers: [{course: A, teacher: TA}, {course: B, teacher: TB}]}
course_hours:
  arts: [{course: A, hours: 2}, {course: B, hours: 2}]
  science: []
`

// A's teacher refuses slot 2 and B's teacher refuses slot 1
const unwillingSettings = `
weekdays: 2
course_schedule:
  - probability: [1, 1, 0, 0, 0]
  - probability: [1, 1, 0, 0, 0]
courses:
  - {name: A, mode: 0, max_daily_courses: 2}
  - {name: B, mode: 1, max_daily_courses: 2}
teachers:
  - {name: TA, course: [A], unwilling: [2]}
  - {name: TB, course: [B], unwilling: [1]}
classes:
  - {number: "1", mode: 0, teachers: [{course: A, teacher: TA}, {course: B, teacher: TB}]}
course_hours:
  arts: [{course: A, hours: 2}, {course: B, hours: 2}]
  science: []
`

// Math can never fill the second slot of a day
const scenarioSettings = `
weekdays: 2
course_schedule:
  - probability: [1, 1, 1, 1, 0]
  - probability: [1, 1, 1, 1, 0]
courses:
  - {name: Math, mode: 0, max_daily_courses: 1}
teachers:
  - {name: T1, course: [Math], unwilling: [2]}
classes:
  - {number: C1, mode: 0, teachers: [{course: Math, teacher: T1}]}
course_hours:
  arts: [{course: Math, hours: 4}]
  science: []
`

// A flag ceremony opens the week for everyone and a walk is shared by both classes
const electiveSettings = `
weekdays: 2
course_schedule:
  - probability: [1, 0, 0, 0, 0]
  - probability: [1, 0, 0, 0, 0]
  - probability: [1, 0, 0, 0, 0]
courses:
  - {name: Flag, mode: 5, max_daily_courses: 1}
  - {name: Math, mode: 0, max_daily_courses: 3}
elective_courses:
  - {name: Walk, max_daily_courses: 1, hours: 2, teacher_name: TW, relation_classes: ["1", "2"]}
teachers:
  - {name: T1, course: [Math]}
  - {name: T2, course: [Math]}
  - {name: TW, course: [Walk]}
classes:
  - {number: "1", mode: 0, teachers: [{course: Math, teacher: T1}]}
  - {number: "2", mode: 0, teachers: [{course: Math, teacher: T2}]}
course_hours:
  arts: [{course: Flag, hours: 1}, {course: Math, hours: 3}]
  science: []
advance_decision:
  - {course: Flag, target_class: [], time: {day: 1, course_time: 1}}
`

// C2's fixed A hour keeps TA busy at day 2 slot 1, so C1 cannot take it
const carryDaySettings = `
weekdays: 2
course_schedule:
  - probability: [0.2, 0, 0, 0, 0]
  - probability: [0.7, 0, 0, 0, 0]
courses:
  - {name: A, mode: 0, max_daily_courses: 2}
teachers:
  - {name: TA, course: [A]}
classes:
  - {number: C1, mode: 0, teachers: [{course: A, teacher: TA}]}
  - {number: C2, mode: 1, teachers: [{course: A, teacher: TA}]}
course_hours:
  arts: [{course: A, hours: 4}]
  science: [{course: A, hours: 4}]
advance_decision:
  - {course: A, target_class: [C2], time: {day: 2, course_time: 1}}
`

// C1 fills its week; C2's teacher refuses the first slot of every day
const carryClassSettings = `
weekdays: 2
course_schedule:
  - probability: [0.2, 0, 0, 0, 0]
  - probability: [0.7, 0, 0, 0, 0]
courses:
  - {name: A, mode: 0, max_daily_courses: 2}
teachers:
  - {name: TA, course: [A]}
  - {name: TB, course: [A], unwilling: [1]}
classes:
  - {number: C1, mode: 0, teachers: [{course: A, teacher: TA}]}
  - {number: C2, mode: 1, teachers: [{course: A, teacher: TB}]}
course_hours:
  arts: [{course: A, hours: 4}]
  science: [{course: A, hours: 4}]
`

// A is limited to once a day and B's teacher refuses slot 1, so A must open both days
const suppressionSettings = `
weekdays: 2
course_schedule:
  - probability: [1, 1, 0, 0, 0]
  - probability: [1, 1, 0, 0, 0]
courses:
  - {name: A, mode: 0, max_daily_courses: 1}
  - {name: B, mode: 1, max_daily_courses: 2}
teachers:
  - {name: TA, course: [A]}
  - {name: TB, course: [B], unwilling: [1]}
classes:
  - {number: "1", mode: 0, teachers: [{course: A, teacher: TA}, {course: B, teacher: TB}]}
course_hours:
  arts: [{course: A, hours: 2}, {course: B, hours: 2}]
  science: []
`
