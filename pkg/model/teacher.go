package model

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// Teacher owns its busy-map: every mutation goes through MarkBusy
type Teacher struct {
	Name      string
	Courses   []string // Names of the courses taught, in declaration order
	unwilling map[uint64]bool
	busy      map[CourseTime]*Course
}

func NewTeacher(name string, courses []string, unwilling []uint64) *Teacher {
	teacher := &Teacher{
		Name:      name,
		Courses:   slices.Clone(courses),
		unwilling: make(map[uint64]bool, len(unwilling)),
		busy:      make(map[CourseTime]*Course),
	}
	for _, slot := range unwilling {
		teacher.unwilling[slot] = true
	}
	return teacher
}

// Checks whether the teacher refuses to teach at the given slot-position (on any day)
func (teacher *Teacher) Unwilling(slot uint64) bool {
	return teacher.unwilling[slot]
}

func (teacher *Teacher) UnwillingSlots() []uint64 {
	slots := lo.Keys(teacher.unwilling)
	slices.Sort(slots)
	return slots
}

func (teacher *Teacher) Teaches(course string) bool {
	return slices.Contains(teacher.Courses, course)
}

func (teacher *Teacher) BusyAt(time CourseTime) bool {
	_, ok := teacher.busy[time]
	return ok
}

func (teacher *Teacher) MarkBusy(time CourseTime, course *Course) error {
	if existing, ok := teacher.busy[time]; ok {
		return &IntegrityError{
			Owner:    "teacher " + teacher.Name,
			Time:     time,
			Existing: existing.Name,
			Incoming: course.Name,
		}
	}
	teacher.busy[time] = course
	return nil
}

// Busy returns a copy of the busy-map
func (teacher *Teacher) Busy() map[CourseTime]*Course {
	return maps.Clone(teacher.busy)
}
