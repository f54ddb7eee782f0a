package model

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
)

type Track uint8

const (
	Arts Track = iota
	Science
)

var trackNames = map[Track]string{
	Arts:    "arts",
	Science: "science",
}

func (track Track) String() string {
	if name, ok := trackNames[track]; ok {
		return name
	}
	return "unknown"
}

func ParseTrack(name string) (Track, error) {
	for track, trackName := range trackNames {
		if trackName == name {
			return track, nil
		}
	}
	return 0, configurationErrorf("unknown track \"%v\": allowed tracks are \"arts\" and \"science\"", name)
}

// CourseHours is the number of weekly hours still to be placed for a course
type CourseHours struct {
	Course *Course
	Hours  uint64
}

// Class owns its decided-map: every mutation goes through Decide
type Class struct {
	Number   string
	Track    Track
	teachers map[string]*Teacher // Course name -> teacher
	decided  map[CourseTime]*Course
	hours    []CourseHours
}

func NewClass(number string, track Track) *Class {
	return &Class{
		Number:   number,
		Track:    track,
		teachers: make(map[string]*Teacher),
		decided:  make(map[CourseTime]*Course),
	}
}

// Bind assigns the teacher who teaches the course to this class. The teacher must list the course explicitly.
func (class *Class) Bind(course *Course, teacher *Teacher) error {
	if !teacher.Teaches(course.Name) {
		return configurationErrorf("class \"%v\" binds teacher \"%v\" to course \"%v\", but the teacher only teaches %v", class.Number, teacher.Name, course.Name, teacher.Courses)
	}
	if bound, ok := class.teachers[course.Name]; ok && bound != teacher {
		return configurationErrorf("class \"%v\" binds course \"%v\" to both \"%v\" and \"%v\"", class.Number, course.Name, bound.Name, teacher.Name)
	}
	class.teachers[course.Name] = teacher
	return nil
}

func (class *Class) TeacherFor(course *Course) (*Teacher, bool) {
	teacher, ok := class.teachers[course.Name]
	return teacher, ok
}

func (class *Class) BusyAt(time CourseTime) bool {
	_, ok := class.decided[time]
	return ok
}

func (class *Class) DecidedAt(time CourseTime) (*Course, bool) {
	course, ok := class.decided[time]
	return course, ok
}

func (class *Class) Decide(time CourseTime, course *Course) error {
	if existing, ok := class.decided[time]; ok {
		return &IntegrityError{
			Owner:    "class " + class.Number,
			Time:     time,
			Existing: existing.Name,
			Incoming: course.Name,
		}
	}
	class.decided[time] = course
	return nil
}

// Number of times the course has been decided on the given day
func (class *Class) DailyCount(day uint64, course *Course) uint64 {
	count := uint64(0)
	for time, decided := range class.decided {
		if time.Day == day && decided.Name == course.Name {
			count++
		}
	}
	return count
}

// Decided returns a copy of the decided-map
func (class *Class) Decided() map[CourseTime]*Course {
	return maps.Clone(class.decided)
}

func (class *Class) Hours() []CourseHours {
	return slices.Clone(class.hours)
}

func (class *Class) SetHours(hours []CourseHours) {
	class.hours = slices.Clone(hours)
}

// ConsumeHour takes one hour of the course from the remaining budget. Courses absent from the budget are left untouched.
func (class *Class) ConsumeHour(course *Course) error {
	_, index, ok := lo.FindIndexOf(class.hours, func(hours CourseHours) bool {
		return hours.Course.Name == course.Name
	})
	if !ok {
		return nil
	}
	if class.hours[index].Hours == 0 {
		return configurationErrorf("the course \"%v\" is not enough for class \"%v\": advance decisions consume more hours than %v budget provides", course.Name, class.Number, class.Track)
	}
	class.hours[index].Hours--
	return nil
}

// Assignments lists the decided courses sorted by course-time
func (class *Class) Assignments() []Assignment {
	times := lo.Keys(class.decided)
	slices.SortFunc(times, CourseTime.Compare)

	return lo.Map(times, func(time CourseTime, _ int) Assignment {
		course := class.decided[time]
		assignment := Assignment{Day: time.Day, Slot: time.Slot, Course: course.Name}
		if teacher, ok := class.teachers[course.Name]; ok {
			assignment.Teacher = teacher.Name
		}
		return assignment
	})
}

func (class *Class) String() string {
	return fmt.Sprintf("class %v (%v)", class.Number, class.Track)
}
