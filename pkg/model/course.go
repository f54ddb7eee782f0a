package model

import (
	"slices"
)

type CourseMode uint8

const (
	Mandatory      CourseMode = iota // Taught to every class
	TrackMandatory                   // Physics or history, depending on the class' track
	ElectivePick                     // Chosen subject
	Minor                            // Minor subject
	Rotating                         // Shared by several classes at one common time, placed by the elective allocator
	Ceremonial                       // Fixed manual slot (e.g. flag raising), placed only by advance decisions
)

// Number of weights kept per slot-position in the probability table
const ModeWeights = 5

var modeNames = map[CourseMode]string{
	Mandatory:      "mandatory",
	TrackMandatory: "track-mandatory",
	ElectivePick:   "elective-pick",
	Minor:          "minor",
	Rotating:       "rotating",
	Ceremonial:     "ceremonial",
}

func (mode CourseMode) String() string {
	if name, ok := modeNames[mode]; ok {
		return name
	}
	return "unknown"
}

// Drawable reports whether courses of this mode take part in the weighted random draw
func (mode CourseMode) Drawable() bool {
	return mode < Rotating
}

type Course struct {
	Name     string
	Mode     CourseMode
	Prohibit []uint64 // Slot-positions the course must not be placed at (checked only when enforcement is enabled)
	DailyMax uint64   // Maximum occurrences per class per day
}

func NewCourse(name string, mode int, prohibit []uint64, dailyMax int) (*Course, error) {
	if name == "" {
		return nil, configurationErrorf("course name must not be empty")
	} else if mode < 0 || mode > int(Ceremonial) { // Checked before narrowing, so large values cannot wrap into valid modes
		return nil, configurationErrorf("unexpected mode %d for course \"%v\": modes are 0 (mandatory), 1 (track-mandatory), 2 (elective-pick), 3 (minor), 4 (rotating) and 5 (ceremonial)", mode, name)
	} else if dailyMax < 0 {
		return nil, configurationErrorf("max_daily_courses of course \"%v\" must be greater than or equal to 0: %d", name, dailyMax)
	}

	prohibitCopy := slices.Clone(prohibit)
	slices.Sort(prohibitCopy)

	return &Course{
		Name:     name,
		Mode:     CourseMode(mode),
		Prohibit: slices.Compact(prohibitCopy),
		DailyMax: uint64(dailyMax),
	}, nil
}

func (course *Course) Prohibited(slot uint64) bool {
	_, found := slices.BinarySearch(course.Prohibit, slot)
	return found
}

func (course *Course) String() string {
	return course.Name
}
