package model

import (
	"cmp"
	"fmt"
)

// CourseTime is a (day, slot-position) coordinate of the weekly grid. Both coordinates start at 1.
type CourseTime struct {
	Day  uint64
	Slot uint64
}

// Orders by day first and slot-position second
func (time CourseTime) Compare(other CourseTime) int {
	if dayComparison := cmp.Compare(time.Day, other.Day); dayComparison != 0 {
		return dayComparison
	}
	return cmp.Compare(time.Slot, other.Slot)
}

func (time CourseTime) Before(other CourseTime) bool {
	return time.Compare(other) < 0
}

func (time CourseTime) String() string {
	return fmt.Sprintf("(day %d, slot %d)", time.Day, time.Slot)
}
