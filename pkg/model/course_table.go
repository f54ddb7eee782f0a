package model

// CourseTable describes the weekly grid and the static selection weights per slot-position
type CourseTable struct {
	Depth       uint64 // Slots per day
	Weekdays    uint64
	probability map[uint64][ModeWeights]float64 // Slot-position -> weight per mode
}

// NewCourseTable builds the grid from one probability vector per slot-position, in slot order
func NewCourseTable(weekdays uint64, probability [][]float64) (*CourseTable, error) {
	if weekdays == 0 {
		return nil, configurationErrorf("the number of weekdays must be greater than 0")
	} else if len(probability) == 0 {
		return nil, configurationErrorf("course_schedule must define at least one slot-position")
	}

	table := &CourseTable{
		Depth:       uint64(len(probability)),
		Weekdays:    weekdays,
		probability: make(map[uint64][ModeWeights]float64, len(probability)),
	}

	for i, weights := range probability {
		slot := uint64(i + 1)
		if len(weights) != ModeWeights {
			return nil, configurationErrorf("slot-position %d must define exactly %d probabilities, got %d", slot, ModeWeights, len(weights))
		}

		var vector [ModeWeights]float64
		for mode, weight := range weights {
			if weight < 0 {
				return nil, configurationErrorf("slot-position %d has a negative probability for mode %d: %v", slot, mode, weight)
			}
			vector[mode] = weight
		}
		table.probability[slot] = vector
	}

	return table, nil
}

// Weight returns the static weight of a mode at a slot-position. Rotating and ceremonial courses always weigh 0.
func (table *CourseTable) Weight(slot uint64, mode CourseMode) float64 {
	if !mode.Drawable() {
		return 0
	}
	return table.probability[slot][mode]
}

// Checks whether the mode has a positive weight at some slot-position
func (table *CourseTable) Drawable(mode CourseMode) bool {
	for slot := uint64(1); slot <= table.Depth; slot++ {
		if table.Weight(slot, mode) > 0 {
			return true
		}
	}
	return false
}

func (table *CourseTable) Contains(time CourseTime) bool {
	return time.Day >= 1 && time.Day <= table.Weekdays && time.Slot >= 1 && time.Slot <= table.Depth
}

func (table *CourseTable) Capacity() uint64 {
	return table.Weekdays * table.Depth
}

// Times enumerates every course-time of the week in ascending order
func (table *CourseTable) Times() []CourseTime {
	times := make([]CourseTime, 0, table.Capacity())
	for day := uint64(1); day <= table.Weekdays; day++ {
		for slot := uint64(1); slot <= table.Depth; slot++ {
			times = append(times, CourseTime{Day: day, Slot: slot})
		}
	}
	return times
}
