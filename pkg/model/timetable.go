package model

type Assignment struct {
	Day     uint64 `json:"day"`
	Slot    uint64 `json:"slot"`
	Course  string `json:"course"`
	Teacher string `json:"teacher,omitempty"`
}

func (assignment Assignment) Time() CourseTime {
	return CourseTime{Day: assignment.Day, Slot: assignment.Slot}
}

type ClassTimetable struct {
	Class       string       `json:"class"`
	Track       string       `json:"track"`
	Assignments []Assignment `json:"assignments"` // Sorted by (day, slot)
}

type Timetable struct {
	RunId   string           `json:"runId"`
	Seed    uint64           `json:"seed"`
	Classes []ClassTimetable `json:"classes"`
}

// Extracts the current timetable of every class, in class order
func TimetableFromContext(runId string, seed uint64, schedulingContext *SchedulingContext) Timetable {
	timetable := Timetable{
		RunId:   runId,
		Seed:    seed,
		Classes: make([]ClassTimetable, 0, len(schedulingContext.Classes)),
	}
	for _, class := range schedulingContext.Classes {
		timetable.Classes = append(timetable.Classes, ClassTimetable{
			Class:       class.Number,
			Track:       class.Track.String(),
			Assignments: class.Assignments(),
		})
	}
	return timetable
}
