package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/gzk6332987/CourseSchedule/pkg/model"
)

// TimetableRow is one assignment of one class, flattened for tabular output
type TimetableRow struct {
	Class   string `csv:"Class"`
	Track   string `csv:"Track"`
	Day     uint64 `csv:"Day"`
	Slot    uint64 `csv:"Slot"`
	Course  string `csv:"Course"`
	Teacher string `csv:"Teacher"`
}

// Rows flattens the timetable, keeping class order and the (day, slot) order inside each class
func Rows(timetable model.Timetable) []*TimetableRow {
	rows := make([]*TimetableRow, 0)
	for _, class := range timetable.Classes {
		for _, assignment := range class.Assignments {
			rows = append(rows, &TimetableRow{
				Class:   class.Class,
				Track:   class.Track,
				Day:     assignment.Day,
				Slot:    assignment.Slot,
				Course:  assignment.Course,
				Teacher: assignment.Teacher,
			})
		}
	}
	return rows
}

func CSVString(timetable model.Timetable) (string, error) {
	rows := Rows(timetable)
	str, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("cannot marshal timetable to csv: %w", err)
	}
	return str, nil
}

// WriteCSV replaces the file at path with the CSV rendering of the timetable
func WriteCSV(timetable model.Timetable, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create csv file: %w", err)
	}
	defer out.Close()

	rows := Rows(timetable)
	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("cannot write csv file: %w", err)
	}
	return nil
}
