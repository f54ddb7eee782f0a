package export

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
)

func JSON(timetable model.Timetable) ([]byte, error) {
	bytes, err := json.MarshalIndent(timetable, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("an error occurred while building output json: %w", err)
	}
	return bytes, nil
}

// Print writes every class' timetable as an aligned table, one line per assignment
func Print(w io.Writer, timetable model.Timetable) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, class := range timetable.Classes {
		fmt.Fprintf(writer, "Class %v (%v)\n", class.Class, class.Track)
		fmt.Fprintln(writer, "Day\tSlot\tCourse\tTeacher")
		for _, assignment := range class.Assignments {
			fmt.Fprintf(writer, "%d\t%d\t%v\t%v\n", assignment.Day, assignment.Slot, assignment.Course, assignment.Teacher)
		}
		fmt.Fprintln(writer)
	}
	return writer.Flush()
}
