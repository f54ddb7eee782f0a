package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/jung-kurt/gofpdf"
	"github.com/samber/lo"
)

const (
	pageWidth   = 277.0 // A4 landscape minus margins
	headerWidth = 20.0
)

// PDF renders one page per class: slot-positions are rows and weekdays are columns
func PDF(timetable model.Timetable) ([]byte, error) {
	if len(timetable.Classes) == 0 {
		return nil, fmt.Errorf("pdf requires at least one class")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	for _, class := range timetable.Classes {
		days := lo.Max(lo.Map(class.Assignments, func(assignment model.Assignment, _ int) uint64 { return assignment.Day }))
		slots := lo.Max(lo.Map(class.Assignments, func(assignment model.Assignment, _ int) uint64 { return assignment.Slot }))
		cells := lo.SliceToMap(class.Assignments, func(assignment model.Assignment) (model.CourseTime, model.Assignment) {
			return assignment.Time(), assignment
		})

		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(fmt.Sprintf("Class %v (%v)", class.Class, class.Track)), "", 1, "C", false, 0, "")
		pdf.Ln(5)

		colWidth := pageWidth - headerWidth
		if days > 0 {
			colWidth /= float64(days)
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(headerWidth, 8, "Slot", "1", 0, "C", false, 0, "")
		for day := uint64(1); day <= days; day++ {
			pdf.CellFormat(colWidth, 8, fmt.Sprintf("Day %d", day), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		for slot := uint64(1); slot <= slots; slot++ {
			pdf.SetFont("Arial", "B", 9)
			pdf.CellFormat(headerWidth, 10, fmt.Sprint(slot), "1", 0, "C", false, 0, "")
			pdf.SetFont("Arial", "", 8)
			for day := uint64(1); day <= days; day++ {
				value := ""
				if assignment, ok := cells[model.CourseTime{Day: day, Slot: slot}]; ok {
					value = assignment.Course
					if assignment.Teacher != "" {
						value += " / " + assignment.Teacher
					}
				}
				pdf.CellFormat(colWidth, 10, value, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}

		if timetable.RunId != "" {
			pdf.Ln(4)
			pdf.SetFont("Arial", "I", 7)
			pdf.CellFormat(0, 5, fmt.Sprintf("run %v, seed %d", timetable.RunId, timetable.Seed), "", 1, "R", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
