package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/gzk6332987/CourseSchedule/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timetable = model.Timetable{
	RunId: "run",
	Seed:  3,
	Classes: []model.ClassTimetable{
		{
			Class: "1",
			Track: "arts",
			Assignments: []model.Assignment{
				{Day: 1, Slot: 1, Course: "Flag"},
				{Day: 1, Slot: 2, Course: "Math", Teacher: "T1"},
			},
		},
		{
			Class: "2",
			Track: "science",
			Assignments: []model.Assignment{
				{Day: 1, Slot: 1, Course: "Flag"},
				{Day: 1, Slot: 2, Course: "Physics", Teacher: "T2"},
			},
		},
	},
}

func TestCSV(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		str, err := CSVString(timetable)

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(str), "\n")
		assert.Equal(t, []string{
			"Class,Track,Day,Slot,Course,Teacher",
			"1,arts,1,1,Flag,",
			"1,arts,1,2,Math,T1",
			"2,science,1,1,Flag,",
			"2,science,1,2,Physics,T2",
		}, lines)
	})

	t.Run("File round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "timetable.csv")
		require.NoError(t, WriteCSV(timetable, path))

		file, err := os.Open(path)
		require.NoError(t, err)
		defer file.Close()

		rows := []*TimetableRow{}
		require.NoError(t, gocsv.UnmarshalFile(file, &rows))
		assert.Equal(t, Rows(timetable), rows)
	})
}

func TestPDF(t *testing.T) {
	pdf, err := PDF(timetable)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = PDF(model.Timetable{})
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	output, err := JSON(timetable)
	require.NoError(t, err)

	var decoded model.Timetable
	require.NoError(t, json.Unmarshal(output, &decoded))
	assert.Equal(t, timetable, decoded)
}

func TestPrint(t *testing.T) {
	var buffer bytes.Buffer

	require.NoError(t, Print(&buffer, timetable))

	output := buffer.String()
	assert.Contains(t, output, "Class 1 (arts)")
	assert.Contains(t, output, "Physics")
	assert.Equal(t, 2, strings.Count(output, "Day"))
}
