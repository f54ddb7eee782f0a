package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	Yaml Format = iota
	Json
)

type RawSlot struct {
	Probability []float64 `mapstructure:"probability" validate:"required,len=5,dive,gte=0"`
}

type RawCourse struct {
	Name            string `mapstructure:"name" validate:"required"`
	Mode            int    `mapstructure:"mode"`
	MaxDailyCourses int    `mapstructure:"max_daily_courses"`
	Prohibit        []int  `mapstructure:"prohibit" validate:"dive,min=1"`
}

type RawElectiveCourse struct {
	Name            string   `mapstructure:"name" validate:"required"`
	MaxDailyCourses int      `mapstructure:"max_daily_courses"`
	Hours           int      `mapstructure:"hours" validate:"gte=0"`
	TeacherName     string   `mapstructure:"teacher_name" validate:"required"`
	RelationClasses []string `mapstructure:"relation_classes" validate:"required,min=1"`
	Prohibit        []int    `mapstructure:"prohibit" validate:"dive,min=1"`
}

type RawTeacher struct {
	Name      string   `mapstructure:"name" validate:"required"`
	Courses   []string `mapstructure:"course" validate:"required,min=1"`
	Unwilling []int    `mapstructure:"unwilling" validate:"dive,min=1"`
}

type RawBinding struct {
	Course  string `mapstructure:"course" validate:"required"`
	Teacher string `mapstructure:"teacher" validate:"required"`
}

type RawClass struct {
	Number   string       `mapstructure:"number" validate:"required"`
	Mode     int          `mapstructure:"mode" validate:"oneof=0 1"`
	Teachers []RawBinding `mapstructure:"teachers" validate:"required,min=1,dive"`
}

type RawHours struct {
	Course string `mapstructure:"course" validate:"required"`
	Hours  int    `mapstructure:"hours" validate:"gte=0"`
}

type RawTime struct {
	Day        int `mapstructure:"day" validate:"min=1"`
	CourseTime int `mapstructure:"course_time" validate:"min=1"`
}

type RawAdvanceDecision struct {
	Course      string   `mapstructure:"course" validate:"required"`
	TargetClass []string `mapstructure:"target_class"`
	Time        RawTime  `mapstructure:"time"`
}

type RawInput struct {
	Weekdays        int                   `mapstructure:"weekdays" validate:"min=1"`
	CourseSchedule  []RawSlot             `mapstructure:"course_schedule" validate:"required,min=1,dive"`
	Courses         []RawCourse           `mapstructure:"courses" validate:"dive"`
	ElectiveCourses []RawElectiveCourse   `mapstructure:"elective_courses" validate:"dive"`
	Teachers        []RawTeacher          `mapstructure:"teachers" validate:"dive"`
	Classes         []RawClass            `mapstructure:"classes" validate:"required,min=1,dive"`
	CourseHours     map[string][]RawHours `mapstructure:"course_hours" validate:"required,dive,dive"`
	AdvanceDecision []RawAdvanceDecision  `mapstructure:"advance_decision" validate:"dive"`
}

// InputFromFile parses a settings file. The format is chosen by extension: ".json" is JSON, anything else is YAML.
func InputFromFile(file string) (*SchedulingContext, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read settings file: %w", err)
	}

	format := Yaml
	if strings.EqualFold(filepath.Ext(file), ".json") {
		format = Json
	}
	return InputFromBytes(bytes, format)
}

func InputFromBytes(bytes []byte, format Format) (*SchedulingContext, error) {
	var inputMap map[string]any
	var err error
	if format == Json {
		err = json.Unmarshal(bytes, &inputMap)
	} else {
		err = yaml.Unmarshal(bytes, &inputMap)
	}
	if err != nil {
		return nil, &ConfigurationError{Reason: "cannot parse settings", Err: err}
	}

	rawInput, err := DecodeRawInput(inputMap)
	if err != nil {
		return nil, err
	}
	return ProcessRawInput(rawInput)
}

// DecodeRawInput maps loosely typed settings onto RawInput and validates field-level constraints
func DecodeRawInput(inputMap map[string]any) (RawInput, error) {
	var rawInput RawInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true, // Class numbers are commonly written as integers
		Result:           &rawInput,
	})
	if err != nil {
		return RawInput{}, err
	}
	if err := decoder.Decode(inputMap); err != nil {
		return RawInput{}, &ConfigurationError{Reason: "cannot decode settings", Err: err}
	}

	if err := validator.New().Struct(rawInput); err != nil {
		return RawInput{}, &ConfigurationError{Reason: "invalid settings", Err: err}
	}
	return rawInput, nil
}

func ProcessRawInput(rawInput RawInput) (*SchedulingContext, error) {
	//** Manage course table
	table, err := NewCourseTable(uint64(rawInput.Weekdays), lo.Map(rawInput.CourseSchedule, func(slot RawSlot, _ int) []float64 {
		return slot.Probability
	}))
	if err != nil {
		return nil, err
	}
	schedulingContext := NewSchedulingContext(table)

	//** Manage courses
	for _, rawCourse := range rawInput.Courses {
		course, err := NewCourse(rawCourse.Name, rawCourse.Mode, toSlots(rawCourse.Prohibit), rawCourse.MaxDailyCourses)
		if err != nil {
			return nil, err
		}
		if err := schedulingContext.AddCourse(course); err != nil {
			return nil, err
		}
	}
	for _, rawElective := range rawInput.ElectiveCourses {
		course, err := NewCourse(rawElective.Name, int(Rotating), toSlots(rawElective.Prohibit), rawElective.MaxDailyCourses)
		if err != nil {
			return nil, err
		}
		if err := schedulingContext.AddCourse(course); err != nil {
			return nil, err
		}
	}

	//** Manage teachers
	for _, rawTeacher := range rawInput.Teachers {
		for _, courseName := range rawTeacher.Courses {
			if _, ok := schedulingContext.Course(courseName); !ok {
				return nil, configurationErrorf("teacher \"%v\" teaches undefined course \"%v\"", rawTeacher.Name, courseName)
			}
		}
		if err := schedulingContext.AddTeacher(NewTeacher(rawTeacher.Name, rawTeacher.Courses, toSlots(rawTeacher.Unwilling))); err != nil {
			return nil, err
		}
	}

	//** Manage classes
	for _, rawClass := range rawInput.Classes {
		class := NewClass(rawClass.Number, Track(rawClass.Mode))
		for _, binding := range rawClass.Teachers {
			course, ok := schedulingContext.Course(binding.Course)
			if !ok {
				return nil, configurationErrorf("class \"%v\" binds undefined course \"%v\"", class.Number, binding.Course)
			}
			teacher, ok := schedulingContext.Teacher(binding.Teacher)
			if !ok {
				return nil, configurationErrorf("class \"%v\" binds undefined teacher \"%v\"", class.Number, binding.Teacher)
			}
			if err := class.Bind(course, teacher); err != nil {
				return nil, err
			}
		}
		if err := schedulingContext.AddClass(class); err != nil {
			return nil, err
		}
	}

	//** Manage electives
	for _, rawElective := range rawInput.ElectiveCourses {
		course, _ := schedulingContext.Course(rawElective.Name)
		teacher, ok := schedulingContext.Teacher(rawElective.TeacherName)
		if !ok {
			return nil, configurationErrorf("elective course \"%v\" references undefined teacher \"%v\"", course.Name, rawElective.TeacherName)
		}

		classes := make([]*Class, 0, len(rawElective.RelationClasses))
		for _, number := range lo.Uniq(rawElective.RelationClasses) {
			class, ok := schedulingContext.Class(number)
			if !ok {
				return nil, configurationErrorf("elective course \"%v\" references undefined class \"%v\"", course.Name, number)
			}
			if err := class.Bind(course, teacher); err != nil {
				return nil, err
			}
			classes = append(classes, class)
		}

		hours := uint64(rawElective.Hours)
		if hours == 0 {
			hours = 1 // An elective meets once per week unless stated otherwise
		}
		schedulingContext.Electives = append(schedulingContext.Electives, Elective{
			Course:  course,
			Hours:   hours,
			Classes: classes,
		})
	}

	//** Manage course-hour budgets
	budgets := make(map[Track][]CourseHours)
	for trackName, rawHours := range rawInput.CourseHours {
		track, err := ParseTrack(trackName)
		if err != nil {
			return nil, err
		}
		for _, entry := range rawHours {
			course, ok := schedulingContext.Course(entry.Course)
			if !ok {
				return nil, configurationErrorf("course_hours of track \"%v\" references undefined course \"%v\"", trackName, entry.Course)
			} else if course.Mode == Rotating {
				return nil, configurationErrorf("course_hours of track \"%v\" lists rotating course \"%v\": rotating courses are scheduled through elective_courses", trackName, course.Name)
			} else if lo.SomeBy(budgets[track], func(hours CourseHours) bool { return hours.Course == course }) {
				return nil, configurationErrorf("course_hours of track \"%v\" lists course \"%v\" more than once", trackName, course.Name)
			}
			budgets[track] = append(budgets[track], CourseHours{Course: course, Hours: uint64(entry.Hours)})
		}
	}
	for _, class := range schedulingContext.Classes {
		class.SetHours(budgets[class.Track])
		for _, hours := range class.Hours() {
			if _, ok := class.TeacherFor(hours.Course); !ok && hours.Course.Mode.Drawable() && hours.Hours > 0 {
				return nil, configurationErrorf("class \"%v\" needs %d hours of \"%v\" but no teacher is bound to it", class.Number, hours.Hours, hours.Course.Name)
			}
		}
	}

	//** Manage advance decisions
	for _, rawDecision := range rawInput.AdvanceDecision {
		decision, err := processAdvanceDecision(schedulingContext, rawDecision)
		if err != nil {
			return nil, err
		}
		schedulingContext.AdvanceDecisions = append(schedulingContext.AdvanceDecisions, decision)
	}

	//** Make sure every class' week can be filled exactly
	for _, class := range schedulingContext.Classes {
		if err := checkWeeklyHours(schedulingContext, class); err != nil {
			return nil, err
		}
	}

	return schedulingContext, nil
}

func processAdvanceDecision(schedulingContext *SchedulingContext, rawDecision RawAdvanceDecision) (AdvanceDecision, error) {
	course, ok := schedulingContext.Course(rawDecision.Course)
	if !ok {
		return AdvanceDecision{}, configurationErrorf("advance decision references undefined course \"%v\"", rawDecision.Course)
	}

	time := CourseTime{Day: uint64(rawDecision.Time.Day), Slot: uint64(rawDecision.Time.CourseTime)}
	if !schedulingContext.Table.Contains(time) {
		return AdvanceDecision{}, configurationErrorf("advance decision of \"%v\" is outside the weekly grid: %v", course.Name, time)
	}

	classes := schedulingContext.Classes
	if len(rawDecision.TargetClass) > 0 {
		classes = make([]*Class, 0, len(rawDecision.TargetClass))
		for _, number := range lo.Uniq(rawDecision.TargetClass) {
			class, ok := schedulingContext.Class(number)
			if !ok {
				return AdvanceDecision{}, configurationErrorf("advance decision of \"%v\" references undefined class \"%v\"", course.Name, number)
			}
			classes = append(classes, class)
		}
	}

	for _, class := range classes {
		teacher, ok := class.TeacherFor(course)
		if !ok && course.Mode != Ceremonial {
			return AdvanceDecision{}, configurationErrorf("advance decision places \"%v\" in class \"%v\", which has no teacher bound to it", course.Name, class.Number)
		} else if ok && teacher.Unwilling(time.Slot) {
			return AdvanceDecision{}, configurationErrorf("advance decision places \"%v\" at %v, where teacher \"%v\" is unwilling", course.Name, time, teacher.Name)
		}
		if err := class.ConsumeHour(course); err != nil {
			return AdvanceDecision{}, err
		}
	}

	return AdvanceDecision{Time: time, Course: course, Classes: classes}, nil
}

func checkWeeklyHours(schedulingContext *SchedulingContext, class *Class) error {
	total := uint64(0)
	for _, hours := range class.Hours() {
		if hours.Hours == 0 {
			continue
		}
		if !hours.Course.Mode.Drawable() || !schedulingContext.Table.Drawable(hours.Course.Mode) {
			return configurationErrorf("class \"%v\" has %d hours of \"%v\" left that can never be drawn: place them with advance decisions or give mode %d a positive probability", class.Number, hours.Hours, hours.Course.Name, hours.Course.Mode)
		}
		total += hours.Hours
	}

	for _, decision := range schedulingContext.AdvanceDecisions {
		if lo.Contains(decision.Classes, class) {
			total++
		}
	}
	for _, elective := range schedulingContext.Electives {
		if lo.Contains(elective.Classes, class) {
			total += elective.Hours
		}
	}

	if capacity := schedulingContext.Table.Capacity(); total != capacity {
		return configurationErrorf("course hours of class \"%v\" do not fill the week: %d hours for %d slots", class.Number, total, capacity)
	}
	return nil
}

func toSlots(values []int) []uint64 {
	return lo.Map(values, func(value int, _ int) uint64 { return uint64(value) })
}
