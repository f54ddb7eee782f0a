package model

// AdvanceDecision is a fixed placement applied before randomized allocation. An empty class list targets every class.
type AdvanceDecision struct {
	Time    CourseTime
	Course  *Course
	Classes []*Class
}

// Elective is a rotating course placed at common times for every participating class
type Elective struct {
	Course  *Course
	Hours   uint64 // Weekly placements
	Classes []*Class
}

// SchedulingContext owns every registry used during one scheduling run
type SchedulingContext struct {
	Courses          []*Course
	Teachers         []*Teacher
	Classes          []*Class
	Table            *CourseTable
	AdvanceDecisions []AdvanceDecision
	Electives        []Elective

	coursesByName   map[string]*Course
	teachersByName  map[string]*Teacher
	classesByNumber map[string]*Class
}

func NewSchedulingContext(table *CourseTable) *SchedulingContext {
	return &SchedulingContext{
		Table:           table,
		coursesByName:   make(map[string]*Course),
		teachersByName:  make(map[string]*Teacher),
		classesByNumber: make(map[string]*Class),
	}
}

func (schedulingContext *SchedulingContext) AddCourse(course *Course) error {
	if _, ok := schedulingContext.coursesByName[course.Name]; ok {
		return configurationErrorf("course \"%v\" is defined more than once", course.Name)
	}
	schedulingContext.coursesByName[course.Name] = course
	schedulingContext.Courses = append(schedulingContext.Courses, course)
	return nil
}

func (schedulingContext *SchedulingContext) AddTeacher(teacher *Teacher) error {
	if _, ok := schedulingContext.teachersByName[teacher.Name]; ok {
		return configurationErrorf("teacher \"%v\" is defined more than once", teacher.Name)
	}
	schedulingContext.teachersByName[teacher.Name] = teacher
	schedulingContext.Teachers = append(schedulingContext.Teachers, teacher)
	return nil
}

func (schedulingContext *SchedulingContext) AddClass(class *Class) error {
	if _, ok := schedulingContext.classesByNumber[class.Number]; ok {
		return configurationErrorf("class \"%v\" is defined more than once", class.Number)
	}
	schedulingContext.classesByNumber[class.Number] = class
	schedulingContext.Classes = append(schedulingContext.Classes, class)
	return nil
}

func (schedulingContext *SchedulingContext) Course(name string) (*Course, bool) {
	course, ok := schedulingContext.coursesByName[name]
	return course, ok
}

func (schedulingContext *SchedulingContext) Teacher(name string) (*Teacher, bool) {
	teacher, ok := schedulingContext.teachersByName[name]
	return teacher, ok
}

func (schedulingContext *SchedulingContext) Class(number string) (*Class, bool) {
	class, ok := schedulingContext.classesByNumber[number]
	return class, ok
}
