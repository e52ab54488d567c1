package dash

import (
	"main/amizone"
)

// Pair represents a tuple of two elements.
type Pair[T, U any] struct {
	First  T
	Second U
}

// Phase is the lifecycle position of one dashboard section.
type Phase int

const (
	NotStarted Phase = iota
	Loading
	Ready
	Failed
)

// Section holds one independently loaded slice of dashboard data
// together with its lifecycle phase. Err carries the human-readable
// failure message when the phase is Failed.
type Section[T any] struct {
	Phase Phase
	Data  T
	Err   string
}

func loading[T any]() Section[T] {
	return Section[T]{Phase: Loading}
}

func ready[T any](data T) Section[T] {
	return Section[T]{Phase: Ready, Data: data}
}

func failed[T any](message string) Section[T] {
	return Section[T]{Phase: Failed, Err: message}
}

// Section names, used for uniform status reporting and retries.
const (
	SectionProfile    = "profile"
	SectionAttendance = "attendance"
	SectionSchedule   = "schedule"
	SectionCourses    = "courses"
	SectionWifi       = "wifi"
	SectionExams      = "exams"
	SectionResults    = "results"
	SectionSemesters  = "semesters"
)

// Status is a data-free view of a section's state.
type Status struct {
	Phase Phase
	Err   string
}

// Dashboard is the full per-user dashboard state. Core sections load
// together on refresh; results and semesters load lazily when the
// results view is first opened.
type Dashboard struct {
	Profile    Section[amizone.Profile]
	Attendance Section[amizone.AttendanceRecords]
	Schedule   Section[amizone.ScheduledClasses]
	Courses    Section[amizone.Courses]
	Wifi       Section[amizone.WifiMacInfo]
	Exams      Section[amizone.ExamSchedule]
	Results    Section[amizone.ExamResultRecords]
	Semesters  Section[amizone.SemesterList]

	// Selected semester references; empty means the current semester.
	// Refresh preserves both.
	CoursesSemester string
	ResultsSemester string
}

// Statuses returns every section's state keyed by section name so
// callers can treat all sections uniformly.
func (d Dashboard) Statuses() map[string]Status {
	return map[string]Status{
		SectionProfile:    {d.Profile.Phase, d.Profile.Err},
		SectionAttendance: {d.Attendance.Phase, d.Attendance.Err},
		SectionSchedule:   {d.Schedule.Phase, d.Schedule.Err},
		SectionCourses:    {d.Courses.Phase, d.Courses.Err},
		SectionWifi:       {d.Wifi.Phase, d.Wifi.Err},
		SectionExams:      {d.Exams.Phase, d.Exams.Err},
		SectionResults:    {d.Results.Phase, d.Results.Err},
		SectionSemesters:  {d.Semesters.Phase, d.Semesters.Err},
	}
}

// coreSections are the sections loaded together by a refresh.
var coreSections = []string{
	SectionProfile,
	SectionAttendance,
	SectionSchedule,
	SectionCourses,
	SectionWifi,
	SectionExams,
}

// AllCoreFailed reports whether every core section failed, which
// escalates to the full-page error state instead of per-section cards.
func (d Dashboard) AllCoreFailed() bool {
	statuses := d.Statuses()
	for _, name := range coreSections {
		if statuses[name].Phase != Failed {
			return false
		}
	}
	return true
}
