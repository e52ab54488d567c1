package server

import (
	"io"
	"net/http/httptest"
	"testing"

	"main/amizone"
	"main/dash"
	"main/tests"
)

func TestLoadTmpl(t *testing.T) {
	if err := loadTmpl(tests.GetResPath()); err != nil {
		t.Fatalf("loadTmpl: %v", err)
	}
	if templates.Lookup("page") == nil {
		t.Fatal("page template not defined")
	}
}

// Executing every page type against the shipped templates catches a
// renamed or mistyped data field here instead of in a runtime log line.
func TestTemplatesRenderEveryPageType(t *testing.T) {
	if err := loadTmpl(tests.GetResPath()); err != nil {
		t.Fatalf("loadTmpl: %v", err)
	}

	d := dash.Dashboard{}
	d.Profile = dash.Section[amizone.Profile]{Phase: dash.Ready, Data: amizone.Profile{Name: "A. Student"}}
	d.Attendance = dash.Section[amizone.AttendanceRecords]{Phase: dash.Failed, Err: "upstream said no"}
	d.Schedule = dash.Section[amizone.ScheduledClasses]{Phase: dash.Ready, Data: amizone.ScheduledClasses{
		Classes: []amizone.ScheduledClass{{
			Course:    amizone.CourseRef{Name: "CSE101 - Data Structures"},
			StartTime: "2026-03-02T09:15:00",
			EndTime:   "2026-03-02T10:10:00",
			Faculty:   "Dr. A. Sharma, Group B",
			Room:      "E2-301",
		}},
	}}
	d.Exams = dash.Section[amizone.ExamSchedule]{Phase: dash.Ready, Data: amizone.ExamSchedule{
		Exams: []amizone.ExamScheduleEntry{{Course: amizone.CourseRef{Code: "CSE101"}, Time: "2026-05-11T09:30:00"}},
	}}

	user := userData{Name: "A. Student"}
	pages := []pageData{
		loginPageData,
		statusNotFoundData,
		statusAllFailedData,
		{
			PageType: "dashboard",
			Head:     headData{Title: "Dashboard"},
			User:     user,
			Body:     bodyData{DashboardData: genDashboardData(d)},
		},
		{
			PageType: "schedule",
			Head:     headData{Title: "Class schedule"},
			User:     user,
			Body: bodyData{ScheduleData: scheduleData{
				DateLabel: "02 Mar 2026",
				DayLabel:  "Monday",
				Rows:      genClassRows(d.Schedule.Data),
			}},
		},
		{
			PageType: "attendance",
			Head:     headData{Title: "Attendance"},
			User:     user,
			Body: bodyData{AttendanceData: attendanceData{
				Error: sectionError{Section: dash.SectionAttendance, Message: "upstream said no"},
			}},
		},
		{
			PageType: "courses",
			Head:     headData{Title: "Courses"},
			User:     user,
			Body: bodyData{CoursesData: coursesData{
				Semesters: genSemesterOptions(amizone.SemesterList{
					Semesters: []amizone.Semester{{Name: "Semester 3", Ref: "sem-3"}},
				}, "sem-3"),
				Selected: "sem-3",
				Rows: genCourseRows(amizone.Courses{Courses: []amizone.Course{{
					Ref:        amizone.CourseRef{Code: "CSE101", Name: "Data Structures"},
					Type:       "Core",
					Attendance: amizone.Attendance{Attended: 15, Held: 20},
				}}}),
			}},
		},
		{
			PageType: "exams",
			Head:     headData{Title: "Exam schedule"},
			User:     user,
			Body:     bodyData{ExamsData: examsData{Items: genExamRows(d.Exams.Data)}},
		},
		{
			PageType: "results",
			Head:     headData{Title: "Exam results"},
			User:     user,
			Body: bodyData{ResultsData: resultsData{
				Records: []resultRow{{Code: "CSE101", Grade: "A+", GradePoint: 10}},
				Overall: []overallRow{{Semester: "3", SGPA: "8.50", CGPA: "8.25"}},
			}},
		},
		{
			PageType: "wifi",
			Head:     headData{Title: "Wi-Fi registration"},
			User:     user,
			Body: bodyData{WifiData: wifiData{
				Addresses: []string{"AA:BB:CC:DD:EE:FF"},
				Slots:     2,
				FreeSlots: 1,
				Message:   "MAC address registered.",
			}},
		},
		{
			PageType: "feedback",
			Head:     headData{Title: "Faculty feedback"},
			User:     user,
			Body:     bodyData{FeedbackData: feedbackData{Submitted: true, FilledFor: 4}},
		},
	}

	for _, page := range pages {
		if err := templates.ExecuteTemplate(io.Discard, "page", page); err != nil {
			t.Errorf("page type %q failed to render: %v", page.PageType, err)
		}
	}
}

func TestAssetHandler(t *testing.T) {
	if err := loadTmpl(tests.GetResPath()); err != nil {
		t.Fatalf("loadTmpl: %v", err)
	}
	respath = tests.GetResPath()

	cases := []struct {
		path     string
		status   int
		mimeType string
	}{
		{"/assets/styles.css", 200, "text/css"},
		{"/assets/manifest.webmanifest", 200, "application/json"},
		{"/assets/icons/icon.svg", 200, "image/svg+xml"},
		{"/assets/icons/apple-touch-icon.png", 404, ""},
		{"/assets/nothing.js", 404, ""},
		{"/assets/", 403, ""},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", c.path, nil)
		assetHandler(w, r)
		if w.Code != c.status {
			t.Errorf("GET %s = %d, want %d", c.path, w.Code, c.status)
		}
		if c.mimeType != "" && w.Header().Get("Content-Type") != c.mimeType+`, charset="utf-8"` {
			t.Errorf("GET %s Content-Type = %q", c.path, w.Header().Get("Content-Type"))
		}
	}
}
