package server

// Primary (page, head, body)

type pageData struct {
	PageType string
	Head     headData
	Body     bodyData
	User     userData
}

type headData struct {
	Title string
}

type bodyData struct {
	ErrorData      errData
	LoginData      loginData
	DashboardData  dashboardData
	ScheduleData   scheduleData
	AttendanceData attendanceData
	CoursesData    coursesData
	ExamsData      examsData
	ResultsData    resultsData
	WifiData       wifiData
	FeedbackData   feedbackData
}

type userData struct {
	Name string
}

// Error page

type errData struct {
	Heading  string
	Message  string
	InfoLink string
}

// Login page

type loginData struct {
	Failed   bool
	Redirect string
}

// Section error card: every section view carries one; an empty Message
// means the section loaded.

type sectionError struct {
	Message string
	Section string
}

// Dashboard overview

type dashboardData struct {
	AllFailed      bool
	Profile        profileData
	ProfileError   sectionError
	OverallPercent int
	OverallBand    string
	AttendanceRows []attendanceRow
	AttendanceErr  sectionError
	ScheduleRows   []classRow
	ScheduleErr    sectionError
	ExamItems      []examRow
	ExamsErr       sectionError
}

type profileData struct {
	Name               string
	EnrollmentNumber   string
	EnrollmentValidity string
	Batch              string
	Program            string
	BloodGroup         string
	IdCardNumber       string
}

// Schedule

type scheduleData struct {
	Error     sectionError
	DateLabel string
	DayLabel  string
	Rows      []classRow
}

type classRow struct {
	TimeRange      string
	Title          string
	FacultyPrimary string
	FacultyNotes   []string
	Room           string
	State          string
	Cancelled      bool
}

// Attendance

type attendanceData struct {
	Error          sectionError
	Rows           []attendanceRow
	OverallPercent int
	OverallBand    string
}

type attendanceRow struct {
	Code     string
	Name     string
	Attended int
	Held     int
	Percent  int
	Band     string
}

// Courses

type coursesData struct {
	Error     sectionError
	Semesters []semesterOption
	Selected  string
	Rows      []courseRow
}

type semesterOption struct {
	Name     string
	Ref      string
	Selected bool
}

type courseRow struct {
	Code      string
	Name      string
	Type      string
	Percent   int
	Band      string
	MarksHave float64
	MarksMax  float64
}

// Exams

type examsData struct {
	Error sectionError
	Items []examRow
}

type examRow struct {
	Code      string
	Name      string
	Mode      string
	Location  string
	DateLabel string
	TimeLabel string
}

// Results

type resultsData struct {
	Error     sectionError
	Semesters []semesterOption
	Selected  string
	Records   []resultRow
	Overall   []overallRow
}

type resultRow struct {
	Code       string
	Name       string
	Grade      string
	GradePoint float64
	Acquired   float64
	Effective  float64
	Points     float64
}

type overallRow struct {
	Semester string
	SGPA     string
	CGPA     string
}

// Wi-Fi

type wifiData struct {
	Error     sectionError
	Addresses []string
	Slots     int
	FreeSlots int
	Message   string
}

// Feedback

type feedbackData struct {
	Error     string
	Submitted bool
	FilledFor int
}

var loginPageData = pageData{
	PageType: "login",
	Head: headData{
		Title: "Login",
	},
	Body: bodyData{
		LoginData: loginData{
			Failed: false,
		},
	},
}

var statusNotFoundData = pageData{
	PageType: "error",
	Head: headData{
		Title: "404 Not Found",
	},
	Body: bodyData{
		ErrorData: errData{
			Heading: "404 Not Found",
			Message: "The requested resource was not found on the server.",
		},
	},
}

var statusServerErrorData = pageData{
	PageType: "error",
	Head: headData{
		Title: "500 Internal Server Error",
	},
	Body: bodyData{
		ErrorData: errData{
			Heading: "500 Internal Server Error",
			Message: "The server encountered an unexpected error and cannot continue.",
		},
	},
}

var statusForbiddenData = pageData{
	PageType: "error",
	Head: headData{
		Title: "403 Forbidden",
	},
	Body: bodyData{
		ErrorData: errData{
			Heading: "403 Forbidden",
			Message: "You do not have permission to access this resource.",
		},
	},
}

// Shown when every core section failed to load.
var statusAllFailedData = pageData{
	PageType: "error",
	Head: headData{
		Title: "Amizone Unreachable",
	},
	Body: bodyData{
		ErrorData: errData{
			Heading: "Could not load your dashboard",
			Message: "None of the dashboard sections could be loaded from Amizone. Refresh to try again.",
		},
	},
}
