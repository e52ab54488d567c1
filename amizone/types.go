package amizone

// Credentials is an Amizone username/password pair. It is never
// validated locally beyond being non-empty.
type Credentials struct {
	Username string
	Password string
}

// Valid reports whether both halves of the pair are present.
func (c Credentials) Valid() bool {
	return c.Username != "" && c.Password != ""
}

// CourseRef identifies a course. The code is the natural key.
type CourseRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Attendance is a pair of class counters for a course. Held == 0 is a
// valid "no sessions yet" state. Attended > Held is passed through as
// upstream reports it.
type Attendance struct {
	Attended int `json:"attended"`
	Held     int `json:"held"`
}

// Marks holds internal assessment marks.
type Marks struct {
	Have float64 `json:"have"`
	Max  float64 `json:"max"`
}

type AttendanceRecord struct {
	Course     CourseRef  `json:"course"`
	Attendance Attendance `json:"attendance"`
}

type AttendanceRecords struct {
	Records []AttendanceRecord `json:"records"`
}

// AttendanceState is the attendance marker on a single scheduled class.
type AttendanceState string

const (
	AttendancePending AttendanceState = "PENDING"
	AttendancePresent AttendanceState = "PRESENT"
	AttendanceAbsent  AttendanceState = "ABSENT"
	AttendanceNA      AttendanceState = "NA"
	AttendanceInvalid AttendanceState = "INVALID"
)

// ScheduledClass is one entry of a day's class schedule. Start and end
// times arrive as local-time ISO strings ("2006-01-02T15:04:05") in the
// institution's time zone and must not be reinterpreted as UTC.
type ScheduledClass struct {
	Course     CourseRef       `json:"course"`
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime"`
	Faculty    string          `json:"faculty"`
	Room       string          `json:"room"`
	Attendance AttendanceState `json:"attendance"`
	Cancelled  bool            `json:"cancelled"`
}

type ScheduledClasses struct {
	Classes []ScheduledClass `json:"classes"`
}

type Profile struct {
	Name               string `json:"name"`
	EnrollmentNumber   string `json:"enrollmentNumber"`
	EnrollmentValidity string `json:"enrollmentValidity"`
	Batch              string `json:"batch"`
	Program            string `json:"program"`
	DateOfBirth        string `json:"dateOfBirth"`
	BloodGroup         string `json:"bloodGroup"`
	IdCardNumber       string `json:"idCardNumber"`
	UUID               string `json:"uuid"`
}

// Semester pairs a display name with the opaque reference used to scope
// course and result queries.
type Semester struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
}

type SemesterList struct {
	Semesters []Semester `json:"semesters"`
}

type Course struct {
	Ref           CourseRef  `json:"ref"`
	Type          string     `json:"type"`
	Attendance    Attendance `json:"attendance"`
	InternalMarks Marks      `json:"internalMarks"`
	SyllabusDoc   string     `json:"syllabusDoc"`
}

type Courses struct {
	Courses []Course `json:"courses"`
}

// ExamScheduleEntry carries either a combined Time instant or separate
// Date and Time display strings; both representations occur upstream.
type ExamScheduleEntry struct {
	Course   CourseRef `json:"course"`
	Time     string    `json:"time"`
	Date     string    `json:"date"`
	Mode     string    `json:"mode"`
	Location string    `json:"location"`
}

type ExamSchedule struct {
	Title string              `json:"title"`
	Exams []ExamScheduleEntry `json:"exams"`
}

type Score struct {
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"gradePoint"`
}

type Credits struct {
	Acquired  float64 `json:"acquired"`
	Effective float64 `json:"effective"`
	Points    float64 `json:"points"`
}

type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type ExamResultRecord struct {
	Course      CourseRef `json:"course"`
	Score       Score     `json:"score"`
	Credits     Credits   `json:"credits"`
	PublishDate *Date     `json:"publishDate,omitempty"`
}

// OverallResult is one semester row of the result summary.
type OverallResult struct {
	Semester                    SemesterRef `json:"semester"`
	SemesterGradePointAverage   float64     `json:"semesterGradePointAverage"`
	CumulativeGradePointAverage float64     `json:"cumulativeGradePointAverage"`
}

type SemesterRef struct {
	SemesterRef string `json:"semesterRef"`
}

type ExamResultRecords struct {
	Records []ExamResultRecord `json:"records"`
	Overall []OverallResult    `json:"overall"`
}

// WifiMacInfo is the structured Wi-Fi registration state. Address order
// is preserved as returned.
type WifiMacInfo struct {
	Addresses []string `json:"addresses"`
	Slots     int      `json:"slots"`
	FreeSlots int      `json:"freeSlots"`
}

// WifiInfo is the legacy single-address shape some deployments return.
type WifiInfo struct {
	MacAddress string `json:"macAddress"`
}

// Normalize lifts the legacy shape into WifiMacInfo. Slot counts are
// unknown to the legacy endpoint and report as zero.
func (w WifiInfo) Normalize() WifiMacInfo {
	if w.MacAddress == "" {
		return WifiMacInfo{}
	}
	return WifiMacInfo{Addresses: []string{w.MacAddress}}
}

// FacultyFeedback is the bulk feedback submission payload. The server
// applies the same rating to every faculty member; this is upstream
// behaviour, not a client choice.
type FacultyFeedback struct {
	Rating      int    `json:"rating" validate:"min=1,max=5"`
	QueryRating int    `json:"queryRating" validate:"min=1,max=3"`
	Comment     string `json:"comment,omitempty"`
}

type FacultyFeedbackResult struct {
	FilledFor int `json:"filledFor"`
}

type wifiRegistration struct {
	Address       string `json:"address"`
	OverrideLimit bool   `json:"overrideLimit"`
}
