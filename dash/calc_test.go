package dash

import (
	"testing"

	"main/amizone"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		attended, held, want int
	}{
		{0, 0, 100},
		{15, 20, 75},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{22, 20, 110}, // upstream over-reporting passes through
		{0, 10, 0},
	}
	for _, c := range cases {
		got := Percentage(amizone.Attendance{Attended: c.attended, Held: c.held})
		if got != c.want {
			t.Errorf("Percentage(%d/%d) = %d, want %d", c.attended, c.held, got, c.want)
		}
	}
}

func TestAggregatePercentage(t *testing.T) {
	records := []amizone.AttendanceRecord{
		{Attendance: amizone.Attendance{Attended: 1, Held: 2}},
		{Attendance: amizone.Attendance{Attended: 3, Held: 4}},
		{Attendance: amizone.Attendance{Attended: 0, Held: 0}},
	}
	// 4/6 = 67, not the mean of the per-course percentages (75).
	if got := AggregatePercentage(records); got != 67 {
		t.Errorf("AggregatePercentage = %d, want 67", got)
	}
	if got := AggregatePercentage(nil); got != 100 {
		t.Errorf("AggregatePercentage(nil) = %d, want 100", got)
	}
}

func TestBandFor(t *testing.T) {
	cases := []struct {
		pct  int
		want Band
	}{
		{100, BandGood},
		{75, BandGood},
		{74, BandWarning},
		{60, BandWarning},
		{59, BandCritical},
		{0, BandCritical},
	}
	for _, c := range cases {
		if got := BandFor(c.pct); got != c.want {
			t.Errorf("BandFor(%d) = %q, want %q", c.pct, got, c.want)
		}
	}
}

func TestNormalizeMac(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"aa-bb-cc-dd-ee-ff", "AA:BB:CC:DD:EE:FF"},
		{"  AA:BB:CC:DD:EE:FF  ", "AA:BB:CC:DD:EE:FF"},
		{"aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:FF"},
		{"AA:BB:CC", ""},
		{"GG:BB:CC:DD:EE:FF", ""},
		{"AABBCCDDEEFF", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeMac(c.in); got != c.want {
			t.Errorf("NormalizeMac(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeExamEntries(t *testing.T) {
	schedule := amizone.ExamSchedule{
		Exams: []amizone.ExamScheduleEntry{
			{Course: amizone.CourseRef{Code: "CSE101"}, Time: "2026-05-11T09:30:00"},
			{Course: amizone.CourseRef{Code: "CSE102"}, Date: "12 May 2026", Time: "02:00 PM"},
			{Course: amizone.CourseRef{Code: "CSE103"}},
		},
	}
	items := NormalizeExamEntries(schedule)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].DateLabel != "11 May 2026" || items[0].TimeLabel != "09:30 AM" {
		t.Errorf("combined instant split to %q %q", items[0].DateLabel, items[0].TimeLabel)
	}
	if items[1].DateLabel != "12 May 2026" || items[1].TimeLabel != "02:00 PM" {
		t.Errorf("separate labels changed to %q %q", items[1].DateLabel, items[1].TimeLabel)
	}
	if items[2].DateLabel != "—" || items[2].TimeLabel != "—" {
		t.Errorf("missing values rendered as %q %q", items[2].DateLabel, items[2].TimeLabel)
	}
}

func TestClockTime(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2026-03-02T09:15:00", "09:15"},
		{"2026-03-02T23:05:00+05:30", "23:05"},
		{"09:15", "09:15"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ClockTime(c.in); got != c.want {
			t.Errorf("ClockTime(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClassTimeRange(t *testing.T) {
	got := ClassTimeRange("2026-03-02T09:15:00", "2026-03-02T10:10:00")
	if got != "09:15 – 10:10" {
		t.Errorf("ClassTimeRange = %q", got)
	}
}

func TestSplitFaculty(t *testing.T) {
	primary, notes := SplitFaculty("Dr. A. Sharma, Group B, Lab 2")
	if primary != "Dr. A. Sharma" {
		t.Errorf("primary = %q", primary)
	}
	if len(notes) != 2 || notes[0] != "Group B" || notes[1] != "Lab 2" {
		t.Errorf("notes = %v", notes)
	}

	primary, notes = SplitFaculty("Dr. B. Verma\n Section 3")
	if primary != "Dr. B. Verma" || len(notes) != 1 || notes[0] != "Section 3" {
		t.Errorf("newline split = %q %v", primary, notes)
	}

	primary, notes = SplitFaculty("")
	if primary != "" || notes != nil {
		t.Errorf("empty split = %q %v", primary, notes)
	}
}

func TestCourseTitle(t *testing.T) {
	if got := CourseTitle("CSE101 - Data Structures"); got != "Data Structures" {
		t.Errorf("CourseTitle = %q", got)
	}
	if got := CourseTitle("Data Structures"); got != "Data Structures" {
		t.Errorf("CourseTitle without prefix = %q", got)
	}
}
