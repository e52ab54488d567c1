package dash

import (
	"math"
	"regexp"
	"strings"
	"time"

	"main/amizone"
)

// Band is the severity band of an attendance percentage.
type Band string

const (
	BandGood     Band = "good"
	BandWarning  Band = "warning"
	BandCritical Band = "critical"
)

// Percentage returns the attendance percentage rounded to the nearest
// integer. No sessions held counts as full attendance. Values over 100
// are passed through when upstream reports attended > held.
func Percentage(a amizone.Attendance) int {
	if a.Held == 0 {
		return 100
	}
	return int(math.Round(float64(a.Attended) / float64(a.Held) * 100))
}

// AggregatePercentage sums the counters across all records first and
// applies the percentage rule to the sums. This is not the mean of the
// per-course percentages.
func AggregatePercentage(records []amizone.AttendanceRecord) int {
	var total amizone.Attendance
	for _, rec := range records {
		total.Attended += rec.Attendance.Attended
		total.Held += rec.Attendance.Held
	}
	return Percentage(total)
}

// BandFor partitions percentages at exactly 75 and 60.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 75:
		return BandGood
	case percentage >= 60:
		return BandWarning
	default:
		return BandCritical
	}
}

var macGroups = regexp.MustCompile(`^[0-9A-F]{2}(:[0-9A-F]{2}){5}$`)

// NormalizeMac canonicalizes user-entered MAC addresses: whitespace
// trimmed, dash separators converted to colons, hex digits uppercased.
// The empty string is returned for anything that does not reduce to six
// colon-separated two-digit hex groups.
func NormalizeMac(raw string) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", ":"))
	if !macGroups.MatchString(cleaned) {
		return ""
	}
	return cleaned
}

// Placeholder rendered for missing or unparseable date/time values.
const noValue = "—"

// ExamItem is a display-normalized examination entry.
type ExamItem struct {
	Course    amizone.CourseRef
	Mode      string
	Location  string
	DateLabel string
	TimeLabel string
}

// instants the exam schedule has been seen to carry
var examTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// NormalizeExamEntries reduces both upstream time representations to
// one date label plus one time label per entry. A combined instant is
// split; separate date and time strings pass through unchanged; missing
// values render as a placeholder, never an error.
func NormalizeExamEntries(schedule amizone.ExamSchedule) []ExamItem {
	items := make([]ExamItem, 0, len(schedule.Exams))
	for _, exam := range schedule.Exams {
		item := ExamItem{
			Course:    exam.Course,
			Mode:      exam.Mode,
			Location:  exam.Location,
			DateLabel: noValue,
			TimeLabel: noValue,
		}
		if strings.Contains(exam.Time, "T") {
			if when, ok := parseExamTime(exam.Time); ok {
				item.DateLabel = when.Format("02 Jan 2006")
				item.TimeLabel = when.Format("03:04 PM")
				items = append(items, item)
				continue
			}
		}
		if exam.Date != "" {
			item.DateLabel = exam.Date
		}
		if exam.Time != "" && !strings.Contains(exam.Time, "T") {
			item.TimeLabel = exam.Time
		}
		items = append(items, item)
	}
	return items
}

func parseExamTime(value string) (time.Time, bool) {
	for _, layout := range examTimeLayouts {
		if when, err := time.Parse(layout, value); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}

// ClockTime extracts the HH:mm label from an upstream timestamp. The
// API reports institution-local times, so the label is cut out of the
// string rather than parsed and re-zoned.
func ClockTime(timestamp string) string {
	if timestamp == "" {
		return ""
	}
	if i := strings.Index(timestamp, "T"); i != -1 {
		timestamp = timestamp[i+1:]
	}
	if len(timestamp) < 5 {
		return timestamp
	}
	return timestamp[:5]
}

// ClassTimeRange renders the legacy HH:mm – HH:mm range for a class.
func ClassTimeRange(start, end string) string {
	return ClockTime(start) + " – " + ClockTime(end)
}

// SplitFaculty breaks a "Primary, Group/Sec ..." faculty string into
// the primary line and any secondary annotation lines. Upstream values
// may already contain newlines; those split first.
func SplitFaculty(faculty string) (string, []string) {
	faculty = strings.TrimSpace(faculty)
	if faculty == "" {
		return "", nil
	}
	if strings.Contains(faculty, "\n") {
		lines := strings.Split(faculty, "\n")
		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}
		return lines[0], lines[1:]
	}
	parts := strings.Split(faculty, ", ")
	return parts[0], parts[1:]
}

// CourseTitle strips the "CODE - " prefix the legacy widget omits.
func CourseTitle(name string) string {
	if _, title, found := strings.Cut(name, " - "); found {
		return title
	}
	return name
}
