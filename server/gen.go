package server

import (
	"fmt"
	"sort"

	"main/amizone"
	"main/dash"
)

// Builders that turn orchestrator snapshots into template page data.
// Every section renders either its rows or its error card; partial
// data is always renderable.

func secErr(section string, status dash.Status) sectionError {
	if status.Phase != dash.Failed {
		return sectionError{Section: section}
	}
	return sectionError{Section: section, Message: status.Err}
}

func genClassRows(classes amizone.ScheduledClasses) []classRow {
	sorted := make([]amizone.ScheduledClass, len(classes.Classes))
	copy(sorted, classes.Classes)
	// ISO local timestamps sort correctly as strings.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	rows := make([]classRow, 0, len(sorted))
	for _, class := range sorted {
		primary, notes := dash.SplitFaculty(class.Faculty)
		rows = append(rows, classRow{
			TimeRange:      dash.ClassTimeRange(class.StartTime, class.EndTime),
			Title:          dash.CourseTitle(class.Course.Name),
			FacultyPrimary: primary,
			FacultyNotes:   notes,
			Room:           class.Room,
			State:          string(class.Attendance),
			Cancelled:      class.Cancelled,
		})
	}
	return rows
}

func genAttendanceRows(records amizone.AttendanceRecords) []attendanceRow {
	rows := make([]attendanceRow, 0, len(records.Records))
	for _, rec := range records.Records {
		pct := dash.Percentage(rec.Attendance)
		rows = append(rows, attendanceRow{
			Code:     rec.Course.Code,
			Name:     rec.Course.Name,
			Attended: rec.Attendance.Attended,
			Held:     rec.Attendance.Held,
			Percent:  pct,
			Band:     string(dash.BandFor(pct)),
		})
	}
	return rows
}

func genCourseRows(courses amizone.Courses) []courseRow {
	rows := make([]courseRow, 0, len(courses.Courses))
	for _, course := range courses.Courses {
		pct := dash.Percentage(course.Attendance)
		rows = append(rows, courseRow{
			Code:      course.Ref.Code,
			Name:      course.Ref.Name,
			Type:      course.Type,
			Percent:   pct,
			Band:      string(dash.BandFor(pct)),
			MarksHave: course.InternalMarks.Have,
			MarksMax:  course.InternalMarks.Max,
		})
	}
	return rows
}

func genExamRows(schedule amizone.ExamSchedule) []examRow {
	items := dash.NormalizeExamEntries(schedule)
	rows := make([]examRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, examRow{
			Code:      item.Course.Code,
			Name:      item.Course.Name,
			Mode:      item.Mode,
			Location:  item.Location,
			DateLabel: item.DateLabel,
			TimeLabel: item.TimeLabel,
		})
	}
	return rows
}

func genSemesterOptions(list amizone.SemesterList, selected string) []semesterOption {
	options := make([]semesterOption, 0, len(list.Semesters)+1)
	options = append(options, semesterOption{Name: "Current", Ref: "", Selected: selected == ""})
	for _, sem := range list.Semesters {
		options = append(options, semesterOption{
			Name:     sem.Name,
			Ref:      sem.Ref,
			Selected: sem.Ref == selected,
		})
	}
	return options
}

func genResultRows(records amizone.ExamResultRecords) ([]resultRow, []overallRow) {
	rows := make([]resultRow, 0, len(records.Records))
	for _, rec := range records.Records {
		rows = append(rows, resultRow{
			Code:       rec.Course.Code,
			Name:       rec.Course.Name,
			Grade:      rec.Score.Grade,
			GradePoint: rec.Score.GradePoint,
			Acquired:   rec.Credits.Acquired,
			Effective:  rec.Credits.Effective,
			Points:     rec.Credits.Points,
		})
	}
	overall := make([]overallRow, 0, len(records.Overall))
	for _, row := range records.Overall {
		overall = append(overall, overallRow{
			Semester: row.Semester.SemesterRef,
			SGPA:     fmt.Sprintf("%.2f", row.SemesterGradePointAverage),
			CGPA:     fmt.Sprintf("%.2f", row.CumulativeGradePointAverage),
		})
	}
	return rows, overall
}

func genProfileData(profile amizone.Profile) profileData {
	return profileData{
		Name:               profile.Name,
		EnrollmentNumber:   profile.EnrollmentNumber,
		EnrollmentValidity: profile.EnrollmentValidity,
		Batch:              profile.Batch,
		Program:            profile.Program,
		BloodGroup:         profile.BloodGroup,
		IdCardNumber:       profile.IdCardNumber,
	}
}

func genDashboardData(d dash.Dashboard) dashboardData {
	statuses := d.Statuses()
	data := dashboardData{
		AllFailed:     d.AllCoreFailed(),
		ProfileError:  secErr(dash.SectionProfile, statuses[dash.SectionProfile]),
		AttendanceErr: secErr(dash.SectionAttendance, statuses[dash.SectionAttendance]),
		ScheduleErr:   secErr(dash.SectionSchedule, statuses[dash.SectionSchedule]),
		ExamsErr:      secErr(dash.SectionExams, statuses[dash.SectionExams]),
	}
	if d.Profile.Phase == dash.Ready {
		data.Profile = genProfileData(d.Profile.Data)
	}
	if d.Attendance.Phase == dash.Ready {
		data.AttendanceRows = genAttendanceRows(d.Attendance.Data)
		data.OverallPercent = dash.AggregatePercentage(d.Attendance.Data.Records)
		data.OverallBand = string(dash.BandFor(data.OverallPercent))
	}
	if d.Schedule.Phase == dash.Ready {
		data.ScheduleRows = genClassRows(d.Schedule.Data)
	}
	if d.Exams.Phase == dash.Ready {
		data.ExamItems = genExamRows(d.Exams.Data)
	}
	return data
}

func userNameOf(d dash.Dashboard, creds amizone.Credentials) userData {
	if d.Profile.Phase == dash.Ready && d.Profile.Data.Name != "" {
		return userData{Name: d.Profile.Data.Name}
	}
	return userData{Name: creds.Username}
}
