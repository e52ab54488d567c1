package amizone

import (
	"main/errors"
)

// checker is implemented by response shapes that carry structural
// invariants beyond what JSON decoding enforces. The client runs the
// check once after decoding; downstream code never re-checks shape.
type checker interface {
	check() error
}

func mismatch(text string) error {
	return errors.NewError("amizone", text, errors.ErrSchemaMismatch)
}

func (c CourseRef) check() error {
	if c.Code == "" && c.Name == "" {
		return mismatch("course reference has neither code nor name")
	}
	return nil
}

func (a Attendance) check() error {
	if a.Attended < 0 || a.Held < 0 {
		return mismatch("negative attendance counter")
	}
	return nil
}

func (r AttendanceRecords) check() error {
	for _, rec := range r.Records {
		if err := rec.Course.check(); err != nil {
			return err
		}
		if err := rec.Attendance.check(); err != nil {
			return err
		}
	}
	return nil
}

func (s ScheduledClasses) check() error {
	for _, class := range s.Classes {
		if err := class.Course.check(); err != nil {
			return err
		}
		if class.StartTime == "" || class.EndTime == "" {
			return mismatch("scheduled class is missing start or end time")
		}
	}
	return nil
}

func (p Profile) check() error {
	if p.Name == "" && p.EnrollmentNumber == "" {
		return mismatch("profile has neither name nor enrollment number")
	}
	return nil
}

func (l SemesterList) check() error {
	for _, sem := range l.Semesters {
		if sem.Ref == "" {
			return mismatch("semester entry is missing its reference")
		}
	}
	return nil
}

func (c Courses) check() error {
	for _, course := range c.Courses {
		if err := course.Ref.check(); err != nil {
			return err
		}
		if err := course.Attendance.check(); err != nil {
			return err
		}
	}
	return nil
}

func (s ExamSchedule) check() error {
	for _, exam := range s.Exams {
		if err := exam.Course.check(); err != nil {
			return err
		}
	}
	return nil
}

func (r ExamResultRecords) check() error {
	for _, rec := range r.Records {
		if err := rec.Course.check(); err != nil {
			return err
		}
	}
	return nil
}

func (w WifiMacInfo) check() error {
	if w.Slots < 0 || w.FreeSlots < 0 {
		return mismatch("negative Wi-Fi slot counter")
	}
	return nil
}

func (w WifiInfo) check() error {
	return nil
}

func (f FacultyFeedbackResult) check() error {
	if f.FilledFor < 0 {
		return mismatch("negative feedback record count")
	}
	return nil
}
