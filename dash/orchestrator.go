package dash

import (
	"context"
	"sync"
	"time"

	"main/amizone"
	"main/errors"
	"main/logger"
)

// API is the slice of the Amizone client the orchestrator drives.
// *amizone.Client satisfies it; tests substitute fakes.
type API interface {
	Profile(ctx context.Context, creds amizone.Credentials) (amizone.Profile, error)
	Attendance(ctx context.Context, creds amizone.Credentials) (amizone.AttendanceRecords, error)
	ClassSchedule(ctx context.Context, creds amizone.Credentials, date time.Time) (amizone.ScheduledClasses, error)
	Courses(ctx context.Context, creds amizone.Credentials) (amizone.Courses, error)
	CoursesForSemester(ctx context.Context, creds amizone.Credentials, ref string) (amizone.Courses, error)
	WifiMacInfo(ctx context.Context, creds amizone.Credentials) (amizone.WifiMacInfo, error)
	LegacyWifiInfo(ctx context.Context, creds amizone.Credentials) (amizone.WifiInfo, error)
	ExamSchedule(ctx context.Context, creds amizone.Credentials) (amizone.ExamSchedule, error)
	ExamResult(ctx context.Context, creds amizone.Credentials) (amizone.ExamResultRecords, error)
	ExamResultForSemester(ctx context.Context, creds amizone.Credentials, ref string) (amizone.ExamResultRecords, error)
	Semesters(ctx context.Context, creds amizone.Credentials) (amizone.SemesterList, error)
}

// Orchestrator coordinates the reads that populate one user's
// dashboard. Core sections are fetched concurrently and settle
// independently: one section's failure never blocks or invalidates
// another's success. In-flight requests are not cancelled on refresh;
// instead every write is guarded by a generation counter so a stale
// response cannot overwrite state a newer refresh owns.
type Orchestrator struct {
	api   API
	creds amizone.Credentials
	tz    *time.Location
	clock func() time.Time

	mu   sync.Mutex
	gen  uint64
	dash Dashboard
}

// NewOrchestrator returns an orchestrator for one user. tz is the
// institution's time zone, used to pick "today" for the schedule.
func NewOrchestrator(api API, creds amizone.Credentials, tz *time.Location) *Orchestrator {
	if tz == nil {
		tz = time.Local
	}
	return &Orchestrator{
		api:   api,
		creds: creds,
		tz:    tz,
		clock: time.Now,
	}
}

// Snapshot returns a copy of the current dashboard state.
func (o *Orchestrator) Snapshot() Dashboard {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dash
}

// Refresh replays the full concurrent batch of core reads and blocks
// until every section settles. The current semester selections are
// preserved; results, if previously loaded, reload for the selected
// semester.
func (o *Orchestrator) Refresh(ctx context.Context) Dashboard {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.dash.Profile = loading[amizone.Profile]()
	o.dash.Attendance = loading[amizone.AttendanceRecords]()
	o.dash.Schedule = loading[amizone.ScheduledClasses]()
	o.dash.Courses = loading[amizone.Courses]()
	o.dash.Wifi = loading[amizone.WifiMacInfo]()
	o.dash.Exams = loading[amizone.ExamSchedule]()
	reloadResults := o.dash.Results.Phase != NotStarted
	if reloadResults {
		o.dash.Results = loading[amizone.ExamResultRecords]()
	}
	o.mu.Unlock()

	loaders := []func(context.Context, uint64) error{
		o.loadProfile,
		o.loadAttendance,
		o.loadSchedule,
		o.loadCourses,
		o.loadWifi,
		o.loadExams,
	}
	if reloadResults {
		loaders = append(loaders, o.loadResults)
	}

	ch := make(chan Pair[int, error])
	for i, load := range loaders {
		go func(i int, load func(context.Context, uint64) error) {
			ch <- Pair[int, error]{i, load(ctx, gen)}
		}(i, load)
	}
	for range loaders {
		result := <-ch
		if result.Second != nil {
			logger.Debug(result.Second)
		}
	}

	return o.Snapshot()
}

// Retry re-fetches a single section without touching the others. A
// successful retry clears only that section's error.
func (o *Orchestrator) Retry(ctx context.Context, section string) error {
	o.mu.Lock()
	gen := o.gen
	o.mu.Unlock()

	switch section {
	case SectionProfile:
		return o.loadProfile(ctx, gen)
	case SectionAttendance:
		return o.loadAttendance(ctx, gen)
	case SectionSchedule:
		return o.loadSchedule(ctx, gen)
	case SectionCourses:
		return o.loadCourses(ctx, gen)
	case SectionWifi:
		return o.loadWifi(ctx, gen)
	case SectionExams:
		return o.loadExams(ctx, gen)
	case SectionResults:
		return o.loadResults(ctx, gen)
	case SectionSemesters:
		return o.loadSemesters(ctx, gen)
	}
	return errors.NewError("dash.Retry", "unknown section "+section, errors.ErrNotFound)
}

// SelectCoursesSemester reloads only the courses section, scoped to the
// given semester reference. The empty reference means the current
// semester.
func (o *Orchestrator) SelectCoursesSemester(ctx context.Context, ref string) error {
	o.mu.Lock()
	o.dash.CoursesSemester = ref
	o.dash.Courses = loading[amizone.Courses]()
	gen := o.gen
	o.mu.Unlock()
	return o.loadCourses(ctx, gen)
}

// SelectResultsSemester reloads only the results section, scoped to the
// given semester reference.
func (o *Orchestrator) SelectResultsSemester(ctx context.Context, ref string) error {
	o.mu.Lock()
	o.dash.ResultsSemester = ref
	o.dash.Results = loading[amizone.ExamResultRecords]()
	gen := o.gen
	o.mu.Unlock()
	return o.loadResults(ctx, gen)
}

// EnsureResults lazily loads the results view: the semester list and
// the currently selected semester's results, concurrently. Sections
// already loaded are not refetched.
func (o *Orchestrator) EnsureResults(ctx context.Context) Dashboard {
	o.mu.Lock()
	gen := o.gen
	needResults := o.dash.Results.Phase == NotStarted || o.dash.Results.Phase == Failed
	needSemesters := o.dash.Semesters.Phase == NotStarted || o.dash.Semesters.Phase == Failed
	if needResults {
		o.dash.Results = loading[amizone.ExamResultRecords]()
	}
	if needSemesters {
		o.dash.Semesters = loading[amizone.SemesterList]()
	}
	o.mu.Unlock()

	var loaders []func(context.Context, uint64) error
	if needResults {
		loaders = append(loaders, o.loadResults)
	}
	if needSemesters {
		loaders = append(loaders, o.loadSemesters)
	}
	ch := make(chan Pair[int, error])
	for i, load := range loaders {
		go func(i int, load func(context.Context, uint64) error) {
			ch <- Pair[int, error]{i, load(ctx, gen)}
		}(i, load)
	}
	for range loaders {
		result := <-ch
		if result.Second != nil {
			logger.Debug(result.Second)
		}
	}
	return o.Snapshot()
}

// apply runs mutate under the lock unless gen has been superseded by a
// newer refresh, in which case the stale result is discarded.
func (o *Orchestrator) apply(gen uint64, mutate func(*Dashboard)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return
	}
	mutate(&o.dash)
}

func (o *Orchestrator) loadProfile(ctx context.Context, gen uint64) error {
	profile, err := o.api.Profile(ctx, o.creds)
	o.apply(gen, func(d *Dashboard) {
		if err != nil {
			d.Profile = failed[amizone.Profile](display(err, "failed to load profile"))
			return
		}
		d.Profile = ready(profile)
	})
	return err
}

func (o *Orchestrator) loadAttendance(ctx context.Context, gen uint64) error {
	records, err := o.api.Attendance(ctx, o.creds)
	o.apply(gen, func(d *Dashboard) {
		if err != nil {
			d.Attendance = failed[amizone.AttendanceRecords](display(err, "failed to load attendance"))
			return
		}
		d.Attendance = ready(records)
	})
	return err
}

func (o *Orchestrator) loadSchedule(ctx context.Context, gen uint64) error {
	today := o.clock().In(o.tz)
	classes, err := o.api.ClassSchedule(ctx, o.creds, today)
	o.apply(gen, func(d *Dashboard) {
		if err != nil {
			d.Schedule = failed[amizone.ScheduledClasses](display(err, "failed to load schedule"))
			return
		}
		d.Schedule = ready(classes)
	})
	return err
}

func (o *Orchestrator) loadCourses(ctx context.Context, gen uint64) error {
	o.mu.Lock()
	ref := o.dash.CoursesSemester
	o.mu.Unlock()

	var courses amizone.Courses
	var err error
	if ref == "" {
		courses, err = o.api.Courses(ctx, o.creds)
	} else {
		courses, err = o.api.CoursesForSemester(ctx, o.creds, ref)
	}
	o.apply(gen, func(d *Dashboard) {
		if err != nil {
			d.Courses = failed[amizone.Courses](display(err, "failed to load courses"))
			return
		}
		d.Courses = ready(courses)
	})
	return err
}

// loadWifi tries the structured endpoint first and falls back to the
// legacy single-address endpoint, normalizing its shape.
func (o *Orchestrator) loadWifi(ctx context.Context, gen uint64) error {
	info, err := o.api.WifiMacInfo(ctx, o.creds)
	if err != nil {
		legacy, legacyErr := o.api.LegacyWifiInfo(ctx, o.creds)
		if legacyErr == nil && legacy.MacAddress != "" {
			info, err = legacy.Normalize(), nil
		}
	}
	o.apply(gen, func(d *Dashboard) {
		if err != nil {
			d.Wifi = failed[amizone.WifiMacInfo](display(err, "failed to load Wi-Fi info"))
			return
		}
		d.Wifi = ready(info)
	})
	return err
}

func (o *Orchestrator) loadExams(ctx context.Context, gen uint64) error {
	schedule, err := o.api.ExamSchedule(ctx, o.creds)
	o.apply(gen, func(d *Dashboard) {
		if err != nil {
			d.Exams = failed[amizone.ExamSchedule](display(err, "failed to load exam schedule"))
			return
		}
		d.Exams = ready(schedule)
	})
	return err
}

func (o *Orchestrator) loadResults(ctx context.Context, gen uint64) error {
	o.mu.Lock()
	ref := o.dash.ResultsSemester
	o.mu.Unlock()

	var records amizone.ExamResultRecords
	var err error
	if ref == "" {
		records, err = o.api.ExamResult(ctx, o.creds)
	} else {
		records, err = o.api.ExamResultForSemester(ctx, o.creds, ref)
	}
	o.apply(gen, func(d *Dashboard) {
		if err != nil {
			d.Results = failed[amizone.ExamResultRecords](display(err, "failed to load results"))
			return
		}
		d.Results = ready(records)
	})
	return err
}

func (o *Orchestrator) loadSemesters(ctx context.Context, gen uint64) error {
	list, err := o.api.Semesters(ctx, o.creds)
	o.apply(gen, func(d *Dashboard) {
		if err != nil {
			d.Semesters = failed[amizone.SemesterList](display(err, "failed to load semesters"))
			return
		}
		d.Semesters = ready(list)
	})
	return err
}

// display reduces an error to the message shown on a section card.
func display(err error, fallback string) string {
	if errors.Is(err, errors.ErrInvalidCreds) {
		return "invalid credentials"
	}
	if errors.Is(err, errors.ErrSchemaMismatch) {
		return "unexpected response from Amizone"
	}
	var wrapped errors.ErrorWrapper
	if errors.As(err, &wrapped) && wrapped.Text != "" {
		return wrapped.Text
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}
