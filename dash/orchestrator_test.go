package dash

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"main/amizone"
	"main/errors"
)

// fakeAPI satisfies API with canned responses and per-endpoint call
// counters.
type fakeAPI struct {
	profile       amizone.Profile
	profileErr    error
	profileCalls  atomic.Int64
	attendance    amizone.AttendanceRecords
	attendanceErr error
	schedule      amizone.ScheduledClasses
	courses       amizone.Courses
	courseRefs    []string
	wifi          amizone.WifiMacInfo
	wifiErr       error
	legacy        amizone.WifiInfo
	legacyErr     error
	exams         amizone.ExamSchedule
	results       amizone.ExamResultRecords
	resultRefs    []string
	semesters     amizone.SemesterList
}

func (f *fakeAPI) Profile(ctx context.Context, creds amizone.Credentials) (amizone.Profile, error) {
	f.profileCalls.Add(1)
	return f.profile, f.profileErr
}

func (f *fakeAPI) Attendance(ctx context.Context, creds amizone.Credentials) (amizone.AttendanceRecords, error) {
	return f.attendance, f.attendanceErr
}

func (f *fakeAPI) ClassSchedule(ctx context.Context, creds amizone.Credentials, date time.Time) (amizone.ScheduledClasses, error) {
	return f.schedule, nil
}

func (f *fakeAPI) Courses(ctx context.Context, creds amizone.Credentials) (amizone.Courses, error) {
	f.courseRefs = append(f.courseRefs, "")
	return f.courses, nil
}

func (f *fakeAPI) CoursesForSemester(ctx context.Context, creds amizone.Credentials, ref string) (amizone.Courses, error) {
	f.courseRefs = append(f.courseRefs, ref)
	return f.courses, nil
}

func (f *fakeAPI) WifiMacInfo(ctx context.Context, creds amizone.Credentials) (amizone.WifiMacInfo, error) {
	return f.wifi, f.wifiErr
}

func (f *fakeAPI) LegacyWifiInfo(ctx context.Context, creds amizone.Credentials) (amizone.WifiInfo, error) {
	return f.legacy, f.legacyErr
}

func (f *fakeAPI) ExamSchedule(ctx context.Context, creds amizone.Credentials) (amizone.ExamSchedule, error) {
	return f.exams, nil
}

func (f *fakeAPI) ExamResult(ctx context.Context, creds amizone.Credentials) (amizone.ExamResultRecords, error) {
	f.resultRefs = append(f.resultRefs, "")
	return f.results, nil
}

func (f *fakeAPI) ExamResultForSemester(ctx context.Context, creds amizone.Credentials, ref string) (amizone.ExamResultRecords, error) {
	f.resultRefs = append(f.resultRefs, ref)
	return f.results, nil
}

func (f *fakeAPI) Semesters(ctx context.Context, creds amizone.Credentials) (amizone.SemesterList, error) {
	return f.semesters, nil
}

var testCreds = amizone.Credentials{Username: "student", Password: "hunter2"}

func TestRefreshSettlesSectionsIndependently(t *testing.T) {
	api := &fakeAPI{
		profile:       amizone.Profile{Name: "A. Student"},
		attendanceErr: errors.NewError("amizone.Attendance", "upstream said no", nil),
	}
	o := NewOrchestrator(api, testCreds, time.UTC)

	d := o.Refresh(context.Background())
	if d.Profile.Phase != Ready || d.Profile.Data.Name != "A. Student" {
		t.Errorf("profile did not settle ready: %+v", d.Profile)
	}
	if d.Attendance.Phase != Failed {
		t.Errorf("attendance phase = %v, want Failed", d.Attendance.Phase)
	}
	if d.Attendance.Err == "" {
		t.Error("failed section has no display message")
	}
	if d.AllCoreFailed() {
		t.Error("AllCoreFailed with a successful section")
	}
}

func TestRetryReloadsOnlyThatSection(t *testing.T) {
	api := &fakeAPI{
		profile:       amizone.Profile{Name: "A. Student"},
		attendanceErr: errors.NewError("amizone.Attendance", "upstream said no", nil),
	}
	o := NewOrchestrator(api, testCreds, time.UTC)
	o.Refresh(context.Background())
	before := api.profileCalls.Load()

	api.attendanceErr = nil
	api.attendance = amizone.AttendanceRecords{
		Records: []amizone.AttendanceRecord{{Attendance: amizone.Attendance{Attended: 9, Held: 10}}},
	}
	if err := o.Retry(context.Background(), SectionAttendance); err != nil {
		t.Fatalf("retry: %v", err)
	}

	d := o.Snapshot()
	if d.Attendance.Phase != Ready {
		t.Errorf("attendance phase = %v, want Ready", d.Attendance.Phase)
	}
	if d.Attendance.Err != "" {
		t.Errorf("retried section kept error %q", d.Attendance.Err)
	}
	if api.profileCalls.Load() != before {
		t.Error("retry refetched an unrelated section")
	}
}

func TestRetryUnknownSection(t *testing.T) {
	o := NewOrchestrator(&fakeAPI{}, testCreds, time.UTC)
	if err := o.Retry(context.Background(), "bogus"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Retry(bogus) = %v, want ErrNotFound", err)
	}
}

func TestWifiLegacyFallback(t *testing.T) {
	api := &fakeAPI{
		wifiErr: errors.NewError("amizone.WifiMacInfo", "404", errors.ErrNotFound),
		legacy:  amizone.WifiInfo{MacAddress: "AA:BB:CC:DD:EE:FF"},
	}
	o := NewOrchestrator(api, testCreds, time.UTC)

	d := o.Refresh(context.Background())
	if d.Wifi.Phase != Ready {
		t.Fatalf("wifi phase = %v, want Ready", d.Wifi.Phase)
	}
	info := d.Wifi.Data
	if len(info.Addresses) != 1 || info.Addresses[0] != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("addresses = %v", info.Addresses)
	}
	if info.Slots != 0 || info.FreeSlots != 0 {
		t.Errorf("legacy slot counts = %d/%d, want 0/0", info.FreeSlots, info.Slots)
	}
}

func TestWifiBothEndpointsFail(t *testing.T) {
	api := &fakeAPI{
		wifiErr:   errors.NewError("amizone.WifiMacInfo", "boom", nil),
		legacyErr: errors.NewError("amizone.LegacyWifiInfo", "boom", nil),
	}
	o := NewOrchestrator(api, testCreds, time.UTC)
	if d := o.Refresh(context.Background()); d.Wifi.Phase != Failed {
		t.Errorf("wifi phase = %v, want Failed", d.Wifi.Phase)
	}
}

func TestRefreshPreservesSemesterSelection(t *testing.T) {
	api := &fakeAPI{}
	o := NewOrchestrator(api, testCreds, time.UTC)
	o.Refresh(context.Background())

	if err := o.SelectCoursesSemester(context.Background(), "sem-3"); err != nil {
		t.Fatalf("select semester: %v", err)
	}
	api.courseRefs = nil

	d := o.Refresh(context.Background())
	if d.CoursesSemester != "sem-3" {
		t.Errorf("refresh dropped semester selection: %q", d.CoursesSemester)
	}
	found := false
	for _, ref := range api.courseRefs {
		if ref == "sem-3" {
			found = true
		}
	}
	if !found {
		t.Errorf("refresh fetched courses for %v, want sem-3", api.courseRefs)
	}
}

func TestEnsureResultsIsLazyAndScoped(t *testing.T) {
	api := &fakeAPI{
		semesters: amizone.SemesterList{Semesters: []amizone.Semester{{Name: "3", Ref: "sem-3"}}},
	}
	o := NewOrchestrator(api, testCreds, time.UTC)
	d := o.Refresh(context.Background())
	if d.Results.Phase != NotStarted {
		t.Fatalf("results loaded eagerly: %v", d.Results.Phase)
	}
	if len(api.resultRefs) != 0 {
		t.Fatal("results fetched before EnsureResults")
	}

	d = o.EnsureResults(context.Background())
	if d.Results.Phase != Ready || d.Semesters.Phase != Ready {
		t.Fatalf("EnsureResults phases: results=%v semesters=%v", d.Results.Phase, d.Semesters.Phase)
	}

	if err := o.SelectResultsSemester(context.Background(), "sem-3"); err != nil {
		t.Fatalf("select results semester: %v", err)
	}
	last := api.resultRefs[len(api.resultRefs)-1]
	if last != "sem-3" {
		t.Errorf("last result fetch scoped to %q, want sem-3", last)
	}

	// A refresh reloads results for the preserved selection.
	api.resultRefs = nil
	d = o.Refresh(context.Background())
	if d.ResultsSemester != "sem-3" {
		t.Errorf("refresh dropped results selection: %q", d.ResultsSemester)
	}
	if len(api.resultRefs) != 1 || api.resultRefs[0] != "sem-3" {
		t.Errorf("refresh result fetches = %v, want [sem-3]", api.resultRefs)
	}
}

func TestStaleWriteDiscarded(t *testing.T) {
	api := &fakeAPI{profile: amizone.Profile{Name: "Old"}}
	o := NewOrchestrator(api, testCreds, time.UTC)
	o.Refresh(context.Background())

	// Capture the generation, then simulate a newer refresh finishing
	// before the captured loader writes back.
	o.mu.Lock()
	stale := o.gen
	o.mu.Unlock()

	api.profile = amizone.Profile{Name: "New"}
	o.Refresh(context.Background())

	api.profile = amizone.Profile{Name: "Stale"}
	o.loadProfile(context.Background(), stale)

	if d := o.Snapshot(); d.Profile.Data.Name != "New" {
		t.Errorf("stale write overwrote newer state: %q", d.Profile.Data.Name)
	}
}

func TestAllCoreFailed(t *testing.T) {
	api := &fakeAPI{}
	o := NewOrchestrator(api, testCreds, time.UTC)
	o.mu.Lock()
	for _, section := range coreSections {
		switch section {
		case SectionProfile:
			o.dash.Profile = failed[amizone.Profile]("x")
		case SectionAttendance:
			o.dash.Attendance = failed[amizone.AttendanceRecords]("x")
		case SectionSchedule:
			o.dash.Schedule = failed[amizone.ScheduledClasses]("x")
		case SectionCourses:
			o.dash.Courses = failed[amizone.Courses]("x")
		case SectionWifi:
			o.dash.Wifi = failed[amizone.WifiMacInfo]("x")
		case SectionExams:
			o.dash.Exams = failed[amizone.ExamSchedule]("x")
		}
	}
	o.mu.Unlock()
	if !o.Snapshot().AllCoreFailed() {
		t.Error("AllCoreFailed = false with every core section failed")
	}
}

func TestDisplayMapsTaxonomy(t *testing.T) {
	if got := display(errors.NewError("amizone", "x", errors.ErrInvalidCreds), "f"); got != "invalid credentials" {
		t.Errorf("display(invalid creds) = %q", got)
	}
	if got := display(errors.NewError("amizone", "x", errors.ErrSchemaMismatch), "f"); got != "unexpected response from Amizone" {
		t.Errorf("display(schema mismatch) = %q", got)
	}
	if got := display(errors.NewError("amizone", "server said no", nil), "f"); got != "server said no" {
		t.Errorf("display(wrapped) = %q", got)
	}
}
