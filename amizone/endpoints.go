package amizone

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Each binding below is a thin wrapper over call for one fixed API
// endpoint. Reads are side-effect free; RegisterWifiMac,
// DeregisterWifiMac and SubmitFacultyFeedback are the only mutating
// calls, and callers obtain the new state by re-fetching.

func (c *Client) Profile(ctx context.Context, creds Credentials) (Profile, error) {
	var profile Profile
	err := c.call(ctx, http.MethodGet, "/api/v1/user_profile", creds, nil, &profile)
	return profile, err
}

func (c *Client) Attendance(ctx context.Context, creds Credentials) (AttendanceRecords, error) {
	var records AttendanceRecords
	err := c.call(ctx, http.MethodGet, "/api/v1/attendance", creds, nil, &records)
	return records, err
}

func (c *Client) Semesters(ctx context.Context, creds Credentials) (SemesterList, error) {
	var list SemesterList
	err := c.call(ctx, http.MethodGet, "/api/v1/semesters", creds, nil, &list)
	return list, err
}

func (c *Client) Courses(ctx context.Context, creds Credentials) (Courses, error) {
	var courses Courses
	err := c.call(ctx, http.MethodGet, "/api/v1/courses", creds, nil, &courses)
	return courses, err
}

func (c *Client) CoursesForSemester(ctx context.Context, creds Credentials, ref string) (Courses, error) {
	var courses Courses
	err := c.call(ctx, http.MethodGet, "/api/v1/courses/"+url.PathEscape(ref), creds, nil, &courses)
	return courses, err
}

// ClassSchedule fetches the schedule for one calendar day, keyed by
// year/month/day path segments.
func (c *Client) ClassSchedule(ctx context.Context, creds Credentials, date time.Time) (ScheduledClasses, error) {
	var classes ScheduledClasses
	endpoint := fmt.Sprintf("/api/v1/class_schedule/%d/%02d/%02d", date.Year(), int(date.Month()), date.Day())
	err := c.call(ctx, http.MethodGet, endpoint, creds, nil, &classes)
	return classes, err
}

func (c *Client) WifiMacInfo(ctx context.Context, creds Credentials) (WifiMacInfo, error) {
	var info WifiMacInfo
	err := c.call(ctx, http.MethodGet, "/api/v1/wifi_mac", creds, nil, &info)
	return info, err
}

// LegacyWifiInfo queries the single-address endpoint that some
// deployments still serve. Callers normalize the result themselves.
func (c *Client) LegacyWifiInfo(ctx context.Context, creds Credentials) (WifiInfo, error) {
	var info WifiInfo
	err := c.call(ctx, http.MethodGet, "/api/v1/wifi_mac_address", creds, nil, &info)
	return info, err
}

func (c *Client) RegisterWifiMac(ctx context.Context, creds Credentials, addr string, overrideLimit bool) error {
	payload := wifiRegistration{Address: addr, OverrideLimit: overrideLimit}
	return c.call(ctx, http.MethodPost, "/api/v1/wifi_mac", creds, payload, nil)
}

func (c *Client) DeregisterWifiMac(ctx context.Context, creds Credentials, addr string) error {
	return c.call(ctx, http.MethodDelete, "/api/v1/wifi_mac/"+url.PathEscape(addr), creds, nil, nil)
}

func (c *Client) ExamSchedule(ctx context.Context, creds Credentials) (ExamSchedule, error) {
	var schedule ExamSchedule
	err := c.call(ctx, http.MethodGet, "/api/v1/exam_schedule", creds, nil, &schedule)
	return schedule, err
}

func (c *Client) ExamResult(ctx context.Context, creds Credentials) (ExamResultRecords, error) {
	var records ExamResultRecords
	err := c.call(ctx, http.MethodGet, "/api/v1/exam_result", creds, nil, &records)
	return records, err
}

func (c *Client) ExamResultForSemester(ctx context.Context, creds Credentials, ref string) (ExamResultRecords, error) {
	var records ExamResultRecords
	err := c.call(ctx, http.MethodGet, "/api/v1/exam_result/"+url.PathEscape(ref), creds, nil, &records)
	return records, err
}

// SubmitFacultyFeedback bulk-submits one rating for every faculty
// member and reports how many records were filled.
func (c *Client) SubmitFacultyFeedback(ctx context.Context, creds Credentials, feedback FacultyFeedback) (FacultyFeedbackResult, error) {
	var result FacultyFeedbackResult
	err := c.call(ctx, http.MethodPost, "/api/v1/faculty/feedback/submit", creds, feedback, &result)
	return result, err
}
