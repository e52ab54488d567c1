package server

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	path "path/filepath"
	"strconv"
	"strings"
	"time"

	"main/amizone"
	"main/dash"
	"main/errors"
	"main/logger"
)

// Generate the HTML page (and write that data to http.ResponseWriter).
func genPage(w http.ResponseWriter, data pageData) {
	err := templates.ExecuteTemplate(w, "page", data)
	if err != nil {
		logger.Debug(errors.NewError("server.genPage", "template execution failed", err))
	}
}

// Responds to the client with the requested resources.
func dispatchAsset(w http.ResponseWriter, fullPath string, mimeType string) {
	w.Header().Set("Content-Type", mimeType+`, charset="utf-8"`)

	file, err := os.Open(fullPath)
	if err != nil {
		logger.Error(errors.NewError("server.dispatchAsset", "could not open "+fullPath, err))
		w.WriteHeader(500)
		return
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	if err != nil {
		logger.Debug(errors.NewError("server.dispatchAsset", "could not copy contents of "+fullPath, err))
	}
}

// Handle assets - CSS, icons, manifest, etc.
func assetHandler(w http.ResponseWriter, r *http.Request) {
	res := strings.Replace(r.URL.EscapedPath(), "/assets", "", 1)

	if strings.HasPrefix(res, "/icons") {
		fileStr := ""
		mimeType := ""

		switch name := strings.Replace(res, "/icons", "", 1); name {
		case "/icon.svg":
			mimeType = "image/svg+xml"
			fileStr = "icon.svg"
		default:
			if name == "/" {
				w.WriteHeader(403)
				data := statusForbiddenData
				data.User = userData{Name: "none"}
				genPage(w, data)
			} else {
				w.WriteHeader(404)
				data := statusNotFoundData
				data.User = userData{Name: "none"}
				genPage(w, data)
			}
			return
		}

		fullPath := path.Join(respath, "icons", fileStr)
		dispatchAsset(w, fullPath, mimeType)

	} else if res == "/manifest.webmanifest" {
		fullPath := path.Join(respath, "manifest.webmanifest")
		dispatchAsset(w, fullPath, "application/json")

	} else if res == "/styles.css" {
		w.Header().Set("Cache-Control", "max-age=3600")
		fullPath := path.Join(respath, "styles.css")
		dispatchAsset(w, fullPath, "text/css")

	} else {
		if res == "/" {
			w.WriteHeader(403)
			data := statusForbiddenData
			data.User = userData{Name: "none"}
			genPage(w, data)
		} else {
			w.WriteHeader(404)
			data := statusNotFoundData
			data.User = userData{Name: "none"}
			genPage(w, data)
		}
	}
}

// Resolve the requester's session to its dashboard orchestrator. A first
// visit kicks off the initial concurrent load.
func boardFor(r *http.Request) (*dash.Orchestrator, amizone.Credentials, error) {
	creds, key, err := sessions.lookup(r.Header.Get("Cookie"))
	if err != nil {
		return nil, amizone.Credentials{}, err
	}

	board := orchestratorFor(key, creds)
	if board.Snapshot().Profile.Phase == dash.NotStarted {
		board.Refresh(r.Context())
	}
	return board, creds, nil
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirect := "/login?redirect=" + url.QueryEscape(r.URL.String())
	w.Header().Set("Location", redirect)
	w.WriteHeader(302)
}

// Handle login requests. If the user is already logged in, redirect to the
// dashboard.
func loginHandler(w http.ResponseWriter, r *http.Request) {
	validAuth := true
	redirect := r.URL.Query().Get("redirect")

	_, _, err := sessions.lookup(r.Header.Get("Cookie"))
	if err != nil {
		validAuth = false
	}

	data := loginPageData
	if strings.HasPrefix(redirect, "/") {
		data.Body.LoginData.Redirect = "?" + r.URL.RawQuery
	}

	if !validAuth {
		if r.URL.Query().Get("auth") == "failed" {
			w.WriteHeader(401)
			data.Body.LoginData.Failed = true
			genPage(w, data)
		} else {
			genPage(w, data)
		}
	} else if !strings.HasPrefix(redirect, "/") {
		w.Header().Set("Location", "/dashboard")
		w.WriteHeader(302)
	} else {
		w.Header().Set("Location", redirect)
		w.WriteHeader(302)
	}
}

// Handle authentication requests. If the user is already logged in, redirect
// to the dashboard.
func authHandler(w http.ResponseWriter, r *http.Request) {
	validAuth := true

	_, _, err := sessions.lookup(r.Header.Get("Cookie"))
	if err != nil {
		validAuth = false
	}

	if !validAuth {
		var cookie string
		err := r.ParseForm()

		// If err != nil, the "else" section of the next if/else block will
		// execute, which returns the "could not authenticate user" error.
		if err == nil {
			cookie, err = sessions.login(r.Context(), r.PostForm)
		}

		redirect := r.URL.Query().Get("redirect")
		if !strings.HasPrefix(redirect, "/") {
			redirect = "/dashboard"
		}

		if err == nil {
			w.Header().Set("Location", redirect)
			w.Header().Set("Set-Cookie", cookie)
			w.WriteHeader(302)
		} else {
			logger.Debug(errors.NewError("server.authHandler", "auth failed", err))
			w.Header().Set("Location", "/login?auth=failed")
			w.WriteHeader(302)
		}
	} else {
		redirect := "/login?redirect=" + url.QueryEscape(r.URL.String())
		w.Header().Set("Location", redirect)
		w.WriteHeader(302)
	}
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	validAuth := true

	creds, _, err := sessions.lookup(r.Header.Get("Cookie"))
	if err != nil {
		validAuth = false
	}

	if validAuth {
		err = sessions.logout(r.Header.Get("Cookie"))
		if err == nil {
			w.Header().Set("Location", "/login")
			w.WriteHeader(302)
		} else {
			logger.Error(errors.NewError("server.logoutHandler", "failed to log out user", err))
			w.WriteHeader(500)
			data := statusServerErrorData
			data.User = userData{Name: creds.Username}
			genPage(w, data)
		}
	} else {
		redirect := "/login?redirect=" + url.QueryEscape(r.URL.String())
		w.Header().Set("Location", redirect)
		w.WriteHeader(302)
	}
}

// Handle the "/dashboard" page. A "?refresh=1" query forces a full reload of
// every core section; manual semester selections survive the reload.
func dashboardHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.Snapshot()
	if r.URL.Query().Get("refresh") != "" {
		d = board.Refresh(r.Context())
	}

	if d.AllCoreFailed() {
		w.WriteHeader(502)
		data := statusAllFailedData
		data.User = userNameOf(d, creds)
		genPage(w, data)
		return
	}

	data := pageData{
		PageType: "dashboard",
		Head:     headData{Title: "Dashboard"},
		User:     userNameOf(d, creds),
	}
	data.Body.DashboardData = genDashboardData(d)
	genPage(w, data)
}

// Handle the "/schedule" page.
func scheduleHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.Snapshot()
	now := time.Now().In(tz)
	data := pageData{
		PageType: "schedule",
		Head:     headData{Title: "Class schedule"},
		User:     userNameOf(d, creds),
	}
	data.Body.ScheduleData = scheduleData{
		Error:     secErr(dash.SectionSchedule, d.Statuses()[dash.SectionSchedule]),
		DateLabel: now.Format("02 Jan 2006"),
		DayLabel:  now.Format("Monday"),
	}
	if d.Schedule.Phase == dash.Ready {
		data.Body.ScheduleData.Rows = genClassRows(d.Schedule.Data)
	}
	genPage(w, data)
}

// Handle the "/attendance" page.
func attendanceHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.Snapshot()
	data := pageData{
		PageType: "attendance",
		Head:     headData{Title: "Attendance"},
		User:     userNameOf(d, creds),
	}
	data.Body.AttendanceData = attendanceData{
		Error: secErr(dash.SectionAttendance, d.Statuses()[dash.SectionAttendance]),
	}
	if d.Attendance.Phase == dash.Ready {
		rows := genAttendanceRows(d.Attendance.Data)
		overall := dash.AggregatePercentage(d.Attendance.Data.Records)
		data.Body.AttendanceData.Rows = rows
		data.Body.AttendanceData.OverallPercent = overall
		data.Body.AttendanceData.OverallBand = string(dash.BandFor(overall))
	}
	genPage(w, data)
}

// Handle the "/courses" page. A "?semester=<ref>" query switches the course
// list to that semester; an empty ref means the current one.
func coursesHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.Snapshot()
	if d.Semesters.Phase == dash.NotStarted {
		err = board.Retry(r.Context(), dash.SectionSemesters)
		if err != nil {
			logger.Debug(errors.NewError("server.coursesHandler", "failed to load semester list", err))
		}
	}

	if ref := r.URL.Query().Get("semester"); r.URL.Query().Has("semester") && ref != d.CoursesSemester {
		err = board.SelectCoursesSemester(r.Context(), ref)
		if err != nil {
			logger.Debug(errors.NewError("server.coursesHandler", "failed to switch semester", err))
		}
	}
	d = board.Snapshot()

	data := pageData{
		PageType: "courses",
		Head:     headData{Title: "Courses"},
		User:     userNameOf(d, creds),
	}
	data.Body.CoursesData = coursesData{
		Error:    secErr(dash.SectionCourses, d.Statuses()[dash.SectionCourses]),
		Selected: d.CoursesSemester,
	}
	if d.Semesters.Phase == dash.Ready {
		data.Body.CoursesData.Semesters = genSemesterOptions(d.Semesters.Data, d.CoursesSemester)
	}
	if d.Courses.Phase == dash.Ready {
		data.Body.CoursesData.Rows = genCourseRows(d.Courses.Data)
	}
	genPage(w, data)
}

// Handle the "/exams" page.
func examsHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.Snapshot()
	data := pageData{
		PageType: "exams",
		Head:     headData{Title: "Exam schedule"},
		User:     userNameOf(d, creds),
	}
	data.Body.ExamsData = examsData{
		Error: secErr(dash.SectionExams, d.Statuses()[dash.SectionExams]),
	}
	if d.Exams.Phase == dash.Ready {
		data.Body.ExamsData.Items = genExamRows(d.Exams.Data)
	}
	genPage(w, data)
}

// Handle the "/results" page. Results are fetched lazily on first visit
// rather than as part of the dashboard load.
func resultsHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.EnsureResults(r.Context())
	if ref := r.URL.Query().Get("semester"); r.URL.Query().Has("semester") && ref != d.ResultsSemester {
		err = board.SelectResultsSemester(r.Context(), ref)
		if err != nil {
			logger.Debug(errors.NewError("server.resultsHandler", "failed to switch semester", err))
		}
		d = board.Snapshot()
	}

	data := pageData{
		PageType: "results",
		Head:     headData{Title: "Exam results"},
		User:     userNameOf(d, creds),
	}
	data.Body.ResultsData = resultsData{
		Error:    secErr(dash.SectionResults, d.Statuses()[dash.SectionResults]),
		Selected: d.ResultsSemester,
	}
	if d.Semesters.Phase == dash.Ready {
		data.Body.ResultsData.Semesters = genSemesterOptions(d.Semesters.Data, d.ResultsSemester)
	}
	if d.Results.Phase == dash.Ready {
		records, overall := genResultRows(d.Results.Data)
		data.Body.ResultsData.Records = records
		data.Body.ResultsData.Overall = overall
	}
	genPage(w, data)
}

// Handle the "/wifi" page.
func wifiHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.Snapshot()
	data := pageData{
		PageType: "wifi",
		Head:     headData{Title: "Wi-Fi registration"},
		User:     userNameOf(d, creds),
	}
	data.Body.WifiData = wifiData{
		Error: secErr(dash.SectionWifi, d.Statuses()[dash.SectionWifi]),
	}
	switch r.URL.Query().Get("done") {
	case "registered":
		data.Body.WifiData.Message = "MAC address registered."
	case "removed":
		data.Body.WifiData.Message = "MAC address removed."
	}
	if d.Wifi.Phase == dash.Ready {
		data.Body.WifiData.Addresses = d.Wifi.Data.Addresses
		data.Body.WifiData.Slots = d.Wifi.Data.Slots
		data.Body.WifiData.FreeSlots = d.Wifi.Data.FreeSlots
	}
	genPage(w, data)
}

// Handle Wi-Fi MAC registration form posts. Malformed addresses are rejected
// before anything goes upstream.
func wifiRegisterHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	if r.Method != "POST" {
		w.Header().Set("Location", "/wifi")
		w.WriteHeader(302)
		return
	}

	err = r.ParseForm()
	if err != nil {
		w.WriteHeader(400)
		d := board.Snapshot()
		data := statusServerErrorData
		data.User = userNameOf(d, creds)
		genPage(w, data)
		return
	}

	mac := dash.NormalizeMac(r.PostForm.Get("address"))
	if mac == "" {
		d := board.Snapshot()
		w.WriteHeader(400)
		data := pageData{
			PageType: "wifi",
			Head:     headData{Title: "Wi-Fi registration"},
			User:     userNameOf(d, creds),
		}
		data.Body.WifiData = wifiData{
			Error: sectionError{Section: dash.SectionWifi, Message: "that does not look like a MAC address"},
		}
		if d.Wifi.Phase == dash.Ready {
			data.Body.WifiData.Addresses = d.Wifi.Data.Addresses
			data.Body.WifiData.Slots = d.Wifi.Data.Slots
			data.Body.WifiData.FreeSlots = d.Wifi.Data.FreeSlots
		}
		genPage(w, data)
		return
	}

	override := r.PostForm.Get("override") != ""
	err = api.RegisterWifiMac(r.Context(), creds, mac, override)
	if err != nil {
		logger.Debug(errors.NewError("server.wifiRegisterHandler", "failed to register MAC address", err))
		w.WriteHeader(502)
		d := board.Snapshot()
		data := statusServerErrorData
		data.User = userNameOf(d, creds)
		genPage(w, data)
		return
	}

	err = board.Retry(r.Context(), dash.SectionWifi)
	if err != nil {
		logger.Debug(errors.NewError("server.wifiRegisterHandler", "failed to refresh Wi-Fi info", err))
	}
	w.Header().Set("Location", "/wifi?done=registered")
	w.WriteHeader(302)
}

// Handle Wi-Fi MAC removal form posts.
func wifiDeregisterHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	if r.Method != "POST" {
		w.Header().Set("Location", "/wifi")
		w.WriteHeader(302)
		return
	}

	err = r.ParseForm()
	if err == nil {
		mac := dash.NormalizeMac(r.PostForm.Get("address"))
		if mac == "" {
			err = errors.ErrInvalidMac
		} else {
			err = api.DeregisterWifiMac(r.Context(), creds, mac)
		}
	}
	if err != nil {
		logger.Debug(errors.NewError("server.wifiDeregisterHandler", "failed to remove MAC address", err))
		w.WriteHeader(502)
		d := board.Snapshot()
		data := statusServerErrorData
		data.User = userNameOf(d, creds)
		genPage(w, data)
		return
	}

	err = board.Retry(r.Context(), dash.SectionWifi)
	if err != nil {
		logger.Debug(errors.NewError("server.wifiDeregisterHandler", "failed to refresh Wi-Fi info", err))
	}
	w.Header().Set("Location", "/wifi?done=removed")
	w.WriteHeader(302)
}

// Handle the "/feedback" page: a GET renders the bulk faculty feedback form,
// a POST submits it for every pending faculty member at once.
func feedbackHandler(w http.ResponseWriter, r *http.Request) {
	board, creds, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.Snapshot()
	data := pageData{
		PageType: "feedback",
		Head:     headData{Title: "Faculty feedback"},
		User:     userNameOf(d, creds),
	}

	if r.Method != "POST" {
		genPage(w, data)
		return
	}

	err = r.ParseForm()
	feedback := amizone.FacultyFeedback{}
	if err == nil {
		feedback.Rating, err = strconv.Atoi(r.PostForm.Get("rating"))
	}
	if err == nil {
		feedback.QueryRating, err = strconv.Atoi(r.PostForm.Get("query_rating"))
	}
	if err != nil {
		w.WriteHeader(400)
		data.Body.FeedbackData.Error = "ratings must be numbers"
		genPage(w, data)
		return
	}

	feedback.Comment = r.PostForm.Get("comment")
	err = validateFeedback(feedback)
	if err != nil {
		w.WriteHeader(400)
		data.Body.FeedbackData.Error = "rating must be 1-5 and query rating 1-3"
		genPage(w, data)
		return
	}

	result, err := api.SubmitFacultyFeedback(r.Context(), creds, feedback)
	if err != nil {
		logger.Debug(errors.NewError("server.feedbackHandler", "failed to submit feedback", err))
		w.WriteHeader(502)
		data.Body.FeedbackData.Error = "could not submit feedback"
		genPage(w, data)
		return
	}

	data.Body.FeedbackData.Submitted = true
	data.Body.FeedbackData.FilledFor = result.FilledFor
	genPage(w, data)
}

// Handle "/retry" requests: re-fetch a single failed section, leaving every
// other section untouched, then bounce back to the referring page.
func retryHandler(w http.ResponseWriter, r *http.Request) {
	board, _, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	section := r.URL.Query().Get("section")
	err = board.Retry(r.Context(), section)
	if err != nil {
		logger.Debug(errors.NewError("server.retryHandler", fmt.Sprintf("retry of %q failed", section), err))
	}

	redirect := r.URL.Query().Get("redirect")
	if !strings.HasPrefix(redirect, "/") {
		redirect = "/dashboard"
	}
	w.Header().Set("Location", redirect)
	w.WriteHeader(302)
}

// Handle the "/" page.
func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.EscapedPath() != "/" {
		w.WriteHeader(404)
		data := statusNotFoundData
		data.User = userData{Name: "none"}
		genPage(w, data)
		return
	}

	_, _, err := sessions.lookup(r.Header.Get("Cookie"))
	if err != nil {
		w.Header().Set("Location", "/login")
	} else {
		w.Header().Set("Location", "/dashboard")
	}
	w.WriteHeader(302)
}
