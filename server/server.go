package server

import (
	"html/template"
	"io/fs"
	"net/http"
	"os"
	path "path/filepath"
	"sync"
	"time"
	_ "time/tzdata"

	"codeberg.org/kvo/std"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"main/amizone"
	"main/config"
	"main/dash"
	"main/errors"
	"main/logger"
)

var (
	api       *amizone.Client
	cfg       config.App
	respath   string
	sessions  *authDB
	templates *template.Template
	tz        *time.Location
)

// Per-session dashboard orchestrators, keyed by session token (or by
// username for legacy credential-cookie sessions).
var (
	boardsLock sync.Mutex
	boards     = map[string]*dash.Orchestrator{}
)

func orchestratorFor(key string, creds amizone.Credentials) *dash.Orchestrator {
	boardsLock.Lock()
	defer boardsLock.Unlock()
	if o, ok := boards[key]; ok {
		return o
	}
	o := dash.NewOrchestrator(api, creds, tz)
	boards[key] = o
	return o
}

func dropOrchestrator(key string) {
	boardsLock.Lock()
	defer boardsLock.Unlock()
	delete(boards, key)
}

func Announce(version string) {
	logger.Info("Running %s", version)
}

func loadTmpl(respath string) error {
	tmplPath := path.Join(respath, "templates")
	required := []string{
		"body/attendance",
		"body/courses",
		"body/dashboard",
		"body/error",
		"body/exams",
		"body/feedback",
		"body/login",
		"body/results",
		"body/schedule",
		"body/wifi",
		"components/footer",
		"components/nav",
		"head",
		"page",
	}
	for i := range required {
		required[i] = path.Join(tmplPath, required[i]+".tmpl")
	}
	var files []string
	err := path.WalkDir(tmplPath, func(p string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return errors.NewError("server.loadTmpl", "cannot walk template directory", err)
	}
	missing := make([]string, 0, len(required))
	for _, file := range required {
		if !std.Contains(files, file) {
			missing = append(missing, file)
		}
	}
	if len(missing) != 0 {
		return errors.NewError("server.loadTmpl", "missing templates", errors.ErrMissingFiles)
	}
	templates = template.Must(template.ParseFiles(files...))
	return nil
}

// Configure wires the server together from the runtime configuration
// and the session store password.
func Configure(conf config.App, redisPwd string) error {
	cfg = conf

	respath = conf.ResPath
	if respath == "" {
		execpath, err := os.Executable()
		if err != nil {
			return errors.NewError("server.Configure", "cannot get path to executable", err)
		}
		respath = path.Join(path.Dir(execpath), "res")
	}

	if conf.UseLogFile {
		logPath := path.Join(respath, "logs")
		if err := logger.UseLogFile(logPath); err != nil {
			return errors.NewError("server.Configure", "log file was not set up", err)
		}
		logger.Info("Log file set up successfully")
	}

	var err error
	tz, err = time.LoadLocation(conf.Timezone)
	if err != nil {
		return errors.NewError("server.Configure", "cannot load timezone "+conf.Timezone, err)
	}

	api = amizone.NewClient(conf.ApiBase, conf.ApiTimeout)
	sessions = &authDB{
		client: initDB(conf.RedisAddr, redisPwd, conf.RedisDB),
		days:   conf.CookieDays,
	}

	if err = loadTmpl(respath); err != nil {
		return errors.NewError("server.Configure", "cannot load HTML templates", err)
	}
	logger.Info("Successfully loaded HTML templates")
	return nil
}

// Run starts the server. TLS is expected in production; the -w flag
// drops to plain HTTP on localhost for development.
func Run(tls bool) error {
	cert := path.Join(respath, "cert.pem")
	key := path.Join(respath, "key.pem")

	mux := http.NewServeMux()

	mux.HandleFunc("/assets/", assetHandler)
	mux.HandleFunc("/dashboard", dashboardHandler)
	mux.HandleFunc("/schedule", scheduleHandler)
	mux.HandleFunc("/schedule.png", snapshotHandler)
	mux.HandleFunc("/attendance", attendanceHandler)
	mux.HandleFunc("/courses", coursesHandler)
	mux.HandleFunc("/exams", examsHandler)
	mux.HandleFunc("/results", resultsHandler)
	mux.HandleFunc("/wifi", wifiHandler)
	mux.HandleFunc("/wifi/register", wifiRegisterHandler)
	mux.HandleFunc("/wifi/deregister", wifiDeregisterHandler)
	mux.HandleFunc("/feedback", feedbackHandler)
	mux.HandleFunc("/retry", retryHandler)

	mux.HandleFunc("/login", loginHandler)
	mux.HandleFunc("/logout", logoutHandler)
	mux.HandleFunc("/auth", authHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", rootHandler)

	if tls {
		logger.Info("Running on port 443")
		return http.ListenAndServeTLS(":443", cert, key, mux)
	} else {
		logger.Warn("Running on %s (without TLS). DO NOT USE THIS IN PRODUCTION!", cfg.ListenAddr)
		return http.ListenAndServe(cfg.ListenAddr, mux)
	}
}
