package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"main/logger"
)

// App holds the runtime configuration for the dashboard server.
type App struct {
	ApiBase    string
	ApiTimeout time.Duration
	RedisAddr  string
	RedisDB    int
	ListenAddr string
	ResPath    string
	Timezone   string
	CookieDays int
	UseLogFile bool
}

// Load populates an App from environment variables, falling back to
// defaults. A .env file next to the working directory is honoured when
// present, so local runs need no exported environment.
func Load() App {
	conf := viper.New()
	conf.SetDefault("api_base", "amizone.fullstacktics.com")
	conf.SetDefault("api_timeout", 20*time.Second)
	conf.SetDefault("redis_addr", "localhost:6379")
	conf.SetDefault("redis_db", 0)
	conf.SetDefault("listen_addr", ":8080")
	conf.SetDefault("res_path", "")
	conf.SetDefault("timezone", "Asia/Kolkata")
	conf.SetDefault("cookie_days", 7)
	conf.SetDefault("use_log_file", false)

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			logger.Warn("config: cannot load .env: %v", err)
		}
	}

	conf.SetEnvPrefix("amidash")
	conf.AutomaticEnv()

	return App{
		ApiBase:    NormalizeBase(conf.GetString("api_base")),
		ApiTimeout: conf.GetDuration("api_timeout"),
		RedisAddr:  conf.GetString("redis_addr"),
		RedisDB:    conf.GetInt("redis_db"),
		ListenAddr: conf.GetString("listen_addr"),
		ResPath:    conf.GetString("res_path"),
		Timezone:   conf.GetString("timezone"),
		CookieDays: conf.GetInt("cookie_days"),
		UseLogFile: conf.GetBool("use_log_file"),
	}
}

// NormalizeBase guarantees the API base URL carries an explicit scheme
// and no trailing slash.
func NormalizeBase(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return base
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return base
}
