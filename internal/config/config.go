package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultSheetID  = "1FEuyfNKF4MuVXebcjyXX88TtJuHpClfqR_SRGFdkLBI"
	DefaultSheetTab = "Sheet1"
	credsFileName   = "google-creds.json"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"https://careervisualizer.netlify.app",
	"https://4l619ljb-3001.inc1.devtunnels.ms",
}

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Env           string
	Port          string
	StrictStartup bool

	CredsFile      string
	SheetID        string
	SheetTab       string
	SpeechLanguage string
	SpeechModel    string

	AllowedOrigins     []string
	RateLimitPerMinute int

	UsersSource string // "file" or "postgres"
	UsersFile   string

	RecordBackend string // "sheets", "postgres" or "mongo"
	PostgresDSN   string
	MongoURI      string
	MongoDB       string

	RedisAddr          string
	RedisPassword      string
	LoginMaxFailures   int
	LoginLockoutWindow time.Duration
}

// Load reads .env (if any) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("PORT", "5000"),
		StrictStartup: getenv("STRICT_STARTUP", "false") == "true",

		CredsFile:      CredentialsPath(os.Getenv("GOOGLE_CREDS_FILE"), os.Getenv("USER"), executableDir()),
		SheetID:        getenv("SHEET_ID", DefaultSheetID),
		SheetTab:       getenv("SHEET_TAB", DefaultSheetTab),
		SpeechLanguage: getenv("SPEECH_LANGUAGE", "en-IN"),
		SpeechModel:    getenv("SPEECH_MODEL", "latest_long"),

		AllowedOrigins:     getenvList("CORS_ORIGINS", defaultOrigins),
		RateLimitPerMinute: getenvInt("RATE_LIMIT_PER_MINUTE", 120),

		UsersSource: getenv("USERS_SOURCE", "file"),
		UsersFile:   getenv("USERS_FILE", "users.json"),

		RecordBackend: getenv("RECORD_BACKEND", "sheets"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		MongoURI:      getenv("MONGO_URI", ""),
		MongoDB:       getenv("MONGO_DB", "career_visualizer"),

		RedisAddr:          getenv("REDIS_ADDR", ""),
		RedisPassword:      getenv("REDIS_PASSWORD", ""),
		LoginMaxFailures:   getenvInt("LOGIN_MAX_FAILURES", 5),
		LoginLockoutWindow: getenvDuration("LOGIN_LOCKOUT_WINDOW", 15*time.Minute),
	}
}

// CredentialsPath resolves the service credential file. An explicit path
// wins; otherwise the file lives under the user's home when a username is
// known, and next to the binary when it is not.
func CredentialsPath(explicit, username, exeDir string) string {
	if explicit != "" {
		return explicit
	}
	if username != "" {
		return filepath.Join("/home", username, "career-visualizer", credsFileName)
	}
	return filepath.Join(exeDir, credsFileName)
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
