package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the bot, the dashboard and statusctl.
type AppConfig struct {
	TelegramToken    string
	DatabaseURL      string
	LogLevel         string
	Environment      string
	Location         *time.Location // Timezone that defines "today" and the reminder wall-clock time
	ReminderTime     string         // HH:MM in Location
	CronSpecReminder string
	DashboardAddr    string
	SessionTTL       time.Duration // How long an abandoned conversation is kept
	SessionLimit     int           // Maximum number of conversations kept in memory
	BotWorkers       int
	DBMaxOpenConns   int // Pool size of the long-running binaries
	DBMaxIdleConns   int
}

// Load reads configuration from environment variables and .env file (if present).
// TELEGRAM_TOKEN is not checked here: only the bot needs it.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	cfg.DatabaseURL, err = databaseURL()
	if err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	tz := getenv("TIMEZONE", "Europe/Moscow")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.ReminderTime = getenv("REMINDER_TIME", "10:00")
	cfg.CronSpecReminder = os.Getenv("CRON_SPEC_REMINDER")
	if cfg.CronSpecReminder == "" {
		cfg.CronSpecReminder, err = cronSpecAt(cfg.ReminderTime)
		if err != nil {
			return nil, fmt.Errorf("invalid REMINDER_TIME: %w", err)
		}
	}

	cfg.DashboardAddr = getenv("DASHBOARD_ADDR", ":8080")

	cfg.SessionTTL, err = time.ParseDuration(getenv("SESSION_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: must be positive")
	}

	cfg.SessionLimit, err = positiveInt("SESSION_LIMIT", 1024)
	if err != nil {
		return nil, err
	}

	cfg.BotWorkers, err = positiveInt("BOT_WORKERS", 8)
	if err != nil {
		return nil, err
	}

	cfg.DBMaxOpenConns, err = positiveInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return nil, err
	}
	cfg.DBMaxIdleConns, err = positiveInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and falls back to the DB_* variables.
func databaseURL() (string, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}

	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	if host == "" || name == "" {
		return "", fmt.Errorf("DATABASE_URL is not set (nor DB_HOST and DB_NAME)")
	}
	port := getenv("DB_PORT", "5432")
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid DB_PORT: %w", err)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("DB_USER"), os.Getenv("DB_PASS")),
		Host:     host + ":" + port,
		Path:     "/" + name,
		RawQuery: "sslmode=" + getenv("DB_SSLMODE", "disable"),
	}
	return u.String(), nil
}

// cronSpecAt turns "HH:MM" into a daily five-field cron spec.
func cronSpecAt(hhmm string) (string, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

func positiveInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return n, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
