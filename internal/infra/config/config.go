package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint     = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod  = 10 * time.Minute
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultTelegramRate = 1
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken     string
	TelegramToken      string
	TelegramChatID     int64
	PracticumEndpoint  string
	RetryPeriod        time.Duration
	PollSchedule       string // cron expression, overrides RetryPeriod when set
	HTTPTimeout        time.Duration
	TelegramRatePerSec int
	Language           string
	DatabaseURL        string // optional, enables the cycle journal
	LogLevel           string
	Environment        string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.PracticumToken = os.Getenv("PRACTICUM_TOKEN")
	if cfg.PracticumToken == "" {
		return nil, fmt.Errorf("PRACTICUM_TOKEN is not set")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.PracticumEndpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultEndpoint
	}

	if cfg.RetryPeriod, err = durationEnv("RETRY_PERIOD", DefaultRetryPeriod); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = durationEnv("HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}

	cfg.PollSchedule = strings.TrimSpace(os.Getenv("POLL_SCHEDULE"))

	cfg.TelegramRatePerSec = DefaultTelegramRate
	if v := os.Getenv("TELEGRAM_RATE_PER_SEC"); v != "" {
		cfg.TelegramRatePerSec, err = strconv.Atoi(v)
		if err != nil || cfg.TelegramRatePerSec <= 0 {
			return nil, fmt.Errorf("invalid TELEGRAM_RATE_PER_SEC %q", v)
		}
	}

	cfg.Language = strings.ToLower(os.Getenv("LANGUAGE"))
	if cfg.Language == "" {
		cfg.Language = "en"
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
