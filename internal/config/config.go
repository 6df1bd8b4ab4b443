package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App         AppConfig
	Logger      LoggerConfig
	Redis       RedisConfig
	RecordStore RecordStoreConfig
	Cache       CacheConfig
	Session     SessionConfig
	Display     DisplayConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	Name  string
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RecordStoreConfig describes the remote record store holding tickets and comments.
type RecordStoreConfig struct {
	BaseURL        string
	BaseID         string
	Token          string
	TicketsTable   string
	CommentsTable  string
	PageSize       int
	TimeoutSeconds int
}

// CacheConfig controls the ticket snapshot cache.
type CacheConfig struct {
	TicketTTLSeconds int
}

// SessionConfig controls dashboard session lifetime.
type SessionConfig struct {
	TTLMinutes   int
	SweepSeconds int
	CookieSecure bool
}

// DisplayConfig controls how timestamps are presented.
type DisplayConfig struct {
	Timezone string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	appName := getEnv("APP_NAME", "ticket-status-tracker")

	cfg := &Config{
		App: AppConfig{
			Name:                  appName,
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Name:  appName,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		RecordStore: RecordStoreConfig{
			BaseURL:        strings.TrimRight(getEnv("RECORD_STORE_BASE_URL", "https://api.airtable.com/v0"), "/"),
			BaseID:         os.Getenv("RECORD_STORE_BASE_ID"),
			Token:          os.Getenv("RECORD_STORE_TOKEN"),
			TicketsTable:   getEnv("RECORD_STORE_TICKETS_TABLE", "Tickets"),
			CommentsTable:  getEnv("RECORD_STORE_COMMENTS_TABLE", "Comments"),
			PageSize:       getEnvAsInt("RECORD_STORE_PAGE_SIZE", 100),
			TimeoutSeconds: getEnvAsInt("RECORD_STORE_TIMEOUT_SECONDS", 30),
		},
		Cache: CacheConfig{
			TicketTTLSeconds: getEnvAsInt("TICKET_CACHE_TTL_SECONDS", 0),
		},
		Session: SessionConfig{
			TTLMinutes:   getEnvAsInt("SESSION_TTL_MINUTES", 60),
			SweepSeconds: getEnvAsInt("SESSION_SWEEP_SECONDS", 60),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Display: DisplayConfig{
			Timezone: getEnv("DISPLAY_TIMEZONE", "UTC"),
		},
	}

	return cfg, nil
}

// Validate reports missing values the service cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.RecordStore.BaseID == "" {
		errs = append(errs, errors.New("RECORD_STORE_BASE_ID is required"))
	}
	if c.RecordStore.Token == "" {
		errs = append(errs, errors.New("RECORD_STORE_TOKEN is required"))
	}
	if c.RecordStore.PageSize < 1 || c.RecordStore.PageSize > 100 {
		errs = append(errs, fmt.Errorf("RECORD_STORE_PAGE_SIZE must be between 1 and 100, got %d", c.RecordStore.PageSize))
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.Display.Timezone, err))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the HTTP client timeout used against the record store.
func (r RecordStoreConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// TicketTTL returns the snapshot cache TTL; zero disables caching.
func (c CacheConfig) TicketTTL() time.Duration {
	if c.TicketTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TicketTTLSeconds) * time.Second
}

// TTL returns how long an idle dashboard session is kept.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// SweepInterval returns how often expired sessions are evicted.
func (s SessionConfig) SweepInterval() time.Duration {
	if s.SweepSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.SweepSeconds) * time.Second
}

// Location resolves the display timezone, falling back to UTC.
func (d DisplayConfig) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
