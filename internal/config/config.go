package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	SLA      SLAConfig
	Scanner  ScannerConfig
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

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// AuthConfig defines authentication parameters for the API surface.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	ServiceAccount        string
	ServiceAccountHash    string
}

// SLAConfig configures the business-hours calendar used for
// business-hours-only deadlines.
type SLAConfig struct {
	Timezone      string
	WorkStartHour int
	WorkEndHour   int
	WorkingDays   []time.Weekday
	Holidays      []string
}

// ScannerConfig controls the periodic breach scanner.
type ScannerConfig struct {
	Enabled           bool
	IntervalSeconds   int
	RiskThreshold     float64
	CriticalThreshold float64
	PageSize          int
	AlertChannel      string
	WebhookURL        string
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	riskThreshold, err := getEnvAsFloat("SCANNER_RISK_THRESHOLD", 0.7)
	if err != nil {
		return nil, err
	}
	criticalThreshold, err := getEnvAsFloat("SCANNER_CRITICAL_THRESHOLD", 0.9)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "sla-engine"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnv("APP_ENV", "development") == "development",
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			ServiceAccount:        getEnv("AUTH_SERVICE_ACCOUNT", "sla-admin"),
			ServiceAccountHash:    os.Getenv("AUTH_SERVICE_ACCOUNT_HASH"),
		},
		SLA: SLAConfig{
			Timezone:      getEnv("SLA_TIMEZONE", "UTC"),
			WorkStartHour: getEnvAsInt("SLA_WORK_START_HOUR", 9),
			WorkEndHour:   getEnvAsInt("SLA_WORK_END_HOUR", 17),
			WorkingDays:   parseWeekdays(getEnv("SLA_WORKING_DAYS", "mon,tue,wed,thu,fri")),
			Holidays:      splitNonEmpty(os.Getenv("SLA_HOLIDAYS")),
		},
		Scanner: ScannerConfig{
			Enabled:           getEnvAsBool("SCANNER_ENABLED", true),
			IntervalSeconds:   getEnvAsInt("SCANNER_INTERVAL_SECONDS", 300),
			RiskThreshold:     riskThreshold,
			CriticalThreshold: criticalThreshold,
			PageSize:          getEnvAsInt("SCANNER_PAGE_SIZE", 100),
			AlertChannel:      getEnv("SCANNER_ALERT_CHANNEL", "sla:breaches"),
			WebhookURL:        os.Getenv("SCANNER_WEBHOOK_URL"),
		},
	}

	return cfg, nil
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

// Interval returns the scan interval duration.
func (s ScannerConfig) Interval() time.Duration {
	if s.IntervalSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.IntervalSeconds) * time.Second
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func parseWeekdays(value string) []time.Weekday {
	var days []time.Weekday
	for _, part := range splitNonEmpty(value) {
		if day, ok := weekdayNames[strings.ToLower(part)]; ok {
			days = append(days, day)
		}
	}
	return days
}

func splitNonEmpty(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
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

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
