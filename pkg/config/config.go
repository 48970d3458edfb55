package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	API           APIConfig
	Telegram      TelegramConfig
	Trello        TrelloConfig
	Email         EmailConfig
	Report        ReportConfig
	Storage       StorageConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	BaseURL            string
	RateLimitPerSecond int
	RateLimitBurst     int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// APIConfig guards the REST surface with a shared key.
type APIConfig struct {
	Key string
}

type TelegramConfig struct {
	BotToken     string
	AdminUserIDs []int64
}

type TrelloConfig struct {
	APIKey  string
	Token   string
	BoardID string
	Enabled bool
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	Enabled      bool
}

// ReportConfig drives the weekly reminder/deadline schedule.
type ReportConfig struct {
	DeadlineDay    int // 0=Sunday..6=Saturday
	DeadlineHour   int
	DeadlineMinute int
	ReminderHours  int // hours before deadline the reminder fires
	Timezone       string
	DefaultLang    string
}

// StorageConfig controls retention of uploaded report originals.
type StorageConfig struct {
	UploadDir   string
	KeepUploads bool
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 100),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 200),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "weekly-reports"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		API: APIConfig{
			Key: getEnv("API_KEY", ""),
		},
		Telegram: TelegramConfig{
			BotToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminUserIDs: getEnvAsInt64List("TELEGRAM_ADMIN_IDS"),
		},
		Trello: TrelloConfig{
			APIKey:  getEnv("TRELLO_API_KEY", ""),
			Token:   getEnv("TRELLO_TOKEN", ""),
			BoardID: getEnv("TRELLO_BOARD_ID", ""),
			Enabled: getEnvAsBool("TRELLO_ENABLED", false),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromAddress:  getEnv("EMAIL_FROM", "reports@localhost"),
			Enabled:      getEnvAsBool("EMAIL_ENABLED", false),
		},
		Report: ReportConfig{
			DeadlineDay:    getEnvAsInt("REPORT_DEADLINE_DAY", 5),
			DeadlineHour:   getEnvAsInt("REPORT_DEADLINE_HOUR", 18),
			DeadlineMinute: getEnvAsInt("REPORT_DEADLINE_MINUTE", 0),
			ReminderHours:  getEnvAsInt("REPORT_REMINDER_HOURS", 3),
			Timezone:       getEnv("REPORT_TIMEZONE", "Europe/Kyiv"),
			DefaultLang:    getEnv("DEFAULT_LANGUAGE", "uk"),
		},
		Storage: StorageConfig{
			UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
			KeepUploads: getEnvAsBool("KEEP_UPLOADS", true),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	if cfg.Trello.Enabled && (cfg.Trello.APIKey == "" || cfg.Trello.Token == "" || cfg.Trello.BoardID == "") {
		return nil, errors.New("TRELLO_API_KEY, TRELLO_TOKEN and TRELLO_BOARD_ID are required when TRELLO_ENABLED=true")
	}

	if cfg.Email.Enabled && cfg.Email.ResendAPIKey == "" {
		return nil, errors.New("RESEND_API_KEY is required when EMAIL_ENABLED=true")
	}

	if cfg.Report.DeadlineDay < 0 || cfg.Report.DeadlineDay > 6 {
		return nil, fmt.Errorf("REPORT_DEADLINE_DAY must be 0..6, got %d", cfg.Report.DeadlineDay)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64List(key string) []int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var values []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if value, err := strconv.ParseInt(part, 10, 64); err == nil {
			values = append(values, value)
		}
	}
	return values
}
