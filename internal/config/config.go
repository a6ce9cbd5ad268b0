package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Storage      StorageConfig
	Archive      ArchiveConfig
	Logger       LoggerConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	StaticDir             string
}

// StorageConfig locates the durable JSON documents.
type StorageConfig struct {
	DataDir       string
	TicketsFile   string
	UsersFile     string
	ReferenceFile string
}

// ArchiveConfig controls the retention window and archival cadence.
type ArchiveConfig struct {
	Dir             string
	RetentionDays   int
	WarningLeadDays int
	Hour            int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")
	retentionDays := getEnvAsInt("RETENTION_DAYS", 14)
	if retentionDays <= 0 {
		return nil, fmt.Errorf("invalid RETENTION_DAYS: %d", retentionDays)
	}
	warningLead := getEnvAsInt("WARNING_LEAD_DAYS", 1)
	if warningLead <= 0 || warningLead >= retentionDays {
		return nil, fmt.Errorf("invalid WARNING_LEAD_DAYS: %d", warningLead)
	}
	archiveHour := getEnvAsInt("ARCHIVE_HOUR", 3)
	if archiveHour < 0 || archiveHour > 23 {
		return nil, fmt.Errorf("invalid ARCHIVE_HOUR: %d", archiveHour)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "chamado-tracker"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			StaticDir:             getEnv("STATIC_DIR", "public"),
		},
		Storage: StorageConfig{
			DataDir:       dataDir,
			TicketsFile:   getEnv("TICKETS_FILE", "chamados.json"),
			UsersFile:     getEnv("USERS_FILE", filepath.Join(dataDir, "usuarios.json")),
			ReferenceFile: getEnv("REFERENCE_FILE", filepath.Join(dataDir, "dados_base.json")),
		},
		Archive: ArchiveConfig{
			Dir:             getEnv("ARCHIVE_DIR", "backups"),
			RetentionDays:   retentionDays,
			WarningLeadDays: warningLead,
			Hour:            archiveHour,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
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

// Retention returns the retention window as a duration.
func (c ArchiveConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// WarningLead returns the warning look-ahead as a duration.
func (c ArchiveConfig) WarningLead() time.Duration {
	return time.Duration(c.WarningLeadDays) * 24 * time.Hour
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
