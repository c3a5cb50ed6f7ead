package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Inventory InventoryConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	AI        AIConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	Environment string
	MaxUploadMB int64
}

// InventoryConfig holds options for the household stores.
type InventoryConfig struct {
	Timezone           string
	ExpiringWithinDays int
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	HouseholdID   string
}

// Enabled reports whether digest delivery over WhatsApp is configured.
func (w WhatsAppConfig) Enabled() bool {
	return w.AccessToken != "" && w.PhoneNumberID != "" && w.HouseholdID != ""
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the takeout mirror is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	Enabled      bool
	CronSchedule string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	AnthropicKey string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether the report archive is configured.
func (m MongoDBConfig) Enabled() bool {
	return m.URI != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	maxUpload, err := getenvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	expiringWithin, err := getenvInt("EXPIRING_WITHIN_DAYS", 3)
	if err != nil {
		return nil, err
	}
	reportEnabled, err := getenvBool("REPORT_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			Environment: getenvWithDefault("ENVIRONMENT", "development"),
			MaxUploadMB: int64(maxUpload),
		},
		Inventory: InventoryConfig{
			Timezone:           getenvWithDefault("TIMEZONE", "UTC"),
			ExpiringWithinDays: expiringWithin,
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			HouseholdID:   os.Getenv("WHATSAPP_HOUSEHOLD_ID"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			Enabled:      reportEnabled,
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 8 * * *"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "homy"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and the
// optional collaborator groups are either complete or absent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Server.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}

	if _, err := time.LoadLocation(c.Inventory.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	if c.Inventory.ExpiringWithinDays < 0 {
		return errors.New("EXPIRING_WITHIN_DAYS must not be negative")
	}

	if c.Reporting.Enabled {
		if c.Reporting.CronSchedule == "" {
			return errors.New("REPORT_CRON_SCHEDULE must be provided when REPORT_ENABLED is set")
		}
		if _, err := cron.ParseStandard(c.Reporting.CronSchedule); err != nil {
			return fmt.Errorf("REPORT_CRON_SCHEDULE is invalid: %w", err)
		}
	}

	w := c.WhatsApp
	if w.AccessToken != "" || w.PhoneNumberID != "" || w.HouseholdID != "" {
		switch {
		case w.AccessToken == "":
			return errors.New("WHATSAPP_TOKEN must be provided")
		case w.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case w.HouseholdID == "":
			return errors.New("WHATSAPP_HOUSEHOLD_ID must be provided")
		case w.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case w.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
		}
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	return nil
}

// Location returns the configured clock location.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Inventory.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}
