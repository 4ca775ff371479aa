package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// Database
	SQLiteDBPath string

	// Auth
	JWTSecret  string
	SessionTTL time.Duration

	// AMQP (reminder events)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// SMTP (reminder emails)
	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPPassword string

	// Reminder scheduler
	ReminderCronSpec string

	// Google Sheets export (optional)
	GoogleSpreadsheetID   string
	GoogleSheetName       string
	GoogleOAuthClientJSON string
	GoogleOAuthTokenJSON  string

	// Report cache
	ReportCacheTTL time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "sqlite"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fedha.db"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fedha"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "bill_reminders"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPSender:   getEnv("SMTP_SENDER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		ReminderCronSpec: getEnv("REMINDER_CRON", "15 7 * * *"),

		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:       getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleOAuthClientJSON: getEnv("GOOGLE_OAUTH_CLIENT_JSON", ""),
		GoogleOAuthTokenJSON:  getEnv("GOOGLE_OAUTH_TOKEN_JSON", ""),

		ReportCacheTTL: getEnvDuration("REPORT_CACHE_TTL", 5*time.Minute),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sqlite":
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [memory sqlite]", c.DataBackend))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET must be set")
	} else if len(c.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET too short: need at least 16 bytes")
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SMTPHost != "" {
		if c.SMTPPort < 1 || c.SMTPPort > 65535 {
			errors = append(errors, fmt.Sprintf("invalid SMTP port %d", c.SMTPPort))
		}
		if c.SMTPSender == "" {
			errors = append(errors, "SMTP sender address required when SMTP host is set")
		}
	}

	// Sheets export needs the full set or nothing.
	if c.GoogleSpreadsheetID != "" {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google sheet name is required when a spreadsheet ID is set")
		}
		if c.GoogleOAuthClientJSON == "" || c.GoogleOAuthTokenJSON == "" {
			errors = append(errors, "GOOGLE_OAUTH_CLIENT_JSON and GOOGLE_OAUTH_TOKEN_JSON are required for sheets export")
		}
	}

	if c.ReportCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid report cache TTL %v: must be at least 1 second", c.ReportCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// RemindersEnabled reports whether the reminder pipeline can publish.
func (c *Config) RemindersEnabled() bool {
	return c.AMQPURL != ""
}

// SheetsExportEnabled reports whether monthly report export is configured.
func (c *Config) SheetsExportEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
