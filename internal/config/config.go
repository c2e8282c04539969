// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	DataBackend string

	GoogleSpreadsheetID string
	GoogleSheetName     string
	GoogleCredsJSON     string
	GoogleCredsFile     string

	SQLiteDBPath string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LogLevel string
}

// Load reads configuration from environment variables, applying defaults
// where a value is optional.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "5000"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Expenses"),
		GoogleCredsJSON:     getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleCredsFile:     getEnv("GOOGLE_CREDENTIALS_FILE", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "data/expenses.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expenses"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense-events"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration for invalid or missing values and
// returns an error describing every problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("PORT %q is not a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d is outside the valid range 1-65535", port))
	}

	switch c.DataBackend {
	case "memory":
	case "sqlite":
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLITE_DB_PATH is required when DATA_BACKEND is sqlite")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			problems = append(problems, "GOOGLE_SPREADSHEET_ID is required when DATA_BACKEND is sheets")
		}
		if c.GoogleCredsJSON == "" && c.GoogleCredsFile == "" && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			problems = append(problems, "one of GOOGLE_CREDENTIALS_JSON, GOOGLE_CREDENTIALS_FILE or GOOGLE_APPLICATION_CREDENTIALS is required when DATA_BACKEND is sheets")
		}
	default:
		problems = append(problems, fmt.Sprintf("DATA_BACKEND %q is not one of memory, sqlite, sheets", c.DataBackend))
	}

	if c.AMQPURL != "" && !strings.HasPrefix(c.AMQPURL, "amqp://") && !strings.HasPrefix(c.AMQPURL, "amqps://") {
		problems = append(problems, fmt.Sprintf("AMQP_URL %q must start with amqp:// or amqps://", c.AMQPURL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr returns the listen address derived from Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
