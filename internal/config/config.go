package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	AuthToken       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	DefaultTimezone string

	SquareAccessToken string
	SquareLocationID  string
	SquareBaseURL     string
	SquareAPIVersion  string
	SquareTimeout     time.Duration

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AuthToken:       getEnv("AUTH_TOKEN", ""),
		ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "America/Edmonton"),

		SquareAccessToken: getEnv("SQUARE_ACCESS_TOKEN", ""),
		SquareLocationID:  getEnv("SQUARE_LOCATION_ID", ""),
		SquareBaseURL:     getEnv("SQUARE_BASE_URL", "https://connect.squareup.com/v2"),
		SquareAPIVersion:  getEnv("SQUARE_API_VERSION", "2025-01-23"),
		SquareTimeout:     getEnvAsDuration("SQUARE_TIMEOUT", 30*time.Second),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}
}

// Validate checks that settings without safe defaults are present.
func (c *Config) Validate() error {
	var missing []string
	if c.SquareAccessToken == "" {
		missing = append(missing, "SQUARE_ACCESS_TOKEN")
	}
	if c.SquareLocationID == "" {
		missing = append(missing, "SQUARE_LOCATION_ID")
	}
	if c.AuthToken == "" {
		missing = append(missing, "AUTH_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice retrieves a comma-separated environment variable as a slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
