package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SQUARE_BASE_URL", "")
	t.Setenv("DEFAULT_TIMEZONE", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.SquareBaseURL != "https://connect.squareup.com/v2" {
		t.Fatalf("expected default square base url, got %s", cfg.SquareBaseURL)
	}
	if cfg.DefaultTimezone != "America/Edmonton" {
		t.Fatalf("expected default timezone, got %s", cfg.DefaultTimezone)
	}
	if cfg.SquareTimeout != 30*time.Second {
		t.Fatalf("expected default square timeout, got %s", cfg.SquareTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SQUARE_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.SquareTimeout != 5*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.SquareTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected trimmed origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "")
	t.Setenv("SQUARE_LOCATION_ID", "L1")
	t.Setenv("AUTH_TOKEN", "")
	cfg := Load()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "SQUARE_ACCESS_TOKEN") || !strings.Contains(err.Error(), "AUTH_TOKEN") {
		t.Fatalf("error should name missing variables, got %v", err)
	}
	if strings.Contains(err.Error(), "SQUARE_LOCATION_ID") {
		t.Fatalf("error should not name present variables, got %v", err)
	}
}

func TestValidateOK(t *testing.T) {
	t.Setenv("SQUARE_ACCESS_TOKEN", "tok")
	t.Setenv("SQUARE_LOCATION_ID", "L1")
	t.Setenv("AUTH_TOKEN", "secret")
	if err := Load().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
