package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("AMQP_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected default driver postgres, got %s", cfg.DBDriver)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected 24h token expiry, got %s", cfg.JWTExpirationDur)
	}
}

func TestLoadInvalidExpiryFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "forever")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected fallback of 24h, got %s", cfg.JWTExpirationDur)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:          "development",
			Port:         "8080",
			DBDriver:     "sqlite",
			SQLitePath:   "test.db",
			JWTSecret:    "secret",
			AMQPExchange: "spendwise.expenses",
		}
	}

	t.Run("valid", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid PORT"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid PORT"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "invalid DB_DRIVER"},
		{"missing sqlite path", func(c *Config) { c.SQLitePath = "" }, "SQLITE_PATH"},
		{"dev secret in production", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "fallback-secret-key-for-dev-only"
		}, "JWT_SECRET"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "AMQP_URL scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to mention %q, got %v", tt.want, err)
			}
		})
	}

	t.Run("collects all problems", func(t *testing.T) {
		cfg := valid()
		cfg.Port = "x"
		cfg.DBDriver = "oracle"
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "PORT") || !strings.Contains(err.Error(), "DB_DRIVER") {
			t.Errorf("expected both problems reported, got %v", err)
		}
	})
}
