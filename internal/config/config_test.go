package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:      "8080",
		DBPath:    "./test.db",
		JWTSecret: "a-long-enough-secret",
		TokenTTL:  time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Port = "abc" },
			wantErr: "must be a number",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = "70000" },
			wantErr: "between 1 and 65535",
		},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.DBPath = "" },
			wantErr: "database path",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET must be set",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: "at least 16 characters",
		},
		{
			name:    "non-positive token ttl",
			mutate:  func(c *Config) { c.TokenTTL = 0 },
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// No env set in tests, so Load must fall back everywhere.
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port default mismatch: got %s", cfg.Port)
	}
	if cfg.DBPath != "./data/messmate.db" {
		t.Errorf("DBPath default mismatch: got %s", cfg.DBPath)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("TokenTTL default mismatch: got %v", cfg.TokenTTL)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr mismatch: got %s", cfg.Addr())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("JWT_SECRET", "a-long-enough-secret")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port not read from env: got %s", cfg.Port)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL not parsed: got %v", cfg.TokenTTL)
	}
	if cfg.JWTSecret != "a-long-enough-secret" {
		t.Errorf("JWTSecret not read from env: got %q", cfg.JWTSecret)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := Load()
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("Expected fallback TTL, got %v", cfg.TokenTTL)
	}
}
