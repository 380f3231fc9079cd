package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "STORE_DRIVER", "JWT_SECRET", "TOKEN_TTL", "CORS_ORIGINS", "PUBLIC_BASE_URL", "DB_MAX_OPEN_CONNS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != DriverPostgres {
		t.Errorf("port/driver = %s/%s", cfg.Port, cfg.StoreDriver)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.DBMaxOpenConns != 25 {
		t.Errorf("ttl/conns = %v/%d", cfg.TokenTTL, cfg.DBMaxOpenConns)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Errorf("dev secret not applied")
	}
	if cfg.PublicBaseURL != "http://localhost:8080" {
		t.Errorf("base url = %s", cfg.PublicBaseURL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("PUBLIC_BASE_URL", "https://api.example/")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreDriver != DriverMemory {
		t.Errorf("driver = %s", cfg.StoreDriver)
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Errorf("ttl = %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
	if cfg.PublicBaseURL != "https://api.example" {
		t.Errorf("base url = %s", cfg.PublicBaseURL)
	}
	if cfg.DBMaxIdleConns != 5 {
		t.Errorf("idle conns = %d", cfg.DBMaxIdleConns)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"release without secret", map[string]string{"GIN_MODE": "release", "JWT_SECRET": ""}},
		{"negative ttl", map[string]string{"TOKEN_TTL": "-1h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
