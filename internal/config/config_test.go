package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "REDIS_TTL", "SESSION_TTL", "PREVIEW_WS_ADDR", "DATABASE_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.App.Port != "3000" {
		t.Errorf("expected default port, got %q", cfg.App.Port)
	}
	if cfg.Redis.TTL != 600*time.Second {
		t.Errorf("expected default redis ttl, got %v", cfg.Redis.TTL)
	}
	if cfg.App.SessionTTL != 30*time.Minute {
		t.Errorf("expected default session ttl, got %v", cfg.App.SessionTTL)
	}
	if cfg.Preview.WSAddr != ":3001" {
		t.Errorf("expected default ws addr, got %q", cfg.Preview.WSAddr)
	}
	if cfg.IsDevelopment() {
		t.Error("expected production by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "development")
	t.Setenv("REDIS_TTL", "30")
	t.Setenv("REQUEST_TIMEOUT", "not-a-number")

	cfg := Load()
	if cfg.App.Port != "8080" || !cfg.IsDevelopment() {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if cfg.Redis.TTL != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.Redis.TTL)
	}
	if cfg.App.RequestTimeout != 15*time.Second {
		t.Errorf("expected fallback timeout, got %v", cfg.App.RequestTimeout)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("DEBUG") != slog.LevelDebug || parseLevel("warning") != slog.LevelWarn || parseLevel("") != slog.LevelInfo {
		t.Fatal("unexpected level mapping")
	}
}
