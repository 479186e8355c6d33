package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("BACKEND_BASE_URL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.BackendBaseURL != "http://127.0.0.1:5000" {
		t.Fatalf("expected default backend URL, got %s", cfg.BackendBaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("expected default request timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.SessionTokenKey != "session:token" {
		t.Fatalf("expected default token key, got %s", cfg.SessionTokenKey)
	}
	if cfg.StrictAppointmentFlow {
		t.Fatal("expected permissive appointment flow by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BACKEND_BASE_URL", "https://clinic.internal")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("STRICT_APPOINTMENT_FLOW", "true")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.BackendBaseURL != "https://clinic.internal" {
		t.Fatalf("expected backend URL override, got %s", cfg.BackendBaseURL)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.RequestTimeout)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected redis addr override, got %s", cfg.RedisAddr)
	}
	if !cfg.StrictAppointmentFlow {
		t.Fatal("expected strict appointment flow override")
	}
}
