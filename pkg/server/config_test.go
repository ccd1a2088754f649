package server

import (
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(envPort, "")
		t.Setenv(envShutdownSeconds, "")
		cfg := parseConfig()

		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}
		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}
		if cfg.RateLimit != 100 {
			t.Errorf("expected rate limit 100, got %v", cfg.RateLimit)
		}
		if cfg.RateLimitBurst != 200 {
			t.Errorf("expected rate limit burst 200, got %d", cfg.RateLimitBurst)
		}
		if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
			t.Errorf("expected allowed origins [*], got %v", cfg.AllowedOrigins)
		}
		if cfg.ReadTimeout != 10*time.Second {
			t.Errorf("expected read timeout 10s, got %v", cfg.ReadTimeout)
		}
		if cfg.WriteTimeout != 30*time.Second {
			t.Errorf("expected write timeout 30s, got %v", cfg.WriteTimeout)
		}
		if cfg.IdleTimeout != 120*time.Second {
			t.Errorf("expected idle timeout 120s, got %v", cfg.IdleTimeout)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("custom port from environment", func(t *testing.T) {
		t.Setenv(envPort, "9090")
		if cfg := parseConfig(); cfg.Port != 9090 {
			t.Errorf("expected port 9090 from env, got %d", cfg.Port)
		}
	})

	t.Run("invalid port from environment uses default", func(t *testing.T) {
		t.Setenv(envPort, "invalid")
		if cfg := parseConfig(); cfg.Port != 8080 {
			t.Errorf("expected default port 8080, got %d", cfg.Port)
		}
	})

	t.Run("port with trailing garbage uses default", func(t *testing.T) {
		t.Setenv(envPort, "9090abc")
		if cfg := parseConfig(); cfg.Port != 8080 {
			t.Errorf("expected default port 8080, got %d", cfg.Port)
		}
	})

	t.Run("out of range port uses default", func(t *testing.T) {
		t.Setenv(envPort, "70000")
		if cfg := parseConfig(); cfg.Port != 8080 {
			t.Errorf("expected default port 8080, got %d", cfg.Port)
		}
	})

	t.Run("shutdown timeout from environment", func(t *testing.T) {
		t.Setenv(envShutdownSeconds, "5")
		if cfg := parseConfig(); cfg.ShutdownTimeout != 5*time.Second {
			t.Errorf("expected shutdown timeout 5s, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("malformed shutdown timeout ignored", func(t *testing.T) {
		t.Setenv(envShutdownSeconds, "5s")
		if cfg := parseConfig(); cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected default shutdown timeout, got %v", cfg.ShutdownTimeout)
		}
	})

	t.Run("non-positive shutdown timeout ignored", func(t *testing.T) {
		t.Setenv(envShutdownSeconds, "0")
		if cfg := parseConfig(); cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected default shutdown timeout, got %v", cfg.ShutdownTimeout)
		}
	})
}
