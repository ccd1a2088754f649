package server

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/globetraiteurs/plats/pkg/defaults"
	"golang.org/x/time/rate"
)

const (
	envPort            = "PORT"
	envShutdownSeconds = "SHUTDOWN_TIMEOUT_SECONDS"
)

// Config holds server configuration.
type Config struct {
	Name    string
	Version string

	// Handlers are application routes keyed by ServeMux pattern.
	Handlers map[string]http.HandlerFunc

	Address string
	Port    int

	// AllowedOrigins feeds the CORS middleware; "*" allows any origin.
	AllowedOrigins []string

	RateLimit      rate.Limit // requests per second
	RateLimitBurst int

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a Config populated with defaults and PORT /
// SHUTDOWN_TIMEOUT_SECONDS overrides from the environment.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              8080,
		AllowedOrigins:    []string{"*"},
		RateLimit:         100,
		RateLimitBurst:    200,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if portStr := os.Getenv(envPort); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 && port < 65536 {
			cfg.Port = port
		}
	}

	if shutdownStr := os.Getenv(envShutdownSeconds); shutdownStr != "" {
		if seconds, err := strconv.Atoi(shutdownStr); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}
