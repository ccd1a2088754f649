// Package config builds the immutable application configuration from the
// process environment. It is read once at startup and passed explicitly to
// every component that needs it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/globetraiteurs/plats/pkg/defaults"
)

// Environment variable names.
const (
	EnvAppEnv         = "APP_ENV"
	EnvAirtableToken  = "AIRTABLE_TOKEN"
	EnvBaseID         = "AIRTABLE_BASE_ID"
	EnvAPIURL         = "AIRTABLE_API_URL"
	EnvTallyTable     = "AIRTABLE_TALLY_TABLE"
	EnvPlatsTable     = "AIRTABLE_PLATS_TABLE"
	EnvDishesTable    = "AIRTABLE_DISHES_TABLE"
	EnvCulturesTable  = "AIRTABLE_CULTURES_TABLE"
	EnvPageSize       = "AIRTABLE_PAGE_SIZE"
	EnvAllowedOrigin  = "ALLOWED_ORIGIN"
	EnvBearerToken    = "BEARER_TOKEN"
	EnvPort           = "PORT"
	maxPort           = 65535
	DefaultAPIURL     = "https://api.airtable.com/v0"
	DefaultTally      = "Tally"
	DefaultPlats      = "Plats"
	DefaultDishes     = "Dishes"
	DefaultOrigin     = "*"
	productionAppEnv  = "production"
	redactedValue     = "[redacted]"
	originsSeparator  = ","
	requiredVarPrefix = "missing required environment variables: "
)

// Config holds the service configuration.
type Config struct {
	// AirtableToken is the server-held credential sent on every store call.
	AirtableToken string
	// BaseID identifies the store base; it is part of every table URL.
	BaseID string
	// APIURL is the store API root, overridable for tests and proxies.
	APIURL string

	TallyTable    string
	PlatsTable    string
	DishesTable   string
	CulturesTable string

	// PageSize caps filtered list queries. Only the first page is read.
	PageSize int

	// AllowedOrigins lists CORS origins allowed to call the API.
	AllowedOrigins []string

	// BearerToken protects /recommendations/create. Empty disables that route.
	BearerToken string

	// Port is the listen port. Zero keeps the server default.
	Port int
}

// Load reads configuration from the environment. Outside production a .env
// file in the working directory is loaded first; variables already set in
// the environment win.
func Load() (*Config, error) {
	if os.Getenv(EnvAppEnv) != productionAppEnv {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return FromLookup(os.Getenv)
}

// FromLookup builds a Config from the given variable lookup function.
func FromLookup(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		AirtableToken:  get(EnvAirtableToken, ""),
		BaseID:         get(EnvBaseID, ""),
		APIURL:         strings.TrimRight(get(EnvAPIURL, DefaultAPIURL), "/"),
		TallyTable:     get(EnvTallyTable, DefaultTally),
		PlatsTable:     get(EnvPlatsTable, DefaultPlats),
		DishesTable:    get(EnvDishesTable, DefaultDishes),
		CulturesTable:  get(EnvCulturesTable, ""),
		PageSize:       defaults.PageSize,
		AllowedOrigins: splitOrigins(get(EnvAllowedOrigin, DefaultOrigin)),
		BearerToken:    get(EnvBearerToken, ""),
	}

	if s := get(EnvPageSize, ""); s != "" {
		n, err := parseBounded(EnvPageSize, s, defaults.MaxPageSize)
		if err != nil {
			return nil, err
		}
		cfg.PageSize = n
	}

	if s := get(EnvPort, ""); s != "" {
		n, err := parseBounded(EnvPort, s, maxPort)
		if err != nil {
			return nil, err
		}
		cfg.Port = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseBounded parses a whole decimal value in [1, upper].
func parseBounded(key, s string, upper int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > upper {
		return 0, fmt.Errorf("invalid %s %q: must be between 1 and %d", key, s, upper)
	}
	return n, nil
}

// Validate reports every missing required value in one error.
func (c *Config) Validate() error {
	var missing []string
	if c.AirtableToken == "" {
		missing = append(missing, EnvAirtableToken)
	}
	if c.BaseID == "" {
		missing = append(missing, EnvBaseID)
	}
	if len(missing) > 0 {
		return errors.New(requiredVarPrefix + strings.Join(missing, ", "))
	}
	return nil
}

// RecommendationsEnabled reports whether the bearer-protected route is mounted.
func (c *Config) RecommendationsEnabled() bool {
	return c.BearerToken != ""
}

// LogValue implements slog.LogValuer and keeps secrets out of the logs.
func (c *Config) LogValue() slog.Value {
	bearer := ""
	if c.BearerToken != "" {
		bearer = redactedValue
	}
	return slog.GroupValue(
		slog.String("apiURL", c.APIURL),
		slog.String("baseID", c.BaseID),
		slog.String("token", redactedValue),
		slog.String("tallyTable", c.TallyTable),
		slog.String("platsTable", c.PlatsTable),
		slog.String("dishesTable", c.DishesTable),
		slog.String("culturesTable", c.CulturesTable),
		slog.Int("pageSize", c.PageSize),
		slog.Any("allowedOrigins", c.AllowedOrigins),
		slog.String("bearer", bearer),
	)
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, originsSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
