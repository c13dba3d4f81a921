package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tally-lab/project-tally/internal/dataset"
)

// Dataset source types.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

const envPrefix = "TALLY_"

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{
	"cors.allowed_origins": true,
	"dataset.paths":        true,
}

// Config represents the top-level configuration for Tally.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	CORS      CORSConfig      `koanf:"cors"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Database  DatabaseConfig  `koanf:"database"`
	Analytics AnalyticsConfig `koanf:"analytics"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`
	Mode string `koanf:"mode"` // debug | release | test
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"` // seconds
}

// DatasetConfig selects where records are loaded from.
type DatasetConfig struct {
	SourceType     string   `koanf:"source_type"` // file | postgres | sqlite
	Paths          []string `koanf:"paths"`       // globs, used by the file source
	Table          string   `koanf:"table"`
	ReloadInterval string   `koanf:"reload_interval"` // parsed as time.Duration; empty disables reloading

	// ReloadEvery is ReloadInterval parsed by Validate, zero when reloading is off.
	ReloadEvery time.Duration `koanf:"-"`
}

func parseInterval(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// DatabaseConfig holds the database connection settings of the SQL sources.
type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // derived from dataset.source_type when empty
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type AnalyticsConfig struct {
	TopN int `koanf:"top_n"`
}

// DatabaseDriver returns the database/sql driver name for the configured
// source, or "" for the file source.
func (c *Config) DatabaseDriver() string {
	if c.Database.Driver != "" {
		return c.Database.Driver
	}
	switch c.Dataset.SourceType {
	case SourcePostgres:
		return "postgres"
	case SourceSQLite:
		return "sqlite3"
	}
	return ""
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server.mode %q (must be debug, release or test)", c.Server.Mode)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("cors.allowed_origins must not be empty")
	}
	if c.CORS.AllowCredentials {
		for _, o := range c.CORS.AllowedOrigins {
			if o == "*" {
				return fmt.Errorf("cors.allow_credentials cannot be combined with a wildcard origin")
			}
		}
	}
	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("cors.max_age must be >= 0")
	}

	interval, err := parseInterval(c.Dataset.ReloadInterval)
	if err != nil {
		return fmt.Errorf("invalid dataset.reload_interval %q: %w", c.Dataset.ReloadInterval, err)
	}
	if interval < 0 {
		return fmt.Errorf("dataset.reload_interval must be >= 0")
	}
	c.Dataset.ReloadEvery = interval

	switch c.Dataset.SourceType {
	case SourceFile:
		if len(c.Dataset.Paths) == 0 {
			return fmt.Errorf("dataset.paths is required for the file source")
		}
	case SourcePostgres, SourceSQLite:
		if err := c.validateDatabase(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported dataset.source_type %q (must be file, postgres or sqlite)", c.Dataset.SourceType)
	}

	if c.Analytics.TopN <= 0 {
		return fmt.Errorf("analytics.top_n must be > 0")
	}

	return nil
}

func (c *Config) validateDatabase() error {
	want := map[string]string{SourcePostgres: "postgres", SourceSQLite: "sqlite3"}[c.Dataset.SourceType]
	if c.Database.Driver != "" && c.Database.Driver != want {
		return fmt.Errorf("database.driver %q does not match dataset.source_type %q", c.Database.Driver, c.Dataset.SourceType)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if !dataset.ValidTable(c.Dataset.Table) {
		return fmt.Errorf("invalid dataset.table %q", c.Dataset.Table)
	}
	return nil
}

// Load loads the configuration from the given file path and environment
// variables, then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.mode":             "release",
		"cors.allowed_origins":    []string{"*"},
		"cors.allow_credentials":  false,
		"cors.max_age":            300,
		"dataset.source_type":     SourceFile,
		"dataset.paths":           []string{"./data/*.json"},
		"dataset.table":           dataset.DefaultTable,
		"dataset.reload_interval": "",
		"database.driver":         "",
		"database.dsn":            "",
		"database.max_open_conns": 10,
		"database.max_idle_conns": 5,
		"database.auto_migrate":   true,
		"analytics.top_n":         10,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// 2. Load from file
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// 3. Load from Environment Variables
	// TALLY_SERVER__PORT=9090 overrides server.port
	// TALLY_DATASET__PATHS=a.json,b.yaml sets a list
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.Replace(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "__", ".", -1)
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
