// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers a YAML file and the environment on top.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Supported row store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// DBDriver selects the row store dialect: sqlite, mysql or postgres.
	DBDriver string `koanf:"db_driver"`

	// DBDSN is the driver specific data source name. For sqlite it is a file path.
	DBDSN string `koanf:"db_dsn"`

	// Connection pool limits.
	DBMaxOpenConns       int `koanf:"db_max_open_conns"`
	DBMaxIdleConns       int `koanf:"db_max_idle_conns"`
	DBConnMaxLifetimeSec int `koanf:"db_conn_max_lifetime_sec"`

	// AutoMigrate creates or updates the catalog tables on startup.
	AutoMigrate bool `koanf:"auto_migrate"`

	// LogSQL traces every statement at debug level.
	LogSQL bool `koanf:"log_sql"`

	// SlowQueryMS is the threshold above which statements are logged as slow.
	SlowQueryMS int `koanf:"slow_query_ms"`

	// StatsIntervalSec is how often the row gauges are refreshed.
	StatsIntervalSec int `koanf:"stats_interval_sec"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":8000",
		DBDriver:             DriverSQLite,
		DBDSN:                "tuna.db",
		DBMaxOpenConns:       10,
		DBMaxIdleConns:       5,
		DBConnMaxLifetimeSec: 300,
		AutoMigrate:          true,
		LogSQL:               false,
		SlowQueryMS:          200,
		StatsIntervalSec:     10,
	}
}

// Validate checks the fields that would otherwise fail late at startup.
func (c *Config) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown db_driver %q", ErrInvalidConfig, c.DBDriver)
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return fmt.Errorf("%w: db_dsn must not be empty", ErrInvalidConfig)
	}
	return nil
}

// ConnMaxLifetime returns DBConnMaxLifetimeSec as a duration.
func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeSec) * time.Second
}

// SlowQueryThreshold returns SlowQueryMS as a duration.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryMS) * time.Millisecond
}

// StatsInterval returns StatsIntervalSec as a duration, never below one second.
func (c *Config) StatsInterval() time.Duration {
	if c.StatsIntervalSec < 1 {
		return time.Second
	}
	return time.Duration(c.StatsIntervalSec) * time.Second
}
