package config

import (
	"time"

	"codeberg.org/mutker/procmon/internal/dashboard"
	"codeberg.org/mutker/procmon/internal/parameter"
)

// Provider defines the interface for accessing configuration values.
// All values are immutable after loading.
type Provider interface {
	// GetListen returns the HTTP listen address
	GetListen() string

	// GetWindowHours returns the default observation window for series
	GetWindowHours() int

	// GetSeed returns the configured seed and whether one was set
	GetSeed() (int64, bool)

	// GetLogLevel returns the configured logging level
	GetLogLevel() string

	// IsMetricsEnabled returns whether Prometheus metrics are exposed
	IsMetricsEnabled() bool

	// GetMetricsPath returns the scrape path
	GetMetricsPath() string

	// GetShutdownTimeout returns the graceful shutdown deadline
	GetShutdownTimeout() time.Duration

	// GetPIDFile returns the PID file used by the serve command
	GetPIDFile() string

	// DashboardDefaults returns the request used when a dashboard query
	// leaves fields unset
	DashboardDefaults() dashboard.Request

	// Catalog returns the default parameter catalog with configured
	// overrides applied
	Catalog() (*parameter.Catalog, error)
}

// Option defines a configuration option that can be passed to Load
type Option func(*options)

// options holds internal configuration options
type options struct {
	configPath string
	envPrefix  string
	dotenv     []string
}

// WithConfigFile specifies an explicit configuration file path
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithEnvPrefix specifies a custom environment variable prefix.
// Default is "PROCMON".
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithDotenv loads the given .env files instead of ./.env
func WithDotenv(files ...string) Option {
	return func(o *options) {
		o.dotenv = files
	}
}
