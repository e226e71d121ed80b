// Package config loads procmon settings from defaults, .env files, a TOML
// config file, PROCMON_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"codeberg.org/mutker/procmon/internal/dashboard"
	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/logger"
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/pid"
	"codeberg.org/mutker/procmon/internal/sampling"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultListen          = ":8080"
	DefaultWindowHours     = 12
	DefaultLogLevel        = "info"
	DefaultKPISource       = string(dashboard.SourceReference)
	DefaultMetricsPath     = "/metrics"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultEnvPrefix       = "PROCMON"

	configName = "procmon"
)

type Config struct {
	Listen          string                        `mapstructure:"listen"`
	WindowHours     int                           `mapstructure:"window_hours"`
	ProcessWindow   int                           `mapstructure:"process_window"`
	QualityWindow   int                           `mapstructure:"quality_window"`
	Seed            int64                         `mapstructure:"seed"`
	Batch           string                        `mapstructure:"batch"`
	Day             int                           `mapstructure:"day"`
	BatchDays       int                           `mapstructure:"batch_days"`
	KPISource       string                        `mapstructure:"kpi_source"`
	LogLevel        string                        `mapstructure:"log_level"`
	Metrics         bool                          `mapstructure:"metrics"`
	MetricsPath     string                        `mapstructure:"metrics_path"`
	ShutdownTimeout time.Duration                 `mapstructure:"shutdown_timeout"`
	PIDFile         string                        `mapstructure:"pid_file"`
	Parameters      map[string]parameter.Override `mapstructure:"parameters"`

	// Seeded reports whether Seed was set by any source
	Seeded bool `mapstructure:"-"`
	// Args holds positional arguments left after flag parsing
	Args []string `mapstructure:"-"`
	// ConfigFile is the file that was read, if any
	ConfigFile string `mapstructure:"-"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"listen":           "listen",
	"window":           "window_hours",
	"process-window":   "process_window",
	"quality-window":   "quality_window",
	"seed":             "seed",
	"batch":            "batch",
	"day":              "day",
	"batch-days":       "batch_days",
	"kpi-source":       "kpi_source",
	"log-level":        "log_level",
	"metrics":          "metrics",
	"metrics-path":     "metrics_path",
	"shutdown-timeout": "shutdown_timeout",
	"pid-file":         "pid_file",
}

func newFlagSet() (*pflag.FlagSet, *string) {
	flags := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	configPath := flags.String("config", "", "Path to a TOML configuration file")
	flags.String("listen", DefaultListen, "HTTP listen address")
	flags.Int("window", DefaultWindowHours, "Observation window in hours")
	flags.Int("process-window", dashboard.DefaultWindow, "Dashboard process chart window in hours")
	flags.Int("quality-window", dashboard.DefaultWindow, "Dashboard quality chart window in hours")
	flags.Int64("seed", 0, "Seed for reproducible series")
	flags.String("batch", dashboard.DefaultBatch, "Batch label")
	flags.Int("day", 0, "Selected batch day (default 8, capped at batch-days)")
	flags.Int("batch-days", dashboard.DefaultBatchDays, "Number of days in a batch")
	flags.String("kpi-source", DefaultKPISource, "KPI source: reference or series")
	flags.String("log-level", DefaultLogLevel, "Log level: debug, info, warn, error")
	flags.Bool("metrics", false, "Expose Prometheus metrics")
	flags.String("metrics-path", DefaultMetricsPath, "Metrics scrape path")
	flags.Duration("shutdown-timeout", DefaultShutdownTimeout, "Graceful shutdown timeout")
	flags.String("pid-file", pid.DefaultPath(), "PID file guarding the serve command")

	return flags, configPath
}

// Usage returns the help text for all flags
func Usage() string {
	flags, _ := newFlagSet()
	return flags.FlagUsages()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("window_hours", DefaultWindowHours)
	v.SetDefault("process_window", dashboard.DefaultWindow)
	v.SetDefault("quality_window", dashboard.DefaultWindow)
	v.SetDefault("batch", dashboard.DefaultBatch)
	v.SetDefault("batch_days", dashboard.DefaultBatchDays)
	v.SetDefault("kpi_source", DefaultKPISource)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("metrics", false)
	v.SetDefault("metrics_path", DefaultMetricsPath)
	v.SetDefault("shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("pid_file", pid.DefaultPath())
}

// Load reads configuration from all sources and validates it. args are the
// command line arguments without the program name.
func Load(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(o)
	}

	if err := loadDotenv(o.dotenv); err != nil {
		return nil, errFactory.Wrap(ErrReadConfig, err)
	}

	flags, configPath := newFlagSet()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// seed has no default so IsSet can tell whether it was configured
	if err := v.BindEnv("seed"); err != nil {
		return nil, errFactory.Wrap(ErrBindFlags, err)
	}

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(ErrBindFlags, err)
		}
	}

	path := o.configPath
	if *configPath != "" {
		path = *configPath
	}
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(ErrReadConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}
	if cfg.Day == 0 {
		cfg.Day = min(dashboard.DefaultDay, cfg.BatchDays)
	}
	cfg.Seeded = v.IsSet("seed")
	cfg.Args = flags.Args()
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadDotenv(files []string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}

	return godotenv.Load(files...)
}

// Validate checks every field and the parameter overrides.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if err := sampling.ValidateWindow(c.WindowHours); err != nil {
		return errFactory.Wrap(ErrInvalidConfig, err).WithMessage("window_hours")
	}

	if err := c.DashboardDefaults().Validate(); err != nil {
		return errFactory.Wrap(ErrInvalidConfig, err).WithMessage("dashboard defaults")
	}

	switch {
	case c.Listen == "":
		return errFactory.WithData(ErrInvalidConfig, "listen address is empty")
	case !strings.HasPrefix(c.MetricsPath, "/"):
		return errFactory.WithData(ErrInvalidConfig, fmt.Sprintf("metrics_path %q must start with /", c.MetricsPath))
	case c.PIDFile == "":
		return errFactory.WithData(ErrInvalidConfig, "pid_file is empty")
	case c.ShutdownTimeout <= 0:
		return errFactory.WithData(ErrInvalidConfig, fmt.Sprintf("shutdown_timeout %s", c.ShutdownTimeout))
	}

	if _, err := c.Catalog(); err != nil {
		return errFactory.Wrap(ErrInvalidConfig, err).WithMessage("parameters")
	}

	return nil
}

func (c *Config) GetListen() string                 { return c.Listen }
func (c *Config) GetWindowHours() int               { return c.WindowHours }
func (c *Config) GetSeed() (int64, bool)            { return c.Seed, c.Seeded }
func (c *Config) GetLogLevel() string               { return c.LogLevel }
func (c *Config) IsMetricsEnabled() bool            { return c.Metrics }
func (c *Config) GetMetricsPath() string            { return c.MetricsPath }
func (c *Config) GetShutdownTimeout() time.Duration { return c.ShutdownTimeout }
func (c *Config) GetPIDFile() string                { return c.PIDFile }

func (c *Config) DashboardDefaults() dashboard.Request {
	req := dashboard.Request{
		Batch:         c.Batch,
		Day:           c.Day,
		BatchDays:     c.BatchDays,
		ProcessWindow: c.ProcessWindow,
		QualityWindow: c.QualityWindow,
		Source:        dashboard.Source(c.KPISource),
	}
	if c.Seeded {
		seed := c.Seed
		req.Seed = &seed
	}
	return req
}

func (c *Config) Catalog() (*parameter.Catalog, error) {
	return parameter.Default().WithOverrides(c.Parameters)
}
