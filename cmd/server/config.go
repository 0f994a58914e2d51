package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/warp/date-engine/api"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config collects the serve command's settings.
type Config struct {
	Port           int
	DBPath         string
	LogLevel       string
	CacheTTL       time.Duration
	CORSOrigins    []string
	RetentionYears string
	SweepInterval  time.Duration
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Port:          8080,
		DBPath:        "schedules.db",
		LogLevel:      "info",
		CacheTTL:      api.DefaultCacheTTL,
		CORSOrigins:   api.DefaultAllowedOrigins,
		SweepInterval: time.Hour,
	}
}

// AddFlags binds c's fields to flags. Current values become the defaults.
func (c *Config) AddFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&c.Port, "port", "p", c.Port, "HTTP server port")
	flags.StringVar(&c.DBPath, "db", c.DBPath, `SQLite database path (":memory:" for in-memory SQLite, "" for the map store)`)
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (trace, debug, info, warn, error)")
	flags.DurationVar(&c.CacheTTL, "cache-ttl", c.CacheTTL, "How long generated previews stay cached")
	flags.StringSliceVar(&c.CORSOrigins, "cors-origin", c.CORSOrigins, "Allowed CORS origins")
	flags.StringVar(&c.RetentionYears, "retention-years", c.RetentionYears, "Delete saved schedules this many years after their last date (empty disables)")
	flags.DurationVar(&c.SweepInterval, "sweep-interval", c.SweepInterval, "How often expired schedules are deleted")
}

// Validate checks the settings.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("cache-ttl must be positive, got %s", c.CacheTTL))
	}
	if c.RetentionYears != "" {
		years, err := decimal.NewFromString(c.RetentionYears)
		if err != nil {
			errs = append(errs, fmt.Errorf("retention-years %q is not a number", c.RetentionYears))
		} else if years.IsNegative() {
			errs = append(errs, fmt.Errorf("retention-years must not be negative, got %s", years))
		}
		if c.SweepInterval <= 0 {
			errs = append(errs, fmt.Errorf("sweep-interval must be positive, got %s", c.SweepInterval))
		}
	}
	return errors.Join(errs...)
}

// Retention returns the retention period and whether the sweeper is enabled.
// Call after Validate.
func (c Config) Retention() (decimal.Decimal, bool) {
	if c.RetentionYears == "" {
		return decimal.Zero, false
	}
	return decimal.RequireFromString(c.RetentionYears), true
}

// newLogger builds the process logger.
func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}
