// Package config builds the server configuration from defaults, an
// optional JSON file, the environment (optionally seeded from a .env file)
// and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds runtime settings for the job tracker API.
type Config struct {
	Env         string
	Port        int
	DatabaseURL string
	// DatabaseSSLRejectUnauthorized is "true", "false" or "" (unset).
	DatabaseSSLRejectUnauthorized string
	CORSOrigin                    string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	SessionTTL      time.Duration
	BodyLimit       int64

	RateLimitMax        int
	RateLimitWindow     time.Duration
	AuthRateLimitMax    int
	AuthRateLimitWindow time.Duration

	DBMaxOpenConns    int
	DBConnMaxIdleTime time.Duration

	AutoMigrate bool
}

// LoadDefaults populates Config with development defaults.
// DatabaseURL has no default and must be supplied.
func (c *Config) LoadDefaults() {
	c.Env = EnvDevelopment
	c.Port = 3000
	c.RequestTimeout = 30 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.SessionTTL = 7 * 24 * time.Hour
	c.BodyLimit = 10 << 10
	c.RateLimitMax = 100
	c.RateLimitWindow = 15 * time.Minute
	c.AuthRateLimitMax = 10
	c.AuthRateLimitWindow = 15 * time.Minute
	c.DBMaxOpenConns = 10
	c.DBConnMaxIdleTime = 30 * time.Second
	c.AutoMigrate = true
}

// IsProduction reports whether the service runs with production semantics
// (secure cookies, JSON logs, no error detail in responses).
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.IsProduction() && c.CORSOrigin == "" {
		errs = append(errs, errors.New("CORS_ORIGIN is required in production"))
	}
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Env))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.RequestTimeout <= 0 || c.SessionTTL <= 0 || c.RateLimitWindow <= 0 || c.AuthRateLimitWindow <= 0 {
		errs = append(errs, errors.New("durations must be positive"))
	}
	if c.RateLimitMax <= 0 || c.AuthRateLimitMax <= 0 || c.DBMaxOpenConns <= 0 || c.BodyLimit <= 0 {
		errs = append(errs, errors.New("limits must be positive"))
	}

	return errors.Join(errs...)
}

// Load builds a Config from defaults, then the JSON file, then the
// environment, then flags taken from args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, args, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
