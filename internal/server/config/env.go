package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
	"github.com/joho/godotenv"
)

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// parseEnv loads the dotenv file (-e/-env-file, default ".env") into the
// process environment without overriding variables already set, then reads
// the recognised variables. A missing dotenv file is not an error.
func parseEnv(config *Config, args []string, lookup lookupFunc) error {
	if err := godotenv.Load(flagx.EnvFile(args, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if v, ok := lookup("NODE_ENV"); ok && v != "" {
		config.Env = v
	}
	if v, ok := lookup("APP_ENV"); ok && v != "" {
		config.Env = v
	}
	if v, ok := lookup("DATABASE_URL"); ok {
		config.DatabaseURL = v
	}
	if v, ok := lookup("CORS_ORIGIN"); ok {
		config.CORSOrigin = v
	}
	if v, ok := lookup("DATABASE_SSL_REJECT_UNAUTHORIZED"); ok {
		config.DatabaseSSLRejectUnauthorized = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &config.Port},
		{"RATE_LIMIT_MAX", &config.RateLimitMax},
		{"AUTH_RATE_LIMIT_MAX", &config.AuthRateLimitMax},
		{"DB_MAX_OPEN_CONNS", &config.DBMaxOpenConns},
	}
	for _, e := range ints {
		if err := envInt(lookup, e.key, e.dst); err != nil {
			return err
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"REQUEST_TIMEOUT", &config.RequestTimeout},
		{"SESSION_TTL", &config.SessionTTL},
		{"RATE_LIMIT_WINDOW", &config.RateLimitWindow},
		{"AUTH_RATE_LIMIT_WINDOW", &config.AuthRateLimitWindow},
		{"DB_CONN_MAX_IDLE_TIME", &config.DBConnMaxIdleTime},
	}
	for _, e := range durations {
		if err := envDuration(lookup, e.key, e.dst); err != nil {
			return err
		}
	}

	if v, ok := lookup("AUTO_MIGRATE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AUTO_MIGRATE: %w", err)
		}
		config.AutoMigrate = b
	}

	return nil
}

func envInt(lookup lookupFunc, key string, dst *int) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envDuration(lookup lookupFunc, key string, dst *time.Duration) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
