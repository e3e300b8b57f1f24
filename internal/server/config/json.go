package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
	"github.com/dmitrijs2005/jobtracker/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations
// accept both "15m" strings and integer nanoseconds. Zero values leave the
// current setting untouched.
type JsonConfig struct {
	Env                 string         `json:"env"`
	Port                int            `json:"port"`
	DatabaseURL         string         `json:"database_url"`
	CORSOrigin          string         `json:"cors_origin"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	SessionTTL          timex.Duration `json:"session_ttl"`
	RateLimitMax        int            `json:"rate_limit_max"`
	RateLimitWindow     timex.Duration `json:"rate_limit_window"`
	AuthRateLimitMax    int            `json:"auth_rate_limit_max"`
	AuthRateLimitWindow timex.Duration `json:"auth_rate_limit_window"`
	DBMaxOpenConns      int            `json:"db_max_open_conns"`
	AutoMigrate         *bool          `json:"auto_migrate"`
}

// parseJson overlays the file named by -c/-config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.Env, c.Env)
	setInt(&config.Port, c.Port)
	setString(&config.DatabaseURL, c.DatabaseURL)
	setString(&config.CORSOrigin, c.CORSOrigin)
	setDuration(&config.RequestTimeout, c.RequestTimeout)
	setDuration(&config.SessionTTL, c.SessionTTL)
	setInt(&config.RateLimitMax, c.RateLimitMax)
	setDuration(&config.RateLimitWindow, c.RateLimitWindow)
	setInt(&config.AuthRateLimitMax, c.AuthRateLimitMax)
	setDuration(&config.AuthRateLimitWindow, c.AuthRateLimitWindow)
	setInt(&config.DBMaxOpenConns, c.DBMaxOpenConns)
	if c.AutoMigrate != nil {
		config.AutoMigrate = *c.AutoMigrate
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
