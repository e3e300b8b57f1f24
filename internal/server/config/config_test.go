package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, EnvDevelopment, c.Env)
	assert.Equal(t, 3000, c.Port)
	assert.Equal(t, ":3000", c.Addr())
	assert.Empty(t, c.DatabaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 7*24*time.Hour, c.SessionTTL)
	assert.Equal(t, int64(10*1024), c.BodyLimit)
	assert.Equal(t, 100, c.RateLimitMax)
	assert.Equal(t, 10, c.AuthRateLimitMax)
	assert.Equal(t, 15*time.Minute, c.AuthRateLimitWindow)
	assert.True(t, c.AutoMigrate)
	assert.False(t, c.IsProduction())
}

func validConfig() *Config {
	c := &Config{}
	c.LoadDefaults()
	c.DatabaseURL = "postgres://localhost/jobs"
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: "DATABASE_URL is required"},
		{
			name:    "production without cors origin",
			mutate:  func(c *Config) { c.Env = EnvProduction },
			wantErr: "CORS_ORIGIN is required in production",
		},
		{
			name:   "production with cors origin",
			mutate: func(c *Config) { c.Env = EnvProduction; c.CORSOrigin = "https://app.example.com" },
		},
		{name: "unknown env", mutate: func(c *Config) { c.Env = "staging" }, wantErr: `unknown environment "staging"`},
		{name: "bad port", mutate: func(c *Config) { c.Port = 0 }, wantErr: "invalid port 0"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "durations must be positive"},
		{name: "zero limit", mutate: func(c *Config) { c.AuthRateLimitMax = 0 }, wantErr: "limits must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		reject string
		url    string
		want   string
	}{
		{name: "dev untouched", env: EnvDevelopment, url: "postgres://u:p@db:5432/jobs", want: "postgres://u:p@db:5432/jobs"},
		{name: "dev opt-in verify", env: EnvDevelopment, reject: "true", url: "postgres://db/jobs", want: "postgres://db/jobs?sslmode=verify-full"},
		{name: "prod verifies", env: EnvProduction, url: "postgres://db/jobs", want: "postgres://db/jobs?sslmode=verify-full"},
		{name: "prod relaxed", env: EnvProduction, reject: "false", url: "postgres://db/jobs", want: "postgres://db/jobs?sslmode=require"},
		{name: "explicit sslmode wins", env: EnvProduction, url: "postgres://db/jobs?sslmode=disable", want: "postgres://db/jobs?sslmode=disable"},
		{name: "keyword dsn", env: EnvProduction, url: "host=db dbname=jobs", want: "host=db dbname=jobs sslmode=verify-full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Env: tt.env, DatabaseURL: tt.url, DatabaseSSLRejectUnauthorized: tt.reject}
			assert.Equal(t, tt.want, c.DSN())
		})
	}
}
