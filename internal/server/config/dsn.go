package config

import (
	"net/url"
	"strings"
)

// DSN returns DatabaseURL with an sslmode chosen from the environment when
// the URL does not specify one. Production verifies the server certificate
// unless DATABASE_SSL_REJECT_UNAUTHORIZED=false, in which case TLS is still
// required. Elsewhere verification is opt-in with
// DATABASE_SSL_REJECT_UNAUTHORIZED=true.
func (c *Config) DSN() string {
	mode := c.sslMode()
	if mode == "" {
		return c.DatabaseURL
	}

	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return c.DatabaseURL
		}
		q := u.Query()
		if q.Get("sslmode") != "" {
			return c.DatabaseURL
		}
		q.Set("sslmode", mode)
		u.RawQuery = q.Encode()
		return u.String()
	}

	if strings.Contains(c.DatabaseURL, "sslmode=") {
		return c.DatabaseURL
	}
	return strings.TrimSpace(c.DatabaseURL + " sslmode=" + mode)
}

func (c *Config) sslMode() string {
	if c.IsProduction() {
		if c.DatabaseSSLRejectUnauthorized == "false" {
			return "require"
		}
		return "verify-full"
	}
	if c.DatabaseSSLRejectUnauthorized == "true" {
		return "verify-full"
	}
	return ""
}
