// Package common contains shared constants and sentinel errors used across
// the job tracker components.
package common

import "time"

// SessionCookieName is the cookie carrying the raw session token.
const SessionCookieName = "sid"

// SessionTTL is the lifetime of both the session row and its cookie.
const SessionTTL = 7 * 24 * time.Hour

// RequestIDHeader is read from incoming requests and echoed on responses.
const RequestIDHeader = "X-Request-ID"
