package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
)

func (s *HTTPServer) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge / time.Second)
		c.Expires = s.now().Add(maxAge)
	} else {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	}
	return c
}

// setSessionCookie replaces whatever session cookie the client holds.
func (s *HTTPServer) setSessionCookie(w http.ResponseWriter, token string) {
	s.clearSessionCookie(w)
	http.SetCookie(w, s.sessionCookie(token, s.auth.SessionTTL()))
}

func (s *HTTPServer) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.sessionCookie("", 0))
}

func sessionToken(r *http.Request) string {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
