package rest

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// rateLimiter is a fixed-window request counter keyed by client address.
type rateLimiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	now       func() time.Time
	windows   map[string]*window
	nextSweep time.Time
}

type window struct {
	hits  int
	reset time.Time
}

func newRateLimiter(max int, w time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		max:     max,
		window:  w,
		now:     now,
		windows: make(map[string]*window),
	}
}

// take counts one hit for key and reports whether it is within the limit,
// how many hits remain and when the current window ends.
func (l *rateLimiter) take(key string) (allowed bool, remaining int, reset time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	win, ok := l.windows[key]
	if !ok || !now.Before(win.reset) {
		win = &window{reset: now.Add(l.window)}
		l.windows[key] = win
	}
	win.hits++

	remaining = l.max - win.hits
	if remaining < 0 {
		remaining = 0
	}
	return win.hits <= l.max, remaining, win.reset
}

// sweep drops expired windows at most once per window length.
func (l *rateLimiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for k, w := range l.windows {
		if !now.Before(w.reset) {
			delete(l.windows, k)
		}
	}
	l.nextSweep = now.Add(l.window)
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimit enforces l and advertises its state with the RateLimit-*
// headers.
func (s *HTTPServer) rateLimit(l *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, reset := l.take(clientKey(r))

			secs := int(reset.Sub(l.now()).Round(time.Second) / time.Second)
			if secs < 0 {
				secs = 0
			}

			h := w.Header()
			h.Set("RateLimit-Limit", strconv.Itoa(l.max))
			h.Set("RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("RateLimit-Reset", strconv.Itoa(secs))

			if !allowed {
				h.Set("Retry-After", strconv.Itoa(secs))
				s.writeError(w, r, httpError(http.StatusTooManyRequests, msgTooManyRequests))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
