package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
)

const maxRequestIDLen = 64

type ctxKey int

const (
	userKey ctxKey = iota
	requestStateKey
)

// requestState is shared between the access log and the handlers below it
// so the log line can name the user resolved further down the chain.
// A timed-out handler may still be running when the log line is written.
type requestState struct {
	mu     sync.Mutex
	userID string
}

func (st *requestState) setUser(id string) {
	st.mu.Lock()
	st.userID = id
	st.mu.Unlock()
}

func (st *requestState) user() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.userID
}

func withUser(ctx context.Context, u *models.User) context.Context {
	if st, ok := ctx.Value(requestStateKey).(*requestState); ok {
		st.setUser(u.ID)
	}
	ctx = logging.WithUserID(ctx, u.ID)
	return context.WithValue(ctx, userKey, u)
}

// currentUser returns the authenticated user or nil.
func currentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				s.logger.Error(r.Context(), "panic", "value", p, "stack", string(debug.Stack()))
				s.writeError(w, r, internalError(msgInternal, fmt.Errorf("panic: %v", p)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestID honours an incoming X-Request-ID (truncated) or assigns a UUID,
// and echoes it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		} else if runes := []rune(id); len(runes) > maxRequestIDLen {
			id = string(runes[:maxRequestIDLen])
		}
		w.Header().Set(common.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}

func (s *HTTPServer) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")
		if s.config.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one line per request. Cookies and credentials are never
// logged.
func (s *HTTPServer) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := &requestState{}
		r = r.WithContext(context.WithValue(r.Context(), requestStateKey, st))

		m := httpsnoop.CaptureMetrics(next, w, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration,
			"remote", clientKey(r),
		}
		if id := st.user(); id != "" {
			args = append(args, "user_id", id)
		}
		s.logger.Info(r.Context(), "request", args...)
	})
}

// bodyLimit caps request bodies; overflowing reads surface as 413.
func (s *HTTPServer) bodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > s.config.BodyLimit {
			s.writeError(w, r, httpError(http.StatusRequestEntityTooLarge, msgBodyTooLarge))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, s.config.BodyLimit)
		next.ServeHTTP(w, r)
	})
}

// csrfGuard requires X-Requested-With on state-changing methods. Browsers
// cannot attach custom headers to cross-site form posts.
func (s *HTTPServer) csrfGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if r.Header.Get("X-Requested-With") == "" {
				s.writeError(w, r, httpError(http.StatusForbidden, msgMissingCSRF))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// loadSession attaches the user behind a valid session cookie. A missing or
// stale cookie leaves the request anonymous; requireAuth decides.
func (s *HTTPServer) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				next.ServeHTTP(w, r)
				return
			}
			s.writeError(w, r, internalError(msgInternal, err))
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (s *HTTPServer) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r.Context()) == nil {
			s.writeError(w, r, httpError(http.StatusUnauthorized, msgAuthRequired))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// timeout bounds each request by RequestTimeout. The handler context is
// cancelled at the deadline; if nothing was written yet the client gets 408.
func (s *HTTPServer) timeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.config.RequestTimeout)
		defer cancel()
		r = r.WithContext(ctx)

		tw := &timeoutWriter{w: w, h: make(http.Header)}
		done := make(chan struct{})
		panicked := make(chan any, 1)

		go func() {
			defer func() {
				if p := recover(); p != nil {
					panicked <- p
				}
			}()
			next.ServeHTTP(tw, r)
			close(done)
		}()

		select {
		case p := <-panicked:
			panic(p)
		case <-done:
		case <-ctx.Done():
		}

		tw.mu.Lock()
		defer tw.mu.Unlock()

		// a handler that gave up because of the deadline counts as timed out
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			tw.timedOut = true
			s.logger.Warn(r.Context(), "request timed out", "method", r.Method, "path", r.URL.Path)
			s.writeError(w, r, httpError(http.StatusRequestTimeout, msgTimeout))
		case ctx.Err() != nil:
			// client went away
			tw.timedOut = true
		default:
			tw.flush()
		}
	})
}

// timeoutWriter buffers a response until the handler finishes so a late
// handler cannot write after the 408 went out.
type timeoutWriter struct {
	mu          sync.Mutex
	w           http.ResponseWriter
	h           http.Header
	buf         bytes.Buffer
	code        int
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.h }

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.buf.Write(p)
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	tw.wroteHeader = true
	tw.code = code
}

func (tw *timeoutWriter) flush() {
	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = vv
	}
	if !tw.wroteHeader {
		tw.code = http.StatusOK
	}
	tw.w.WriteHeader(tw.code)
	_, _ = tw.w.Write(tw.buf.Bytes())
}

var _ http.ResponseWriter = (*timeoutWriter)(nil)

// chain applies middleware so that the first one listed runs first.
func chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
