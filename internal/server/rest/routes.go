package rest

import (
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/server/httpapi"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// devCORSOrigin is allowed when no origin is configured outside production.
const devCORSOrigin = "http://localhost:5173"

// Handler builds the full middleware chain around the router.
func (s *HTTPServer) Handler() http.Handler {
	return chain(s.router(),
		s.recoverer,
		requestID,
		s.securityHeaders,
		s.cors(),
		s.accessLog,
		s.rateLimit(s.limiter),
		s.timeout,
		s.bodyLimit,
		s.csrfGuard,
		s.loadSession,
	)
}

func (s *HTTPServer) router() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)

	r.Handle("/health", s.handle(s.healthz)).Methods(http.MethodGet, http.MethodHead)

	auth := r.PathPrefix("/auth").Subrouter()
	limited := s.rateLimit(s.authLimiter)
	auth.Handle("/register", limited(s.handle(s.register))).Methods(http.MethodPost)
	auth.Handle("/login", limited(s.handle(s.login))).Methods(http.MethodPost)
	auth.Handle("/logout", s.handle(s.logout)).Methods(http.MethodPost)
	auth.Handle("/me", s.requireAuth(s.handle(s.me))).Methods(http.MethodGet)

	jobs := r.PathPrefix("/jobs").Subrouter()
	jobs.Use(s.requireAuth)
	collection(jobs, s.handle(s.listJobs), http.MethodGet)
	collection(jobs, s.handle(s.createJob), http.MethodPost)
	jobs.Handle("/{id}", s.handle(s.getJob)).Methods(http.MethodGet)
	jobs.Handle("/{id}", s.handle(s.updateJob)).Methods(http.MethodPatch)
	jobs.Handle("/{id}", s.handle(s.deleteJob)).Methods(http.MethodDelete)

	recruiters := r.PathPrefix("/recruiters").Subrouter()
	recruiters.Use(s.requireAuth)
	collection(recruiters, s.handle(s.listRecruiters), http.MethodGet)
	collection(recruiters, s.handle(s.createRecruiter), http.MethodPost)
	recruiters.Handle("/{id}", s.handle(s.getRecruiter)).Methods(http.MethodGet)
	recruiters.Handle("/{id}", s.handle(s.updateRecruiter)).Methods(http.MethodPatch)
	recruiters.Handle("/{id}", s.handle(s.deleteRecruiter)).Methods(http.MethodDelete)

	firms := r.PathPrefix("/recruiting-firms").Subrouter()
	firms.Use(s.requireAuth)
	collection(firms, s.handle(s.listRecruitingFirms), http.MethodGet)
	collection(firms, s.handle(s.createRecruitingFirm), http.MethodPost)
	firms.Handle("/{id}", s.handle(s.getRecruitingFirm)).Methods(http.MethodGet)
	firms.Handle("/{id}", s.handle(s.updateRecruitingFirm)).Methods(http.MethodPatch)
	firms.Handle("/{id}", s.handle(s.deleteRecruitingFirm)).Methods(http.MethodDelete)

	return r
}

// collection registers h on the subrouter root with and without a trailing
// slash. StrictSlash would redirect, which breaks POST.
func collection(r *mux.Router, h http.Handler, methods ...string) {
	r.Handle("", h).Methods(methods...)
	r.Handle("/", h).Methods(methods...)
}

func (s *HTTPServer) cors() func(http.Handler) http.Handler {
	origin := s.config.CORSOrigin
	if origin == "" && !s.config.IsProduction() {
		origin = devCORSOrigin
	}
	return handlers.CORS(
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPatch, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", common.RequestIDHeader}),
		handlers.ExposedHeaders([]string{common.RequestIDHeader, "RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "Retry-After"}),
	)
}

func (s *HTTPServer) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, httpapi.ErrorResponse{Error: httpapi.ErrorBody{Message: msgNotFound, Path: r.URL.Path}})
}

func (s *HTTPServer) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, httpError(http.StatusMethodNotAllowed, msgMethodNotAllowed))
}
