// Package rest is the JSON-over-HTTP transport of the job tracker: routing,
// request decoding, error rendering and the cross-cutting middleware
// (request ids, access log, CORS, rate limits, CSRF guard, sessions).
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
	"github.com/dmitrijs2005/jobtracker/internal/server/validation"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) (bool, error)
	SessionTTL() time.Duration
}

type JobService interface {
	List(ctx context.Context, userID string, limit, offset int) (*services.Page[models.Job], error)
	Get(ctx context.Context, userID, id string) (*models.Job, error)
	Create(ctx context.Context, userID string, job *models.Job) (*models.Job, error)
	Update(ctx context.Context, userID, id string, patch models.JobPatch) (*models.Job, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type RecruiterService interface {
	List(ctx context.Context, userID string, limit, offset int) (*services.Page[models.Recruiter], error)
	Get(ctx context.Context, userID, id string) (*models.Recruiter, error)
	Create(ctx context.Context, userID string, r *models.Recruiter) (*models.Recruiter, error)
	Update(ctx context.Context, userID, id string, patch models.RecruiterPatch) (*models.Recruiter, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type RecruitingFirmService interface {
	List(ctx context.Context, userID string, limit, offset int) (*services.Page[models.RecruitingFirm], error)
	Get(ctx context.Context, userID, id string) (*models.RecruitingFirm, error)
	Create(ctx context.Context, userID string, f *models.RecruitingFirm) (*models.RecruitingFirm, error)
	Update(ctx context.Context, userID, id string, patch models.RecruitingFirmPatch) (*models.RecruitingFirm, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type HealthChecker interface {
	Check(ctx context.Context) error
}

// Services groups the business layer the transport depends on.
type Services struct {
	Auth            AuthService
	Jobs            JobService
	Recruiters      RecruiterService
	RecruitingFirms RecruitingFirmService
	Health          HealthChecker
}

type HTTPServer struct {
	config     *config.Config
	logger     logging.Logger
	auth       AuthService
	jobs       JobService
	recruiters RecruiterService
	firms      RecruitingFirmService
	health     HealthChecker
	validator  *validation.Validator

	limiter     *rateLimiter
	authLimiter *rateLimiter
	now         func() time.Time
}

func NewHTTPServer(c *config.Config, l logging.Logger, svc Services) *HTTPServer {
	s := &HTTPServer{
		config:     c,
		logger:     l.With("module", "http_server"),
		auth:       svc.Auth,
		jobs:       svc.Jobs,
		recruiters: svc.Recruiters,
		firms:      svc.RecruitingFirms,
		health:     svc.Health,
		validator:  validation.Default(),
		now:        time.Now,
	}
	s.limiter = newRateLimiter(c.RateLimitMax, c.RateLimitWindow, s.clock)
	s.authLimiter = newRateLimiter(c.AuthRateLimitMax, c.AuthRateLimitWindow, s.clock)
	return s
}

// clock indirects through s.now so tests can swap the time source after
// construction.
func (s *HTTPServer) clock() time.Time {
	return s.now()
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
