package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/server/config"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/services"
	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

// ---- auth ----

type fakeAuth struct {
	mu        sync.Mutex
	passwords map[string]string
	users     map[string]*models.User
	sessions  map[string]*models.User
	authErr   error
	logoutErr error
	loginErr  error
	seq       int
	// slow makes Authenticate outlive the request deadline before answering.
	slow bool
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		passwords: map[string]string{},
		users:     map[string]*models.User{},
		sessions:  map[string]*models.User{},
	}
}

func (f *fakeAuth) issue(u *models.User) string {
	f.seq++
	token := fmt.Sprintf("token-%d", f.seq)
	f.sessions[token] = u
	return token
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (*services.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = services.NormalizeEmail(email)
	if _, ok := f.users[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: "hash", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	f.users[email] = u
	f.passwords[email] = password
	return &services.AuthResult{User: u, Token: f.issue(u)}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	email = services.NormalizeEmail(email)
	u, ok := f.users[email]
	if !ok || f.passwords[email] != password {
		return nil, common.ErrorUnauthorized
	}
	for tok, su := range f.sessions {
		if su.ID == u.ID {
			delete(f.sessions, tok)
		}
	}
	return &services.AuthResult{User: u, Token: f.issue(u)}, nil
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if f.slow {
		<-ctx.Done()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return nil, f.authErr
	}
	u, ok := f.sessions[token]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

func (f *fakeAuth) Logout(ctx context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logoutErr != nil {
		return false, f.logoutErr
	}
	_, ok := f.sessions[token]
	delete(f.sessions, token)
	return ok, nil
}

func (f *fakeAuth) SessionTTL() time.Duration { return common.SessionTTL }

// ---- jobs ----

type jobRow struct {
	owner string
	job   models.Job
}

type fakeJobs struct {
	mu         sync.Mutex
	rows       map[string]*jobRow
	err        error
	block      bool
	panicList  bool
	lastLimit  int
	lastOffset int
	listed     chan struct{}
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{rows: map[string]*jobRow{}}
}

func (f *fakeJobs) List(ctx context.Context, userID string, limit, offset int) (*services.Page[models.Job], error) {
	if f.listed != nil {
		defer close(f.listed)
	}
	if f.panicList {
		panic("list exploded")
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.lastLimit, f.lastOffset = limit, offset

	var items []models.Job
	for _, r := range f.rows {
		if r.owner == userID {
			items = append(items, r.job)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	total := len(items)
	if offset >= len(items) {
		items = nil
	} else {
		items = items[offset:min(len(items), offset+limit)]
	}
	return &services.Page[models.Job]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

func (f *fakeJobs) Get(ctx context.Context, userID, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.rows[id]
	if !ok || r.owner != userID {
		return nil, common.ErrorNotFound
	}
	j := r.job
	return &j, nil
}

func (f *fakeJobs) Create(ctx context.Context, userID string, job *models.Job) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	j := *job
	j.ID = uuid.NewString()
	j.CreatedAt = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	j.UpdatedAt = j.CreatedAt
	f.rows[j.ID] = &jobRow{owner: userID, job: j}
	return &j, nil
}

func (f *fakeJobs) Update(ctx context.Context, userID, id string, p models.JobPatch) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if p == (models.JobPatch{}) {
		return nil, common.ErrorNoFields
	}
	r, ok := f.rows[id]
	if !ok || r.owner != userID {
		return nil, common.ErrorNotFound
	}
	if p.Company != nil {
		r.job.Company = *p.Company
	}
	if p.Role != nil {
		r.job.Role = *p.Role
	}
	if p.Status != nil {
		r.job.Status = p.Status
	}
	if p.AppliedDate != nil {
		r.job.AppliedDate = p.AppliedDate
	}
	if p.Notes != nil {
		r.job.Notes = p.Notes
	}
	r.job.UpdatedAt = r.job.UpdatedAt.Add(time.Hour)
	j := r.job
	return &j, nil
}

func (f *fakeJobs) Delete(ctx context.Context, userID, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	r, ok := f.rows[id]
	if !ok || r.owner != userID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

// ---- recruiters and firms ----

type fakeRecruiters struct {
	created *models.Recruiter
	err     error
}

func (f *fakeRecruiters) List(ctx context.Context, userID string, limit, offset int) (*services.Page[models.Recruiter], error) {
	return &services.Page[models.Recruiter]{Limit: limit, Offset: offset}, f.err
}

func (f *fakeRecruiters) Get(ctx context.Context, userID, id string) (*models.Recruiter, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeRecruiters) Create(ctx context.Context, userID string, r *models.Recruiter) (*models.Recruiter, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = r
	cp := *r
	cp.ID = uuid.NewString()
	return &cp, nil
}

func (f *fakeRecruiters) Update(ctx context.Context, userID, id string, p models.RecruiterPatch) (*models.Recruiter, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Recruiter{ID: id, Name: "x"}, nil
}

func (f *fakeRecruiters) Delete(ctx context.Context, userID, id string) (bool, error) {
	return false, f.err
}

type fakeFirms struct {
	items []models.RecruitingFirm
	err   error
}

func (f *fakeFirms) List(ctx context.Context, userID string, limit, offset int) (*services.Page[models.RecruitingFirm], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.Page[models.RecruitingFirm]{Items: f.items, Total: len(f.items), Limit: limit, Offset: offset}, nil
}

func (f *fakeFirms) Get(ctx context.Context, userID, id string) (*models.RecruitingFirm, error) {
	for _, it := range f.items {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeFirms) Create(ctx context.Context, userID string, r *models.RecruitingFirm) (*models.RecruitingFirm, error) {
	cp := *r
	cp.ID = uuid.NewString()
	return &cp, f.err
}

func (f *fakeFirms) Update(ctx context.Context, userID, id string, p models.RecruitingFirmPatch) (*models.RecruitingFirm, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeFirms) Delete(ctx context.Context, userID, id string) (bool, error) {
	return true, f.err
}

type fakeHealth struct{ err error }

func (f *fakeHealth) Check(context.Context) error { return f.err }

// ---- harness ----

type testEnv struct {
	srv        *HTTPServer
	h          http.Handler
	cfg        *config.Config
	auth       *fakeAuth
	jobs       *fakeJobs
	recruiters *fakeRecruiters
	firms      *fakeFirms
	health     *fakeHealth
	now        time.Time
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseURL = "postgres://localhost/test"
	cfg.Env = config.EnvTest
	for _, o := range opts {
		o(cfg)
	}

	e := &testEnv{
		cfg:        cfg,
		auth:       newFakeAuth(),
		jobs:       newFakeJobs(),
		recruiters: &fakeRecruiters{},
		firms:      &fakeFirms{},
		health:     &fakeHealth{},
		now:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	e.srv = NewHTTPServer(cfg, logging.Nop(), Services{
		Auth:            e.auth,
		Jobs:            e.jobs,
		Recruiters:      e.recruiters,
		RecruitingFirms: e.firms,
		Health:          e.health,
	})
	e.srv.now = func() time.Time { return e.now }
	e.h = e.srv.Handler()
	return e
}

type reqOpt func(*http.Request)

func withCookie(token string) reqOpt {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})
	}
}

func withoutCSRF() reqOpt {
	return func(r *http.Request) { r.Header.Del("X-Requested-With") }
}

func withHeader(k, v string) reqOpt {
	return func(r *http.Request) { r.Header.Set(k, v) }
}

func (e *testEnv) do(method, path, body string, opts ...reqOpt) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && method != http.MethodHead {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	for _, o := range opts {
		o(req)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

// login creates a user with a live session and returns its token.
func (e *testEnv) login(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	res, err := e.auth.Register(context.Background(), email, "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return res.User, res.Token
}
