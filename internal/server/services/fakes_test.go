package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/recruiters"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/recruitingfirms"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

type fakeUsersRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*models.User
	createErr error
	findErr   error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, email, hash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u := &models.User{ID: "u-" + email, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	f.byEmail[email] = u
	return &models.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			cp.PasswordHash = ""
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeSessionsRepo struct {
	mu        sync.Mutex
	rows      map[string]models.Session
	users     *fakeUsersRepo
	createErr error
	now       func() time.Time
}

func newFakeSessionsRepo(u *fakeUsersRepo) *fakeSessionsRepo {
	return &fakeSessionsRepo{rows: map[string]models.Session{}, users: u, now: time.Now}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, id, userID string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[id] = models.Session{ID: id, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeSessionsRepo) FindUser(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	s, ok := f.rows[id]
	f.mu.Unlock()
	if !ok || !s.ExpiresAt.After(f.now()) {
		return nil, common.ErrorNotFound
	}
	return f.users.FindByID(ctx, s.UserID)
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

func (f *fakeSessionsRepo) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.rows {
		if s.UserID == userID {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

type fakeJobsRepo struct {
	jobs.Repository
	items    []models.Job
	total    int
	listErr  error
	countErr error
}

func (f *fakeJobsRepo) List(ctx context.Context, userID string, limit, offset int) ([]models.Job, error) {
	return f.items, f.listErr
}

func (f *fakeJobsRepo) Count(ctx context.Context, userID string) (int, error) {
	return f.total, f.countErr
}

type fakeFirmsRepo struct {
	recruitingfirms.Repository
	owned map[string]string // firm id -> owner
}

func (f *fakeFirmsRepo) GetByID(ctx context.Context, userID, id string) (*models.RecruitingFirm, error) {
	if owner, ok := f.owned[id]; ok && owner == userID {
		return &models.RecruitingFirm{ID: id}, nil
	}
	return nil, common.ErrorNotFound
}

type fakeRecruitersRepo struct {
	recruiters.Repository
	created *models.Recruiter
	updated *models.RecruiterPatch
}

func (f *fakeRecruitersRepo) Create(ctx context.Context, userID string, r *models.Recruiter) (*models.Recruiter, error) {
	f.created = r
	cp := *r
	cp.ID = "r-1"
	return &cp, nil
}

func (f *fakeRecruitersRepo) Update(ctx context.Context, userID, id string, p models.RecruiterPatch) (*models.Recruiter, error) {
	f.updated = &p
	return &models.Recruiter{ID: id}, nil
}

type fakeRepoManager struct {
	users      *fakeUsersRepo
	sessions   *fakeSessionsRepo
	jobs       jobs.Repository
	firms      recruitingfirms.Repository
	recruiters recruiters.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                     { return m.users }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository               { return m.sessions }
func (m *fakeRepoManager) Jobs(dbx.DBTX) jobs.Repository                       { return m.jobs }
func (m *fakeRepoManager) Recruiters(dbx.DBTX) recruiters.Repository           { return m.recruiters }
func (m *fakeRepoManager) RecruitingFirms(dbx.DBTX) recruitingfirms.Repository { return m.firms }
