package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
)

// JobService manages a user's job applications.
type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewJobService(db *sql.DB, m repomanager.RepositoryManager) *JobService {
	return &JobService{db: db, repomanager: m}
}

func (s *JobService) List(ctx context.Context, userID string, limit, offset int) (*Page[models.Job], error) {
	repo := s.repomanager.Jobs(s.db)
	page, err := fetchPage(ctx, limit, offset,
		func(ctx context.Context) ([]models.Job, error) { return repo.List(ctx, userID, limit, offset) },
		func(ctx context.Context) (int, error) { return repo.Count(ctx, userID) },
	)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	return page, nil
}

func (s *JobService) Get(ctx context.Context, userID, id string) (*models.Job, error) {
	return s.repomanager.Jobs(s.db).GetByID(ctx, userID, id)
}

func (s *JobService) Create(ctx context.Context, userID string, job *models.Job) (*models.Job, error) {
	return s.repomanager.Jobs(s.db).Create(ctx, userID, job)
}

func (s *JobService) Update(ctx context.Context, userID, id string, patch models.JobPatch) (*models.Job, error) {
	return s.repomanager.Jobs(s.db).Update(ctx, userID, id, patch)
}

func (s *JobService) Delete(ctx context.Context, userID, id string) (bool, error) {
	return s.repomanager.Jobs(s.db).Delete(ctx, userID, id)
}
