package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
)

type RecruitingFirmService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecruitingFirmService(db *sql.DB, m repomanager.RepositoryManager) *RecruitingFirmService {
	return &RecruitingFirmService{db: db, repomanager: m}
}

func (s *RecruitingFirmService) List(ctx context.Context, userID string, limit, offset int) (*Page[models.RecruitingFirm], error) {
	repo := s.repomanager.RecruitingFirms(s.db)
	page, err := fetchPage(ctx, limit, offset,
		func(ctx context.Context) ([]models.RecruitingFirm, error) { return repo.List(ctx, userID, limit, offset) },
		func(ctx context.Context) (int, error) { return repo.Count(ctx, userID) },
	)
	if err != nil {
		return nil, fmt.Errorf("error listing recruiting firms: %w", err)
	}
	return page, nil
}

func (s *RecruitingFirmService) Get(ctx context.Context, userID, id string) (*models.RecruitingFirm, error) {
	return s.repomanager.RecruitingFirms(s.db).GetByID(ctx, userID, id)
}

func (s *RecruitingFirmService) Create(ctx context.Context, userID string, f *models.RecruitingFirm) (*models.RecruitingFirm, error) {
	return s.repomanager.RecruitingFirms(s.db).Create(ctx, userID, f)
}

func (s *RecruitingFirmService) Update(ctx context.Context, userID, id string, patch models.RecruitingFirmPatch) (*models.RecruitingFirm, error) {
	return s.repomanager.RecruitingFirms(s.db).Update(ctx, userID, id, patch)
}

func (s *RecruitingFirmService) Delete(ctx context.Context, userID, id string) (bool, error) {
	return s.repomanager.RecruitingFirms(s.db).Delete(ctx, userID, id)
}
