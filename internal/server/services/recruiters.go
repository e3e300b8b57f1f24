package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/dbx"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/dmitrijs2005/jobtracker/internal/server/repositories/repomanager"
)

// RecruiterService manages recruiter contacts. A firm_id must name a firm
// owned by the same user; the foreign key alone would accept another
// user's firm.
type RecruiterService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecruiterService(db *sql.DB, m repomanager.RepositoryManager) *RecruiterService {
	return &RecruiterService{db: db, repomanager: m}
}

func (s *RecruiterService) List(ctx context.Context, userID string, limit, offset int) (*Page[models.Recruiter], error) {
	repo := s.repomanager.Recruiters(s.db)
	page, err := fetchPage(ctx, limit, offset,
		func(ctx context.Context) ([]models.Recruiter, error) { return repo.List(ctx, userID, limit, offset) },
		func(ctx context.Context) (int, error) { return repo.Count(ctx, userID) },
	)
	if err != nil {
		return nil, fmt.Errorf("error listing recruiters: %w", err)
	}
	return page, nil
}

func (s *RecruiterService) Get(ctx context.Context, userID, id string) (*models.Recruiter, error) {
	return s.repomanager.Recruiters(s.db).GetByID(ctx, userID, id)
}

func (s *RecruiterService) checkFirm(ctx context.Context, tx dbx.DBTX, userID string, firmID *string) error {
	if firmID == nil {
		return nil
	}
	_, err := s.repomanager.RecruitingFirms(tx).GetByID(ctx, userID, *firmID)
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorReferenceNotFound
	}
	return err
}

func (s *RecruiterService) Create(ctx context.Context, userID string, r *models.Recruiter) (*models.Recruiter, error) {
	var created *models.Recruiter
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkFirm(ctx, tx, userID, r.FirmID); err != nil {
			return err
		}
		var err error
		created, err = s.repomanager.Recruiters(tx).Create(ctx, userID, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *RecruiterService) Update(ctx context.Context, userID, id string, patch models.RecruiterPatch) (*models.Recruiter, error) {
	var updated *models.Recruiter
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkFirm(ctx, tx, userID, patch.FirmID); err != nil {
			return err
		}
		var err error
		updated, err = s.repomanager.Recruiters(tx).Update(ctx, userID, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *RecruiterService) Delete(ctx context.Context, userID, id string) (bool, error) {
	return s.repomanager.Recruiters(s.db).Delete(ctx, userID, id)
}
