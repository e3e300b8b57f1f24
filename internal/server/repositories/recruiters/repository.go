// Package recruiters persists recruiter contacts, scoped per user.
package recruiters

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type Repository interface {
	// Create yields common.ErrorReferenceNotFound when firm_id points nowhere.
	Create(ctx context.Context, userID string, r *models.Recruiter) (*models.Recruiter, error)
	Count(ctx context.Context, userID string) (int, error)
	List(ctx context.Context, userID string, limit, offset int) ([]models.Recruiter, error)
	GetByID(ctx context.Context, userID, id string) (*models.Recruiter, error)
	Update(ctx context.Context, userID, id string, patch models.RecruiterPatch) (*models.Recruiter, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
