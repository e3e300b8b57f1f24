// Package recruitingfirms persists recruiting agencies, scoped per user.
// Deleting a firm leaves its recruiters in place with firm_id set to NULL.
package recruitingfirms

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, f *models.RecruitingFirm) (*models.RecruitingFirm, error)
	Count(ctx context.Context, userID string) (int, error)
	List(ctx context.Context, userID string, limit, offset int) ([]models.RecruitingFirm, error)
	GetByID(ctx context.Context, userID, id string) (*models.RecruitingFirm, error)
	Update(ctx context.Context, userID, id string, patch models.RecruitingFirmPatch) (*models.RecruitingFirm, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
