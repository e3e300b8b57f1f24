// Package jobs persists job applications. Every statement is scoped by the
// owning user id, so a row owned by someone else behaves as absent.
package jobs

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, job *models.Job) (*models.Job, error)
	Count(ctx context.Context, userID string) (int, error)
	List(ctx context.Context, userID string, limit, offset int) ([]models.Job, error)
	GetByID(ctx context.Context, userID, id string) (*models.Job, error)
	// Update returns common.ErrorNoFields without touching the database when
	// the patch is empty.
	Update(ctx context.Context, userID, id string, patch models.JobPatch) (*models.Job, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
