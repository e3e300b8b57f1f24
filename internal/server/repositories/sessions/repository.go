// Package sessions persists login sessions. Rows are keyed by the hash of
// the bearer token; the raw token never reaches this layer.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, id, userID string, expiresAt time.Time) error
	// FindUser resolves a non-expired session to its user in one query.
	FindUser(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}
