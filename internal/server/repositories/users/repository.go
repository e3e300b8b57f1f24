// Package users persists accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type Repository interface {
	// Create inserts a user and returns it without the password hash.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	// FindByEmail includes the password hash.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}
