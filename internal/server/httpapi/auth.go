// Package httpapi defines the JSON bodies exchanged over the REST API and
// their conversion to and from the domain models.
package httpapi

import (
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/server/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Invalid email"`
	Password string `json:"password" validate:"min=8" msg:"Password must be at least 8 characters"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Invalid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

// UserResponse is the public projection of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
}

func NewAuthResponse(u *models.User) AuthResponse {
	return AuthResponse{User: UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}}
}
