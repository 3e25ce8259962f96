// Package users declares the credential-store contract for user identity
// records and its Postgres implementation.
package users

import (
	"context"

	"github.com/prathm201999/auth-service/internal/server/models"
)

// Repository defines operations on stored user records.
type Repository interface {
	// Create inserts a new user. It returns common.ErrConflict when the
	// email is already registered; the unique index on email is the real
	// enforcement point for concurrent signups.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks up a user by exact email match. It returns
	// common.ErrNotFound when the user is absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
