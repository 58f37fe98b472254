package repositories

import (
	"context"

	"productapi/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create yields ErrConstraintViolation when the email is already registered.
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
