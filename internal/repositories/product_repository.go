package repositories

import (
	"context"

	"productapi/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product in insertion order.
	GetAll(ctx context.Context) ([]models.Product, error)
	// GetByID returns ErrProductNotFound when the ID is absent.
	GetByID(ctx context.Context, id int) (*models.Product, error)
	// Create assigns product.ID. Duplicate produce dates or manufacturer emails yield
	// ErrConstraintViolation.
	Create(ctx context.Context, product *models.Product) error
	// Update persists every field of an existing product.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int64, error)
}
