package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"productapi/internal/models"
	"productapi/internal/repositories"
)

// SeedProducts inserts sample products when the store is empty.
func SeedProducts(ctx context.Context, repo repositories.ProductRepository, log *zap.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:             "Product 1",
			ProduceDate:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			ManufacturePhone: "1234567890",
			ManufactureEmail: "manufacturer1@example.com",
			IsAvailable:      true,
		},
		{
			Name:             "Product 2",
			ProduceDate:      time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
			ManufacturePhone: "0987654321",
			ManufactureEmail: "manufacturer2@example.com",
			IsAvailable:      false,
		},
	}

	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
		log.Info("seeded product", zap.String("name", products[i].Name), zap.Int("product_id", products[i].ID))
	}
	return nil
}
