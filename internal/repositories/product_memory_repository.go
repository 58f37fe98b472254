package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"productapi/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository. It enforces
// the same unique constraints as the database schema.
type MemoryProductRepository struct {
	products map[int]models.Product
	nextID   int
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products ordered by ID.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// GetByID returns a copy of the product with the given ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(product, 0); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrProductNotFound)
	}
	if err := r.checkUnique(product, product.ID); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return nil
}

// Count returns the number of stored products.
func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// checkUnique must be called with the write lock held. skipID excludes the product being
// updated.
func (r *MemoryProductRepository) checkUnique(product *models.Product, skipID int) error {
	for id, existing := range r.products {
		if id == skipID {
			continue
		}
		if existing.ProduceDate.Equal(product.ProduceDate) {
			return fmt.Errorf("%w: produce date %s already in use", ErrConstraintViolation, product.ProduceDate.Format("2006-01-02"))
		}
		if existing.ManufactureEmail == product.ManufactureEmail {
			return fmt.Errorf("%w: manufacturer email %s already in use", ErrConstraintViolation, product.ManufactureEmail)
		}
	}
	return nil
}
