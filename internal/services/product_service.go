package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"productapi/internal/authz"
	"productapi/internal/dto"
	"productapi/internal/events"
	"productapi/internal/mapper"
	"productapi/internal/metrics"
	"productapi/internal/models"
	"productapi/internal/repositories"
)

// Authorizer decides whether principal may perform action on a resource owned by owner.
type Authorizer interface {
	Authorize(principal, owner, action string) error
}

// ProductService handles business logic related to products. Writes are single read-then-act
// sequences without row versioning; concurrent updates resolve as last write wins.
type ProductService struct {
	repo      repositories.ProductRepository
	authz     Authorizer
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher and m may be nil.
func NewProductService(repo repositories.ProductRepository, az Authorizer, publisher events.Publisher, m *metrics.Metrics, log *zap.Logger) *ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ProductService{
		repo:      repo,
		authz:     az,
		publisher: publisher,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	s.record("product.list", err)
	return products, err
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	s.record("product.get", err)
	return product, err
}

// CreateProduct stores a new product owned by ownerEmail, whatever the request says.
func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, ownerEmail string) (*models.Product, error) {
	if ownerEmail == "" {
		return nil, ErrMissingIdentity
	}

	product := mapper.FromCreateRequest(req)
	product.ManufactureEmail = ownerEmail

	if err := s.repo.Create(ctx, product); err != nil {
		s.record("product.create", err)
		return nil, err
	}
	s.record("product.create", nil)

	s.log.Info("product created", zap.Int("product_id", product.ID), zap.String("owner", ownerEmail))
	s.publish(ctx, events.ProductCreated, product)
	return product, nil
}

// GetForModification loads a product and checks that principal owns it. It returns
// ErrProductNotFound or ErrForbidden otherwise.
func (s *ProductService) GetForModification(ctx context.Context, id int, principal, action string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.record(action, err)
		return nil, err
	}
	if err := s.authz.Authorize(principal, product.Owner(), action); err != nil {
		s.record(action, err)
		if errors.Is(err, authz.ErrForbidden) {
			s.log.Warn("ownership check failed",
				zap.Int("product_id", id),
				zap.String("principal", principal),
				zap.String("action", action),
			)
		}
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies req to a product previously returned by GetForModification. The
// product keeps its ID and owner.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product, req dto.UpdateProductRequest) error {
	owner := product.ManufactureEmail
	mapper.ApplyUpdateRequest(req, product)
	product.ManufactureEmail = owner

	err := s.repo.Update(ctx, product)
	s.record(authz.ActionUpdate, err)
	if err != nil {
		return err
	}

	s.log.Info("product updated", zap.Int("product_id", product.ID))
	s.publish(ctx, events.ProductUpdated, product)
	return nil
}

// DeleteProduct removes the product when principal owns it.
func (s *ProductService) DeleteProduct(ctx context.Context, id int, principal string) error {
	product, err := s.GetForModification(ctx, id, principal, authz.ActionDelete)
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, id)
	s.record(authz.ActionDelete, err)
	if err != nil {
		return err
	}

	s.log.Info("product deleted", zap.Int("product_id", id))
	s.publish(ctx, events.ProductDeleted, product)
	return nil
}

// publish never fails the request: the write has already committed.
func (s *ProductService) publish(ctx context.Context, typ events.Type, product *models.Product) {
	event := events.ProductEvent{
		Type:       typ,
		ProductID:  product.ID,
		Owner:      product.ManufactureEmail,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish product event",
			zap.String("type", string(typ)),
			zap.Int("product_id", product.ID),
			zap.Error(err),
		)
	}
}

func (s *ProductService) record(operation string, err error) {
	s.metrics.ProductOperation(operation, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrProductNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, ErrConstraintViolation):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
