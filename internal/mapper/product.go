// Package mapper converts between persisted entities and transport DTOs. It holds no
// validation and no side effects.
package mapper

import (
	"productapi/internal/dto"
	"productapi/internal/models"
)

// ToProductResponse copies every entity field onto the output DTO. ProduceDate is stored as
// UTC midnight, so it is read back in UTC whatever location the driver returned it in.
func ToProductResponse(p *models.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		ProduceDate:      dto.NewDate(p.ProduceDate.UTC()),
		ManufacturePhone: p.ManufacturePhone,
		ManufactureEmail: p.ManufactureEmail,
		IsAvailable:      p.IsAvailable,
	}
}

// ToProductResponses maps a list in order.
func ToProductResponses(products []models.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}

// FromCreateRequest builds a new entity. ID is left zero for the store to assign; the caller
// is expected to overwrite ManufactureEmail with the owner's identity.
func FromCreateRequest(req dto.CreateProductRequest) *models.Product {
	return &models.Product{
		Name:             req.Name,
		ProduceDate:      req.ProduceDate.Time(),
		ManufacturePhone: req.ManufacturePhone,
		ManufactureEmail: req.ManufactureEmail,
		IsAvailable:      deref(req.IsAvailable),
	}
}

// ApplyUpdateRequest copies the update fields onto an existing entity in place. ID and
// ManufactureEmail are untouched.
func ApplyUpdateRequest(req dto.UpdateProductRequest, p *models.Product) {
	p.Name = req.Name
	p.ProduceDate = req.ProduceDate.Time()
	p.ManufacturePhone = req.ManufacturePhone
	p.IsAvailable = deref(req.IsAvailable)
}

func deref(b *bool) bool {
	return b != nil && *b
}
