package dto

// CreateProductRequest is the body of POST /api/products.
//
// ManufactureEmail is accepted for compatibility but never trusted: the product owner is
// always the authenticated caller.
type CreateProductRequest struct {
	Name             string `json:"name" validate:"required,min=3,max=50"`
	ProduceDate      Date   `json:"produceDate" validate:"required"`
	ManufacturePhone string `json:"manufacturePhone" validate:"required,len=10,number"`
	ManufactureEmail string `json:"manufactureEmail,omitempty" validate:"omitempty,email"`
	IsAvailable      *bool  `json:"isAvailable" validate:"required"`
}

// UpdateProductRequest is the body of PUT /api/products/:id. It carries no identity or owner
// field.
type UpdateProductRequest struct {
	Name             string `json:"name" validate:"required,min=3,max=50"`
	ProduceDate      Date   `json:"produceDate" validate:"required"`
	ManufacturePhone string `json:"manufacturePhone" validate:"required,len=10,number"`
	IsAvailable      *bool  `json:"isAvailable" validate:"required"`
}

// ProductResponse is the output shape of every product endpoint.
type ProductResponse struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	ProduceDate      Date   `json:"produceDate"`
	ManufacturePhone string `json:"manufacturePhone"`
	ManufactureEmail string `json:"manufactureEmail"`
	IsAvailable      bool   `json:"isAvailable"`
}
