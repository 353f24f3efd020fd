package models

// CreateProductRequest is the body of POST /products/create.
type CreateProductRequest struct {
	Name        Field `json:"name" validate:"required"`
	Description Field `json:"description" validate:"required"`
	Category    Field `json:"category" validate:"required"`
	Quantity    Field `json:"quantity" validate:"required"`
	Price       Field `json:"price" validate:"required"`
}

// UpdateProductRequest is the body of /products/update. Only ID is required.
type UpdateProductRequest struct {
	ID          Field `json:"id"`
	Name        Field `json:"name"`
	Description Field `json:"description"`
	Category    Field `json:"category"`
	Quantity    Field `json:"quantity"`
	Price       Field `json:"price"`
}

// DeleteProductRequest is the body of /products/delete.
type DeleteProductRequest struct {
	ID Field `json:"id"`
}
