package repositories

import (
	"context"
	"errors"

	"inventory/internal/models"
)

var (
	// ErrProductNotFound is returned when no row matches the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrNoRowsAffected is returned when a write statement changed nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, changes models.ProductChanges) error
	Delete(ctx context.Context, id uint) error
	// Transaction runs fn against a repository bound to a single
	// transaction. A non-nil error from fn rolls the transaction back.
	Transaction(ctx context.Context, fn func(repo ProductRepository) error) error
	Ping(ctx context.Context) error
}
