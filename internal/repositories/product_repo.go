package repositories

import (
	"context"
	"errors"

	"podcatalog/internal/models"
)

var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateSyncID is returned when the storage layer rejects a second
	// product with an existing printful sync id.
	ErrDuplicateSyncID = errors.New("duplicate printful sync id")
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Create persists the product together with its variants and returns the
	// stored product re-read with its variants attached.
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Stats(ctx context.Context) (*models.CatalogStats, error)
}
