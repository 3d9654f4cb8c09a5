package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"podcatalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It enforces the same printful sync id uniqueness as the database schema.
type MockProductRepository struct {
	products map[string]models.Product
	syncIDs  map[int64]string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
		syncIDs:  make(map[int64]string),
	}
}

// GetAll returns all products, oldest first.
func (r *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, cloneProduct(p))
	}
	sort.SliceStable(productList, func(i, j int) bool {
		return productList[i].CreatedAt.Before(productList[j].CreatedAt)
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
	}
	p := cloneProduct(product)
	return &p, nil
}

// Create adds a new product with its variants.
func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.syncIDs[product.PrintfulSyncID]; taken {
		return nil, &DuplicateSyncIDError{SyncID: product.PrintfulSyncID}
	}

	assignIDs(product)
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	for i := range product.Variants {
		product.Variants[i].CreatedAt = now
		product.Variants[i].UpdatedAt = now
	}

	stored := cloneProduct(*product)
	r.products[stored.ID] = stored
	r.syncIDs[stored.PrintfulSyncID] = stored.ID

	created := cloneProduct(stored)
	return &created, nil
}

// Stats aggregates the dashboard numbers.
func (r *MockProductRepository) Stats(ctx context.Context) (*models.CatalogStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.CatalogStats{PerCategory: make(map[models.Category]int64)}
	var sum float64
	for _, p := range r.products {
		stats.TotalProducts++
		stats.TotalVariants += int64(len(p.Variants))
		stats.PerCategory[p.Category]++
		sum += p.Price
	}
	if stats.TotalProducts > 0 {
		stats.AveragePrice = sum / float64(stats.TotalProducts)
	}
	stats.Categories = len(stats.PerCategory)
	return stats, nil
}

// cloneProduct copies the slices so callers cannot mutate stored state.
func cloneProduct(p models.Product) models.Product {
	images := make([]string, len(p.Images))
	copy(images, p.Images)
	variants := make([]models.ProductVariant, len(p.Variants))
	copy(variants, p.Variants)
	p.Images = images
	p.Variants = variants
	return p
}
