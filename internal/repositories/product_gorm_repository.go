package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"podcatalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DuplicateSyncIDError is the domain error for a printful sync id that is
// already taken. It matches ErrDuplicateSyncID with errors.Is.
type DuplicateSyncIDError struct {
	SyncID int64
}

func (e *DuplicateSyncIDError) Error() string {
	return fmt.Sprintf("A product with printful sync ID %d already exists", e.SyncID)
}

func (e *DuplicateSyncIDError) Is(target error) bool {
	return target == ErrDuplicateSyncID
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func variantsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// GetAll retrieves all products with their variants.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).
		Preload("Variants", variantsByPosition).
		Order("created_at ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its variants.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", variantsByPosition).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts the product and its variants, then re-reads it with the
// variants attached. Both steps share one transaction.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	assignIDs(product)

	var created models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return tx.Preload("Variants", variantsByPosition).First(&created, "id = ?", product.ID).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateSyncIDError{SyncID: product.PrintfulSyncID}
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

// Stats aggregates the dashboard numbers.
func (r *GORMProductRepository) Stats(ctx context.Context) (*models.CatalogStats, error) {
	db := r.db.WithContext(ctx)
	stats := &models.CatalogStats{PerCategory: make(map[models.Category]int64)}

	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := db.Model(&models.ProductVariant{}).Count(&stats.TotalVariants).Error; err != nil {
		return nil, fmt.Errorf("failed to count variants: %w", err)
	}
	if err := db.Model(&models.Product{}).Select("COALESCE(AVG(price), 0)").Scan(&stats.AveragePrice).Error; err != nil {
		return nil, fmt.Errorf("failed to average prices: %w", err)
	}

	var rows []struct {
		Category models.Category
		Total    int64
	}
	err := db.Model(&models.Product{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group products by category: %w", err)
	}
	for _, row := range rows {
		stats.PerCategory[row.Category] = row.Total
	}
	stats.Categories = len(stats.PerCategory)
	return stats, nil
}

// assignIDs fills in missing ids and records variant order.
func assignIDs(product *models.Product) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Variants {
		if product.Variants[i].ID == "" {
			product.Variants[i].ID = uuid.New().String()
		}
		product.Variants[i].ProductID = product.ID
		product.Variants[i].Position = i
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
