package services

import (
	"context"
	"errors"
	"log"

	"podcatalog/internal/models"
	"podcatalog/internal/repositories"
	"podcatalog/internal/validation"

	"github.com/gosimple/slug"
)

// EventPublisher publishes catalog events. *rabbitmq.Client implements it.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts retrieves all products with their variants.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Stats returns the dashboard aggregates.
func (s *ProductService) Stats(ctx context.Context) (*models.CatalogStats, error) {
	return s.repo.Stats(ctx)
}

// CreateProduct validates the payload, persists the product with its
// variants and announces it. A rejected payload never reaches the repository.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := validation.ValidateProduct(in); err != nil {
		productCreateRejections.WithLabelValues("validation").Inc()
		return nil, err
	}

	created, err := s.repo.Create(ctx, newProduct(in))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateSyncID) {
			productCreateRejections.WithLabelValues("duplicate_sync_id").Inc()
		} else {
			productCreateRejections.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	productsCreated.WithLabelValues(string(created.Category)).Inc()

	s.publishCreated(created)
	return created, nil
}

// publishCreated is best effort: the product is already stored.
func (s *ProductService) publishCreated(p *models.Product) {
	if s.publisher == nil {
		return
	}
	evt := models.NewProductCreatedEvent(p)
	if err := s.publisher.PublishJSON(evt.Event, evt); err != nil {
		log.Printf("Warning: Failed to publish product created event for product %s: %v", p.ID, err)
	}
}

// newProduct maps a validated payload onto the storage model. Size and color
// are dropped for single-variant categories.
func newProduct(in models.ProductInput) *models.Product {
	category := models.Category(in.Category)
	product := &models.Product{
		Name:           in.Name,
		Slug:           slug.Make(in.Name),
		Description:    in.Description,
		Category:       category,
		Price:          *in.Price,
		Images:         append([]string(nil), in.Images...),
		PrintfulSyncID: in.PrintfulSyncID.Int64(),
		Variants:       make([]models.ProductVariant, 0, len(in.Variants)),
	}
	for _, v := range in.Variants {
		variant := models.ProductVariant{
			PrintfulVariantID: *v.PrintfulVariantID,
			Price:             *v.Price,
		}
		if !category.IsSingleVariant() {
			variant.Size = nonEmpty(v.Size)
			variant.Color = nonEmpty(v.Color)
		}
		product.Variants = append(product.Variants, variant)
	}
	return product
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
