package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"podcatalog/internal/models"
	"podcatalog/pkg/cache"
)

const (
	productListKey       = "products:all"
	productGenerationKey = "products:gen"
)

// CachedProductRepository serves GetAll from a cache. Cached lists are keyed
// by a generation counter that every successful create bumps, so a list read
// before a create can never be served after it. Cache failures fall through
// to the wrapped repository.
type CachedProductRepository struct {
	inner ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProductRepository wraps inner with c.
func NewCachedProductRepository(inner ProductRepository, c cache.Cache, ttl time.Duration) *CachedProductRepository {
	return &CachedProductRepository{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// GetAll returns the cached product list or loads and caches it.
func (r *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		log.Printf("Product list cache generation read failed: %v", err)
		return r.inner.GetAll(ctx)
	}
	key := listKey(gen)

	if raw, ok, err := r.cache.Get(ctx, key); err != nil {
		log.Printf("Product list cache read failed: %v", err)
	} else if ok {
		var products []models.Product
		if err := json.Unmarshal(raw, &products); err == nil {
			return products, nil
		}
		log.Printf("Discarding undecodable product list cache entry")
	}

	products, err := r.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// Written under the generation read before loading. If a create landed in
	// between, this entry is already unreachable.
	if raw, err := json.Marshal(products); err == nil {
		if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
			log.Printf("Product list cache write failed: %v", err)
		}
	}
	return products, nil
}

func (r *CachedProductRepository) generation(ctx context.Context) (int64, error) {
	raw, ok, err := r.cache.Get(ctx, productGenerationKey)
	if err != nil || !ok {
		return 0, err
	}
	gen, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", productGenerationKey, err)
	}
	return gen, nil
}

func listKey(gen int64) string {
	return productListKey + ":" + strconv.FormatInt(gen, 10)
}

// GetByID is not cached.
func (r *CachedProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return r.inner.GetByID(ctx, id)
}

// Create persists through the wrapped repository and moves the list to a
// new generation.
func (r *CachedProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	created, err := r.inner.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	if _, err := r.cache.Incr(ctx, productGenerationKey); err != nil {
		log.Printf("Product list cache invalidation failed: %v", err)
	}
	return created, nil
}

// Stats is not cached.
func (r *CachedProductRepository) Stats(ctx context.Context) (*models.CatalogStats, error) {
	return r.inner.Stats(ctx)
}
