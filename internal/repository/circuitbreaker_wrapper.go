// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/guttosm/pizza-cart/internal/circuitbreaker"
	"github.com/guttosm/pizza-cart/internal/domain/model"
)

// CatalogRepositoryWithCircuitBreaker wraps a catalog repository with circuit breaker protection.
type CatalogRepositoryWithCircuitBreaker struct {
	repo           CatalogRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Catalog loads the catalog with circuit breaker protection.
// An open circuit surfaces as circuitbreaker.ErrCircuitOpen so the catalog cache can serve its last snapshot.
func (r *CatalogRepositoryWithCircuitBreaker) Catalog(ctx context.Context) (*model.Catalog, error) {
	var result *model.Catalog
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Catalog(ctx)
		return cbErr
	})
	return result, err
}

// SeedIfEmpty seeds the catalog with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) SeedIfEmpty(ctx context.Context, cat *model.Catalog) (bool, error) {
	var seeded bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		seeded, cbErr = r.repo.SeedIfEmpty(ctx, cat)
		return cbErr
	})
	return seeded, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
