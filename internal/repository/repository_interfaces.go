// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/guttosm/pizza-cart/internal/domain/model"
)

// CatalogRepositoryInterface defines the interface for catalog repository operations.
type CatalogRepositoryInterface interface {
	Catalog(ctx context.Context) (*model.Catalog, error)
	SeedIfEmpty(ctx context.Context, cat *model.Catalog) (bool, error)
}

// OrderRepositoryInterface defines the interface for order repository operations.
type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, payload model.OrderPayload) (*model.OrderResult, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, userID string, limit int) ([]model.Order, error)
}

var (
	_ CatalogRepositoryInterface = (*CatalogRepository)(nil)
	_ CatalogRepositoryInterface = (*CatalogRepositoryWithCircuitBreaker)(nil)
	_ OrderRepositoryInterface   = (*OrderRepository)(nil)
)
