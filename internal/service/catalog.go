// Package service contains the business logic for the pizza cart service.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/metrics"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// CatalogSource loads the full catalog from its backing store.
type CatalogSource interface {
	Catalog(ctx context.Context) (*model.Catalog, error)
}

// CatalogService serves catalog snapshots to the carts.
type CatalogService interface {
	Catalog(ctx context.Context) (*model.Catalog, error)
	// Refresh drops the cached snapshot and reloads it from the source.
	Refresh(ctx context.Context) (*model.Catalog, error)
}

// StaticCatalog serves a fixed catalog held in memory.
type StaticCatalog struct {
	catalog *model.Catalog
}

// NewStaticCatalog creates a provider for a fixed catalog. A nil catalog serves DefaultCatalog.
func NewStaticCatalog(catalog *model.Catalog) *StaticCatalog {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &StaticCatalog{catalog: catalog}
}

// Catalog returns the fixed catalog.
func (s *StaticCatalog) Catalog(_ context.Context) (*model.Catalog, error) {
	return s.catalog, nil
}

// catalogSnapshot provides thread-safe caching of the latest catalog.
type catalogSnapshot struct {
	catalog   atomic.Value // holds *model.Catalog
	expiresAt atomic.Value // holds time.Time
	mu        sync.Mutex
	ttl       time.Duration
}

func newCatalogSnapshot(ttl time.Duration) *catalogSnapshot {
	c := &catalogSnapshot{ttl: ttl}
	c.expiresAt.Store(time.Time{})
	return c
}

// get returns the cached catalog and whether it is still fresh.
func (c *catalogSnapshot) get() (*model.Catalog, bool) {
	cat, _ := c.catalog.Load().(*model.Catalog)
	if cat == nil {
		return nil, false
	}
	expiresAt, _ := c.expiresAt.Load().(time.Time)
	return cat, time.Now().Before(expiresAt)
}

func (c *catalogSnapshot) set(cat *model.Catalog) {
	c.catalog.Store(cat)
	c.expiresAt.Store(time.Now().Add(c.ttl))
}

func (c *catalogSnapshot) invalidate() {
	c.expiresAt.Store(time.Time{})
}

// CatalogServiceImpl caches the source catalog for a TTL.
// When the source fails and an older snapshot exists, the older snapshot is served.
type CatalogServiceImpl struct {
	source   CatalogSource
	snapshot *catalogSnapshot
}

// NewCatalogService creates a caching catalog service. A nil source serves DefaultCatalog.
func NewCatalogService(source CatalogSource, ttl time.Duration) *CatalogServiceImpl {
	if source == nil {
		source = NewStaticCatalog(nil)
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CatalogServiceImpl{
		source:   source,
		snapshot: newCatalogSnapshot(ttl),
	}
}

// Catalog returns the cached catalog, loading it from the source when stale.
func (s *CatalogServiceImpl) Catalog(ctx context.Context) (*model.Catalog, error) {
	if cat, fresh := s.snapshot.get(); fresh {
		metrics.RecordCacheOperation("catalog", "get", "hit")
		return cat, nil
	}
	metrics.RecordCacheOperation("catalog", "get", "miss")
	return s.load(ctx)
}

// Refresh drops the cached snapshot and reloads it.
func (s *CatalogServiceImpl) Refresh(ctx context.Context) (*model.Catalog, error) {
	s.snapshot.invalidate()
	metrics.RecordCacheOperation("catalog", "invalidate", "success")
	return s.load(ctx)
}

// Invalidate marks the cached snapshot as stale.
func (s *CatalogServiceImpl) Invalidate() {
	s.snapshot.invalidate()
	metrics.RecordCacheOperation("catalog", "invalidate", "success")
}

func (s *CatalogServiceImpl) load(ctx context.Context) (*model.Catalog, error) {
	s.snapshot.mu.Lock()
	defer s.snapshot.mu.Unlock()

	// Another goroutine may have loaded it while we waited
	if cat, fresh := s.snapshot.get(); fresh {
		return cat, nil
	}

	cat, err := s.source.Catalog(ctx)
	if err != nil {
		if stale, _ := s.snapshot.get(); stale != nil {
			log.Warn().Err(err).Msg("Catalog source unavailable, serving stale snapshot")
			metrics.RecordCacheOperation("catalog", "get", "stale")
			return stale, nil
		}
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if cat == nil {
		cat = model.EmptyCatalog()
	}

	s.snapshot.set(cat)
	metrics.RecordCacheOperation("catalog", "set", "success")
	return cat, nil
}

// DefaultCatalog returns the built-in catalog used when no database is configured.
func DefaultCatalog() *model.Catalog {
	return &model.Catalog{
		Doughs: []model.Dough{
			{ID: 1, Name: "Thin", Description: "Thin crust, crispy edges", Image: "/images/dough/thin.png", Price: 300},
			{ID: 2, Name: "Thick", Description: "Thick, soft crust", Image: "/images/dough/thick.png", Price: 300},
		},
		Sizes: []model.Size{
			{ID: 1, Name: "23 cm", Image: "/images/size/small.svg", Multiplier: 1},
			{ID: 2, Name: "32 cm", Image: "/images/size/normal.svg", Multiplier: 2},
			{ID: 3, Name: "45 cm", Image: "/images/size/big.svg", Multiplier: 3},
		},
		Sauces: []model.Sauce{
			{ID: 1, Name: "Tomato", Price: 50},
			{ID: 2, Name: "Creamy", Price: 50},
		},
		Ingredients: []model.Ingredient{
			{ID: 1, Name: "Mushrooms", Image: "/images/filling/mushrooms.svg", Price: 33},
			{ID: 2, Name: "Cheddar", Image: "/images/filling/cheddar.svg", Price: 42},
			{ID: 3, Name: "Salami", Image: "/images/filling/salami.svg", Price: 42},
			{ID: 4, Name: "Ham", Image: "/images/filling/ham.svg", Price: 42},
			{ID: 5, Name: "Pineapple", Image: "/images/filling/pineapple.svg", Price: 25},
			{ID: 6, Name: "Bacon", Image: "/images/filling/bacon.svg", Price: 42},
			{ID: 7, Name: "Onion", Image: "/images/filling/onion.svg", Price: 21},
			{ID: 8, Name: "Chile", Image: "/images/filling/chile.svg", Price: 21},
			{ID: 9, Name: "Jalapeno", Image: "/images/filling/jalapeno.svg", Price: 25},
			{ID: 10, Name: "Olives", Image: "/images/filling/olives.svg", Price: 25},
			{ID: 11, Name: "Tomatoes", Image: "/images/filling/tomatoes.svg", Price: 35},
			{ID: 12, Name: "Salmon", Image: "/images/filling/salmon.svg", Price: 50},
			{ID: 13, Name: "Mozzarella", Image: "/images/filling/mozzarella.svg", Price: 35},
			{ID: 14, Name: "Parmesan", Image: "/images/filling/parmesan.svg", Price: 35},
			{ID: 15, Name: "Blue cheese", Image: "/images/filling/blue_cheese.svg", Price: 50},
		},
		Misc: []model.Misc{
			{ID: 1, Name: "Cola 0.5l", Image: "/images/cola.svg", Price: 56},
			{ID: 2, Name: "Sauce", Image: "/images/sauce.svg", Price: 30},
			{ID: 3, Name: "Potato wedges", Image: "/images/potato.svg", Price: 170},
		},
	}
}
