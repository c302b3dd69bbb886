// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pizza-cart/config"
	"github.com/guttosm/pizza-cart/internal/circuitbreaker"
	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/metrics"
	"github.com/guttosm/pizza-cart/internal/repository"
)

const seedTimeout = 10 * time.Second

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	CatalogRepo           repository.CatalogRepositoryInterface
	OrderRepo             repository.OrderRepositoryInterface
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB, seeds the catalog collections when they are
// empty and creates the repositories.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig, seed *model.Catalog) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	catalogCB := newCircuitBreaker("mongodb-catalog", cfg, nil)
	catalogRepo := repository.NewCatalogRepositoryWithCircuitBreaker(repository.NewCatalogRepository(db), catalogCB)

	if err := seedCatalog(catalogRepo, seed); err != nil {
		log.Warn().Err(err).Msg("Failed to seed catalog")
	}

	return &DatabaseComponents{
		DB:                    db,
		CatalogRepo:           catalogRepo,
		OrderRepo:             repository.NewOrderRepository(db),
		CatalogCircuitBreaker: catalogCB,
	}
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// seedCatalog writes the default catalog into empty collections.
func seedCatalog(repo repository.CatalogRepositoryInterface, seed *model.Catalog) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	seeded, err := repo.SeedIfEmpty(ctx, seed)
	if err != nil {
		return err
	}
	if seeded {
		log.Info().
			Int("doughs", len(seed.Doughs)).
			Int("sizes", len(seed.Sizes)).
			Int("sauces", len(seed.Sauces)).
			Int("ingredients", len(seed.Ingredients)).
			Int("misc", len(seed.Misc)).
			Msg("Seeded default catalog")
	}
	return nil
}

// newCircuitBreaker builds a breaker from the shared thresholds and exports its state.
func newCircuitBreaker(name string, cfg config.DatabaseConfig, isFailure func(error) bool) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        isFailure,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
}
