// Package app provides service initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pizza-cart/config"
	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/circuitbreaker"
	"github.com/guttosm/pizza-cart/internal/service"
)

// sessionShards is the shard count of the session registry.
const sessionShards = 16

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog              *service.CatalogServiceImpl
	Orders               service.OrderGateway
	OrdersCircuitBreaker *circuitbreaker.CircuitBreaker
	Sessions             *service.SessionRegistry
	TokenValidator       service.TokenValidator
}

// InitializeServices builds the catalog, the order gateway and the session registry.
//
// The catalog is read from MongoDB when db is available and from the built-in
// default otherwise. Orders go to ORDERS_BASE_URL when set, to MongoDB when only
// the database is available, and nowhere when neither is.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	components := &ServiceComponents{}

	var source service.CatalogSource = service.NewStaticCatalog(service.DefaultCatalog())
	if db != nil && db.CatalogRepo != nil {
		source = db.CatalogRepo
	}
	components.Catalog = service.NewCatalogService(source, cfg.Catalog.CacheTTL)

	var gateway service.OrderGateway
	switch {
	case cfg.Orders.BaseURL != "":
		gateway = service.NewHTTPOrderClient(cfg.Orders.BaseURL, cfg.Orders.Timeout)
		log.Info().Str("base_url", cfg.Orders.BaseURL).Msg("Submitting orders to order backend")
	case db != nil && db.OrderRepo != nil:
		gateway = db.OrderRepo
		log.Info().Msg("Storing orders in MongoDB")
	default:
		log.Warn().Msg("No order backend configured - publishing carts is disabled")
	}
	if gateway != nil {
		components.OrdersCircuitBreaker = newCircuitBreaker("orders", cfg.Database, service.IsOrderBackendFailure)
		components.Orders = service.NewOrderGatewayWithCircuitBreaker(gateway, components.OrdersCircuitBreaker)
	}

	if cfg.Auth.Enabled {
		components.TokenValidator = service.NewTokenValidator(cfg.Auth.JWTSecretKey)
	}

	deps := cart.Dependencies{
		Catalog:  components.Catalog,
		Pricer:   service.NewCatalogPricer(),
		Identity: service.NewContextIdentity(),
	}
	if components.Orders != nil {
		deps.Orders = components.Orders
	}
	components.Sessions = service.NewSessionRegistry(cfg.Session.Capacity, cfg.Session.TTL, sessionShards, func() *cart.Store {
		return cart.NewStore(deps)
	})

	return components
}

// Stop releases background resources held by the services.
func (s *ServiceComponents) Stop() {
	if s != nil && s.Sessions != nil {
		s.Sessions.Stop()
	}
}
