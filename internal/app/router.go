// Package app provides router configuration.
package app

import (
	"sort"

	"github.com/guttosm/pizza-cart/config"
	"github.com/guttosm/pizza-cart/internal/events"
	"github.com/guttosm/pizza-cart/internal/http"
	"github.com/guttosm/pizza-cart/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the health handler and the router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	publisher events.Publisher,
	cfg config.Config,
) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	if dbComponents != nil {
		if dbComponents.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(dbComponents.DB.HealthCheck))
		}
		healthHandler.RegisterCircuitBreaker("mongodb_catalog", dbComponents.CatalogCircuitBreaker)
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		Idempotency:    middleware.NewIdempotencyStore(middleware.IdempotencyKeyTTL),
		Publisher:      publisher,
	}

	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	if cfg.Auth.Enabled {
		routerCfg.APIKeys = apiKeyList(cfg.Auth.APIKeys)
		routerCfg.AuthRequired = cfg.Auth.Required
	}

	if services != nil {
		routerCfg.Catalog = services.Catalog
		routerCfg.Sessions = services.Sessions
		routerCfg.TokenValidator = services.TokenValidator
		if services.Orders != nil {
			routerCfg.Orders = services.Orders
			healthHandler.RegisterCircuitBreaker("orders", services.OrdersCircuitBreaker)
		}
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// Stop stops the background cleanup of the rate limiter and idempotency store.
func (r *RouterComponents) Stop() {
	if r == nil {
		return
	}
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	if r.Config.Idempotency != nil {
		r.Config.Idempotency.Stop()
	}
}

// apiKeyList flattens the configured key set into a sorted slice.
func apiKeyList(keys map[string]bool) []string {
	list := make([]string, 0, len(keys))
	for k, ok := range keys {
		if ok {
			list = append(list, k)
		}
	}
	sort.Strings(list)
	return list
}
