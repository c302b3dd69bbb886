package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/pizza-cart/internal/events"
	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/metrics"
	"github.com/guttosm/pizza-cart/internal/middleware"
	"github.com/guttosm/pizza-cart/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	APIKeys        []string
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string

	// AuthRequired rejects API requests without a valid bearer token.
	// Without it tokens are optional and only attach a user to orders.
	AuthRequired   bool
	TokenValidator service.TokenValidator

	// RateLimiter overrides the limiter built from RateLimit and RateWindow.
	RateLimiter *middleware.ShardedRateLimiter
	Idempotency *middleware.IdempotencyStore

	Sessions  middleware.SessionResolver
	Catalog   service.CatalogService
	Orders    service.OrderGateway
	Publisher events.Publisher
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultRequestTimeout,
	}
}

// NewRouter creates and configures the Gin router for the pizza cart service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Configure global middleware
	configureGlobalMiddleware(router, &cfg)

	// Register infrastructure routes (health, metrics, swagger)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	// Configure API routes
	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	for _, group := range routeGroups(&cfg) {
		group.RegisterRoutes(api, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	// CORS configuration
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:8080", "http://127.0.0.1:8080"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "Cache-Control", "X-Requested-With", "X-API-Key", middleware.IdempotencyKeyHeader, middleware.RequestIDHeader, middleware.SessionHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.SessionHeader, middleware.IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// Core middleware stack
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.RequestLogger("/healthz", "/readyz", "/metrics"),
		middleware.ErrorHandler(),
		metrics.PrometheusMiddleware(),
		cors.New(corsConfig),
		middleware.Compression("/metrics"),
	)
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger with optional basic auth
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.NoRoute(func(c *gin.Context) {
		NewResponseBuilder(c).Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
	})
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	// Identity runs before rate limiting so signed-in users are limited per user
	api.Use(middleware.OptionalJWT(cfg.TokenValidator, cfg.AuthRequired))

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	if limiter != nil {
		api.Use(limiter.RateLimit())
	}
}

// routeGroups returns the API route groups enabled by cfg.
func routeGroups(cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup

	if cfg.Catalog != nil {
		groups = append(groups, NewCatalogRoutes(NewCatalogHandler(cfg.Catalog)))
	}

	var ordersHandler *OrdersHandler
	if cfg.Orders != nil {
		ordersHandler = NewOrdersHandler(cfg.Orders)
		groups = append(groups, NewOrderRoutes(ordersHandler))
	}

	if cfg.Sessions != nil {
		groups = append(groups, NewCartRoutes(NewCartHandler(cfg.Publisher), ordersHandler))
	}

	return groups
}
