package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/middleware"
)

// CatalogRoutes handles catalog route registration.
type CatalogRoutes struct {
	handler *CatalogHandler
}

// NewCatalogRoutes creates a new CatalogRoutes instance.
func NewCatalogRoutes(handler *CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// RegisterRoutes registers the /catalog routes. Refresh requires an API key
// when keys are configured.
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/catalog", r.handler.GetCatalog)
	rg.POST("/catalog/refresh", middleware.APIKeyAuth(cfg.APIKeys), r.handler.RefreshCatalog)
}
