package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/logger"
	"github.com/guttosm/pizza-cart/internal/middleware"
	"github.com/guttosm/pizza-cart/internal/service"
)

// CatalogHandler serves the pizza catalog.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetCatalog handles GET /api/catalog.
//
// @Summary      Get catalog
// @Description  Returns doughs, sizes, sauces, ingredients and misc items. Served from a short-lived snapshot.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.Catalog}
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cat, err := h.catalog.Catalog(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable, err)
		return
	}
	builder.SuccessOK(cat)
}

// RefreshCatalog handles POST /api/catalog/refresh.
//
// @Summary      Refresh catalog
// @Description  Drops the cached snapshot and reloads the catalog from its store.
// @Tags         Catalog
// @Produce      json
// @Param        X-API-Key header string false "API key (required when keys are configured)"
// @Success      200 {object} dto.SuccessResponse{data=model.Catalog}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Security     ApiKeyAuth
// @Router       /api/catalog/refresh [post]
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	cat, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable, err)
		return
	}

	log := logger.Logger()
	log.Info().
		Str("request_id", middleware.GetRequestID(c)).
		Int("ingredients", len(cat.Ingredients)).
		Int("misc", len(cat.Misc)).
		Msg("Catalog refreshed")

	builder.SuccessOK(cat)
}
