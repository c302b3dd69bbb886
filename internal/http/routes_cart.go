package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/middleware"
)

// CartRoutes handles cart route registration.
type CartRoutes struct {
	handler *CartHandler
	orders  *OrdersHandler
}

// NewCartRoutes creates a new CartRoutes instance.
// orders may be nil, in which case carts cannot be refilled from the order history.
func NewCartRoutes(handler *CartHandler, orders *OrdersHandler) *CartRoutes {
	return &CartRoutes{handler: handler, orders: orders}
}

// RegisterRoutes registers the /cart routes. Every route is bound to a cart
// session; mutating routes honor Idempotency-Key.
func (r *CartRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	group := rg.Group("/cart")
	group.Use(middleware.Session(cfg.Sessions))
	if cfg.Idempotency != nil {
		group.Use(middleware.Idempotency(cfg.Idempotency))
	}

	group.GET("", r.handler.GetCart)
	group.GET("/summary", r.handler.GetSummary)

	group.POST("/pizzas", r.handler.SavePizza)
	group.PUT("/pizzas/:index/quantity", r.handler.SetPizzaQuantity)
	group.PUT("/misc/:miscId/quantity", r.handler.SetMiscQuantity)

	group.PUT("/phone", r.handler.SetPhone)
	group.PUT("/address", r.handler.SetAddress)
	group.PUT("/address/street", r.handler.SetStreet)
	group.PUT("/address/building", r.handler.SetBuilding)
	group.PUT("/address/flat", r.handler.SetFlat)
	group.PUT("/address/comment", r.handler.SetComment)

	group.POST("/reset", r.handler.Reset)
	group.POST("/load", r.handler.Load)
	if r.orders != nil {
		group.POST("/load/:orderId", r.orders.LoadOrder)
	}
	group.POST("/publish", r.handler.Publish)
}
