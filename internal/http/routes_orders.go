package http

import (
	"github.com/gin-gonic/gin"
)

// OrderRoutes handles order history route registration.
type OrderRoutes struct {
	handler *OrdersHandler
}

// NewOrderRoutes creates a new OrderRoutes instance.
func NewOrderRoutes(handler *OrdersHandler) *OrderRoutes {
	return &OrderRoutes{handler: handler}
}

// RegisterRoutes registers the /orders routes.
func (r *OrderRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.GET("/orders", r.handler.ListOrders)
	rg.GET("/orders/:id", r.handler.GetOrder)
}
