package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/metrics"
	"github.com/guttosm/pizza-cart/internal/middleware"
	"github.com/guttosm/pizza-cart/internal/service"
)

const maxOrderListLimit = 100

// OrdersHandler serves the order history and refills carts from it.
type OrdersHandler struct {
	orders service.OrderGateway
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(orders service.OrderGateway) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// ListOrders handles GET /api/orders.
//
// @Summary      List my orders
// @Description  Returns the signed-in user's orders, newest first.
// @Tags         Orders
// @Produce      json
// @Param        limit query int false "Maximum number of orders (1-100)"
// @Param        Authorization header string true "Bearer token"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Order}
// @Failure      401 {object} dto.ErrorResponse "Sign-in required"
// @Failure      502 {object} dto.ErrorResponse "Order backend error"
// @Failure      503 {object} dto.ErrorResponse "Order backend unavailable"
// @Security     BearerAuth
// @Router       /api/orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	builder := NewResponseBuilder(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyLoginRequired, nil)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxOrderListLimit {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		limit = n
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), userID, limit)
	if err != nil {
		status, key := orderErrorStatus(err)
		builder.Error(status, key, err)
		return
	}
	builder.SuccessOK(orders)
}

// GetOrder handles GET /api/orders/:id.
//
// @Summary      Get order
// @Description  Returns a persisted order. Orders of other users, and anonymous orders of other cart sessions, are reported as not found.
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order id"
// @Param        X-Cart-Session header string false "Cart session that placed an anonymous order"
// @Success      200 {object} dto.SuccessResponse{data=model.Order}
// @Failure      404 {object} dto.ErrorResponse "Order not found"
// @Failure      502 {object} dto.ErrorResponse "Order backend error"
// @Failure      503 {object} dto.ErrorResponse "Order backend unavailable"
// @Router       /api/orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	NewResponseBuilder(c).SuccessOK(order)
}

// LoadOrder handles POST /api/cart/load/:orderId.
//
// @Summary      Repeat order
// @Description  Fetches a persisted order and loads its lines into the session cart. The address is kept.
// @Tags         Cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        orderId path string true "Order id"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      404 {object} dto.ErrorResponse "Order not found"
// @Failure      503 {object} dto.ErrorResponse "Order backend unavailable"
// @Router       /api/cart/load/{orderId} [post]
func (h *OrdersHandler) LoadOrder(c *gin.Context) {
	store, ok := middleware.GetCartStore(c)
	if !ok {
		NewResponseBuilder(c).Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, nil)
		return
	}

	order, ok := h.lookup(c)
	if !ok {
		return
	}

	store.Load(*order)
	metrics.RecordCartOperation("load_order", "success")
	NewResponseBuilder(c).SuccessOK(store.State())
}

// lookup fetches the order named by the :id or :orderId path parameter and
// writes the error response itself when it cannot be returned.
func (h *OrdersHandler) lookup(c *gin.Context) (*model.Order, bool) {
	builder := NewResponseBuilder(c)

	id := c.Param("id")
	if id == "" {
		id = c.Param("orderId")
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		status, key := orderErrorStatus(err)
		builder.Error(status, key, err)
		return nil, false
	}

	userID, _ := middleware.GetUserID(c)
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		sessionID = c.GetHeader(middleware.SessionHeader)
	}
	if !visibleTo(order, userID, sessionID) {
		builder.Error(http.StatusNotFound, i18n.ErrKeyOrderNotFound, model.ErrOrderNotFound)
		return nil, false
	}
	return order, true
}

// visibleTo reports whether the caller may read order. User orders belong to
// their user; anonymous orders only to the cart session that placed them.
func visibleTo(order *model.Order, userID, sessionID string) bool {
	if order.UserID != nil && *order.UserID != "" {
		return *order.UserID == userID
	}
	return order.SessionID != "" && order.SessionID == sessionID
}
