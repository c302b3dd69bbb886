package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/domain/dto"
	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/events"
	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/logger"
	"github.com/guttosm/pizza-cart/internal/metrics"
	"github.com/guttosm/pizza-cart/internal/middleware"
)

// CartHandler exposes the session cart over HTTP.
// Every route expects middleware.Session to have bound a cart store.
type CartHandler struct {
	publisher events.Publisher
}

// NewCartHandler creates a cart handler. A nil publisher drops order events.
func NewCartHandler(publisher events.Publisher) *CartHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CartHandler{publisher: publisher}
}

// store returns the request's cart store or writes a 500 and returns false.
func (h *CartHandler) store(c *gin.Context) (*cart.Store, bool) {
	store, ok := middleware.GetCartStore(c)
	if !ok {
		NewResponseBuilder(c).Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, nil)
		return nil, false
	}
	return store, true
}

// mutate applies fn to the session cart and responds with the new state.
func (h *CartHandler) mutate(c *gin.Context, operation string, fn func(*cart.Store)) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	fn(store)
	metrics.RecordCartOperation(operation, "success")
	NewResponseBuilder(c).SuccessOK(store.State())
}

// GetCart handles GET /api/cart.
//
// @Summary      Get cart
// @Description  Returns the normalized cart of the session. A new session is started when X-Cart-Session is missing.
// @Tags         Cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Router       /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	NewResponseBuilder(c).SuccessOK(store.State())
}

// GetSummary handles GET /api/cart/summary.
//
// @Summary      Get priced cart
// @Description  Returns the cart joined against the catalog: pizzas with unit prices, every misc item with its selected quantity, and the total.
// @Tags         Cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Success      200 {object} dto.SuccessResponse{data=model.CartSummary}
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/cart/summary [get]
func (h *CartHandler) GetSummary(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	builder := NewResponseBuilder(c)

	summary, err := store.Summary(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable, err)
		return
	}
	builder.SuccessOK(summary)
}

// SavePizza handles POST /api/cart/pizzas.
//
// @Summary      Save pizza
// @Description  Appends a pizza with quantity 1, or replaces the pizza at index keeping its quantity.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.SavePizzaRequest true "Pizza"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "No pizza at index"
// @Router       /api/cart/pizzas [post]
func (h *CartHandler) SavePizza(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.SavePizzaRequest](c)
	if err != nil {
		metrics.RecordCartOperation("save_pizza", "validation_error")
		builder.Error(http.StatusBadRequest, validationMessageKey(err), err)
		return
	}

	store, ok := h.store(c)
	if !ok {
		return
	}

	err = store.SavePizza(cart.PizzaInput{
		Index:       req.Index,
		Name:        req.Name,
		DoughID:     req.DoughID,
		SizeID:      req.SizeID,
		SauceID:     req.SauceID,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		metrics.RecordCartOperation("save_pizza", "not_found")
		builder.Error(http.StatusNotFound, i18n.ErrKeyPizzaNotFound, err)
		return
	}

	metrics.RecordCartOperation("save_pizza", "success")
	builder.SuccessOK(store.State())
}

// SetPizzaQuantity handles PUT /api/cart/pizzas/:index/quantity.
//
// @Summary      Set pizza quantity
// @Description  Sets the quantity of the pizza at index. Unknown positions leave the cart unchanged.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        index path int true "Pizza position"
// @Param        request body dto.QuantityRequest true "Quantity"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/pizzas/{index}/quantity [put]
func (h *CartHandler) SetPizzaQuantity(c *gin.Context) {
	builder := NewResponseBuilder(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidIndex, err)
		return
	}

	req, err := BuildRequest[dto.QuantityRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	h.mutate(c, "set_pizza_quantity", func(s *cart.Store) {
		s.SetPizzaQuantity(index, *req.Count)
	})
}

// SetMiscQuantity handles PUT /api/cart/misc/:miscId/quantity.
//
// @Summary      Set misc quantity
// @Description  Adds, updates or removes a misc item. A missing item is added with quantity 1; a count of 0 removes it.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        miscId path int true "Misc catalog id"
// @Param        request body dto.QuantityRequest true "Quantity"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/misc/{miscId}/quantity [put]
func (h *CartHandler) SetMiscQuantity(c *gin.Context) {
	builder := NewResponseBuilder(c)

	miscID, err := strconv.Atoi(c.Param("miscId"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidMiscID, err)
		return
	}

	req, err := BuildRequest[dto.QuantityRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	h.mutate(c, "set_misc_quantity", func(s *cart.Store) {
		s.SetMiscQuantity(miscID, *req.Count)
	})
}

// SetPhone handles PUT /api/cart/phone.
//
// @Summary      Set phone
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        request body dto.PhoneRequest true "Phone"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/phone [put]
func (h *CartHandler) SetPhone(c *gin.Context) {
	req, err := BuildRequest[dto.PhoneRequest](c)
	if err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	h.mutate(c, "set_phone", func(s *cart.Store) {
		s.SetPhone(*req.Phone)
	})
}

// SetAddress handles PUT /api/cart/address.
//
// @Summary      Set address
// @Description  Replaces all four address fields. Omitted fields become empty.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        request body dto.AddressRequest true "Address"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/address [put]
func (h *CartHandler) SetAddress(c *gin.Context) {
	req, err := BuildRequest[dto.AddressRequest](c)
	if err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	h.mutate(c, "set_address", func(s *cart.Store) {
		s.SetAddress(req.ToModel())
	})
}

// setAddressField returns a handler writing one address field through set.
func (h *CartHandler) setAddressField(operation string, set func(*cart.Store, string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := BuildRequest[dto.FieldRequest](c)
		if err != nil {
			NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
			return
		}
		h.mutate(c, operation, func(s *cart.Store) {
			set(s, *req.Value)
		})
	}
}

// SetStreet handles PUT /api/cart/address/street.
//
// @Summary      Set street
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        request body dto.FieldRequest true "Street"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/address/street [put]
func (h *CartHandler) SetStreet(c *gin.Context) {
	h.setAddressField("set_street", (*cart.Store).SetStreet)(c)
}

// SetBuilding handles PUT /api/cart/address/building.
//
// @Summary      Set building
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        request body dto.FieldRequest true "Building"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/address/building [put]
func (h *CartHandler) SetBuilding(c *gin.Context) {
	h.setAddressField("set_building", (*cart.Store).SetBuilding)(c)
}

// SetFlat handles PUT /api/cart/address/flat.
//
// @Summary      Set flat
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        request body dto.FieldRequest true "Flat"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/address/flat [put]
func (h *CartHandler) SetFlat(c *gin.Context) {
	h.setAddressField("set_flat", (*cart.Store).SetFlat)(c)
}

// SetComment handles PUT /api/cart/address/comment.
//
// @Summary      Set comment
// @Description  Stores the value in the street field, as existing frontends expect. Use PUT /api/cart/address to set the comment itself.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        request body dto.FieldRequest true "Comment"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/address/comment [put]
func (h *CartHandler) SetComment(c *gin.Context) {
	h.setAddressField("set_comment", (*cart.Store).SetComment)(c)
}

// Reset handles POST /api/cart/reset.
//
// @Summary      Reset cart
// @Tags         Cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Router       /api/cart/reset [post]
func (h *CartHandler) Reset(c *gin.Context) {
	h.mutate(c, "reset", (*cart.Store).Reset)
}

// Load handles POST /api/cart/load.
//
// @Summary      Load order into cart
// @Description  Replaces phone, pizzas and misc with the lines of a persisted order. The address is kept.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        request body model.Order true "Persisted order"
// @Success      200 {object} dto.SuccessResponse{data=model.Cart}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/load [post]
func (h *CartHandler) Load(c *gin.Context) {
	order, err := BuildRequest[model.Order](c)
	if err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	h.mutate(c, "load", func(s *cart.Store) {
		s.Load(*order)
	})
}

// Publish handles POST /api/cart/publish.
//
// @Summary      Publish order
// @Description  Submits the cart to the order backend. On success an OrderPublished event is emitted and the cart is reset. Supports idempotent retries via the Idempotency-Key header.
// @Tags         Cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer token; attaches the order to the user"
// @Success      201 {object} dto.SuccessResponse{data=model.OrderResult}
// @Failure      409 {object} dto.ErrorResponse "Idempotency key reused with a different request"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      502 {object} dto.ErrorResponse "Order rejected by the backend"
// @Failure      503 {object} dto.ErrorResponse "Order backend unavailable"
// @Security     BearerAuth
// @Router       /api/cart/publish [post]
func (h *CartHandler) Publish(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	builder := NewResponseBuilder(c)
	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(c)
	log := logger.ForSession(sessionID)

	start := time.Now()
	sub, err := store.Submit(ctx)
	if err != nil {
		metrics.RecordOrderPublish(time.Since(start), "error")
		status, key := orderErrorStatus(err)
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Int("status", status).
			Msg("Order publish failed")
		builder.Error(status, key, err)
		return
	}
	metrics.RecordOrderPublish(time.Since(start), "success")

	total, err := store.PayloadTotal(ctx, sub.Payload)
	if err != nil {
		log.Warn().Err(err).Msg("Could not price published order")
	}

	result := sub.Result
	if result == nil {
		result = &model.OrderResult{}
	}
	if result.Total == 0 {
		result.Total = total
	}

	event := events.NewOrderPublished(sessionID, sub.Payload, result, total)
	if err := h.publisher.PublishOrderPublished(ctx, event); err != nil {
		log.Warn().Err(err).Str("order_id", result.ID).Msg("Failed to emit OrderPublished event")
	}

	if !store.ResetIfUnchanged(sub.Version) {
		log.Warn().Str("order_id", result.ID).Msg("Cart changed while publishing, keeping it")
	}
	log.Info().
		Str("order_id", result.ID).
		Int("total", total).
		Msg("Order published")

	builder.SuccessCreated(result)
}
