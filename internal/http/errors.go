package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/circuitbreaker"
	"github.com/guttosm/pizza-cart/internal/domain/dto"
	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/service"
)

// orderErrorStatus maps an order backend error to the HTTP status and message key sent to the client.
func orderErrorStatus(err error) (int, string) {
	var backendErr *service.OrderBackendError
	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		return http.StatusNotFound, i18n.ErrKeyOrderNotFound
	case errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, cart.ErrOrderClientNotConfigured):
		return http.StatusServiceUnavailable, i18n.ErrKeyOrdersUnavailable
	case errors.As(err, &backendErr):
		return http.StatusBadGateway, i18n.ErrKeyOrderRejected
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

// validationMessageKey returns the message key for a request validation failure.
func validationMessageKey(err error) string {
	switch {
	case errors.Is(err, dto.ErrInvalidIndex):
		return i18n.ErrKeyInvalidIndex
	case errors.Is(err, dto.ErrInvalidIngredientQuantity):
		return i18n.ErrKeyInvalidIngredientQuantity
	default:
		return i18n.ErrKeyInvalidRequestBody
	}
}
