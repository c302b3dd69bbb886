//go:build !integration

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/circuitbreaker"
	"github.com/guttosm/pizza-cart/internal/domain/dto"
	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/service"
)

func TestOrderErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKey    string
	}{
		{"not found", model.ErrOrderNotFound, http.StatusNotFound, i18n.ErrKeyOrderNotFound},
		{"circuit open", circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyOrdersUnavailable},
		{"wrapped circuit open", fmt.Errorf("orders: %w", circuitbreaker.ErrCircuitOpen), http.StatusServiceUnavailable, i18n.ErrKeyOrdersUnavailable},
		{"no order client", cart.ErrOrderClientNotConfigured, http.StatusServiceUnavailable, i18n.ErrKeyOrdersUnavailable},
		{"backend 4xx", &service.OrderBackendError{StatusCode: 400}, http.StatusBadGateway, i18n.ErrKeyOrderRejected},
		{"backend 5xx", &service.OrderBackendError{StatusCode: 503}, http.StatusBadGateway, i18n.ErrKeyOrderRejected},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, i18n.ErrKeyTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError, i18n.ErrKeyInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, key := orderErrorStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestValidationMessageKey(t *testing.T) {
	assert.Equal(t, i18n.ErrKeyInvalidIndex, validationMessageKey(dto.ErrInvalidIndex))
	assert.Equal(t, i18n.ErrKeyInvalidIngredientQuantity, validationMessageKey(dto.ErrInvalidIngredientQuantity))
	assert.Equal(t, i18n.ErrKeyInvalidRequestBody, validationMessageKey(errors.New("EOF")))
}
