package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/pizza-cart/internal/circuitbreaker"
	"github.com/guttosm/pizza-cart/internal/domain/model"
)

// OrderGateway submits orders and reads a user's order history.
type OrderGateway interface {
	CreateOrder(ctx context.Context, payload model.OrderPayload) (*model.OrderResult, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, userID string, limit int) ([]model.Order, error)
}

// OrderBackendError is returned when the order backend answers with a non-2xx status.
type OrderBackendError struct {
	StatusCode int
	Body       string
}

func (e *OrderBackendError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("order backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("order backend returned status %d: %s", e.StatusCode, e.Body)
}

// IsServerError reports whether the backend failed rather than rejected the request.
func (e *OrderBackendError) IsServerError() bool {
	return e.StatusCode >= 500
}

// IsOrderBackendFailure classifies errors for the orders circuit breaker.
// Rejections (4xx), unknown orders and caller cancellation do not count as failures.
func IsOrderBackendFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, model.ErrOrderNotFound) {
		return false
	}
	var backendErr *OrderBackendError
	if errors.As(err, &backendErr) {
		return backendErr.IsServerError()
	}
	return true
}

// circuitBreakerOrderGateway wraps an OrderGateway with circuit breaker protection.
type circuitBreakerOrderGateway struct {
	gateway OrderGateway
	cb      *circuitbreaker.CircuitBreaker
}

// NewOrderGatewayWithCircuitBreaker wraps gateway with cb.
func NewOrderGatewayWithCircuitBreaker(gateway OrderGateway, cb *circuitbreaker.CircuitBreaker) OrderGateway {
	return &circuitBreakerOrderGateway{
		gateway: gateway,
		cb:      cb,
	}
}

func (g *circuitBreakerOrderGateway) CreateOrder(ctx context.Context, payload model.OrderPayload) (*model.OrderResult, error) {
	return circuitbreaker.Run(ctx, g.cb, func(ctx context.Context) (*model.OrderResult, error) {
		return g.gateway.CreateOrder(ctx, payload)
	})
}

func (g *circuitBreakerOrderGateway) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return circuitbreaker.Run(ctx, g.cb, func(ctx context.Context) (*model.Order, error) {
		return g.gateway.GetOrder(ctx, id)
	})
}

func (g *circuitBreakerOrderGateway) ListOrders(ctx context.Context, userID string, limit int) ([]model.Order, error) {
	return circuitbreaker.Run(ctx, g.cb, func(ctx context.Context) ([]model.Order, error) {
		return g.gateway.ListOrders(ctx, userID, limit)
	})
}
