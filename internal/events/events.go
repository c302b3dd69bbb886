// Package events publishes cart domain events to RabbitMQ.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/pizza-cart/internal/domain/model"
)

const (
	// EventsExchange is the topic exchange all cart events are published to.
	EventsExchange = "pizza.events"
	// OrderPublishedRoutingKey routes OrderPublished events.
	OrderPublishedRoutingKey = "order.published.v1"
	// OrderPublishedEventType is the eventType of OrderPublished.
	OrderPublishedEventType = "OrderPublished"
)

// OrderPublished is emitted after a cart has been submitted to the order backend.
type OrderPublished struct {
	EventType string                 `json:"eventType"`
	EventID   string                 `json:"eventId"`
	OrderID   string                 `json:"orderId"`
	SessionID string                 `json:"sessionId"`
	UserID    *string                `json:"userId"`
	Phone     string                 `json:"phone"`
	Address   model.Address          `json:"address"`
	Pizzas    []model.PizzaSelection `json:"pizzas"`
	Misc      []model.MiscSelection  `json:"misc"`
	Total     int                    `json:"total"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewOrderPublished builds the event for a submitted payload and the backend's answer.
func NewOrderPublished(sessionID string, payload model.OrderPayload, result *model.OrderResult, total int) OrderPublished {
	ev := OrderPublished{
		EventType: OrderPublishedEventType,
		EventID:   uuid.NewString(),
		SessionID: sessionID,
		UserID:    payload.UserID,
		Phone:     payload.Phone,
		Address:   payload.Address,
		Pizzas:    payload.Pizzas,
		Misc:      payload.Misc,
		Total:     total,
		Timestamp: time.Now().UTC(),
	}
	if result != nil {
		ev.OrderID = result.ID
	}
	return ev
}

// Publisher emits cart events.
type Publisher interface {
	PublishOrderPublished(ctx context.Context, ev OrderPublished) error
	Close() error
}

// NopPublisher drops every event. It is used when messaging is disabled.
type NopPublisher struct{}

// PublishOrderPublished does nothing.
func (NopPublisher) PublishOrderPublished(context.Context, OrderPublished) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }
