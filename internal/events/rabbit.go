package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/guttosm/pizza-cart/internal/metrics"
)

// DefaultPublishTimeout bounds a single broker publish.
const DefaultPublishTimeout = 3 * time.Second

// amqpChannel is the subset of *amqp.Channel the publisher uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes JSON events to the topic exchange.
type RabbitPublisher struct {
	mu      sync.Mutex
	ch      amqpChannel
	timeout time.Duration
}

// Dial connects to the broker at url.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// NewRabbitPublisher opens a channel on conn and declares the events exchange.
func NewRabbitPublisher(conn *amqp.Connection, timeout time.Duration) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newRabbitPublisher(ch, timeout)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newRabbitPublisher(ch amqpChannel, timeout time.Duration) (*RabbitPublisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &RabbitPublisher{ch: ch, timeout: timeout}, nil
}

func declareEventsExchange(ch amqpChannel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

// PublishOrderPublished publishes ev with the order.published.v1 routing key.
func (p *RabbitPublisher) PublishOrderPublished(ctx context.Context, ev OrderPublished) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", ev.EventType, err)
	}

	err = p.publishJSON(ctx, OrderPublishedRoutingKey, ev.EventID, body)
	if err != nil {
		metrics.RecordEventPublished(OrderPublishedRoutingKey, "error")
		return fmt.Errorf("publish %s: %w", OrderPublishedRoutingKey, err)
	}
	metrics.RecordEventPublished(OrderPublishedRoutingKey, "success")
	return nil
}

func (p *RabbitPublisher) publishJSON(ctx context.Context, routingKey, messageID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// amqp channels must not publish concurrently
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Close closes the publishing channel.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
