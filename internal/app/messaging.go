// Package app provides messaging initialization.
package app

import (
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pizza-cart/config"
	"github.com/guttosm/pizza-cart/internal/events"
)

// MessagingComponents holds the order event publisher and its broker connection.
type MessagingComponents struct {
	Publisher events.Publisher
	conn      *amqp.Connection
}

// InitializeMessaging connects to RabbitMQ when messaging is enabled.
// A disabled or unreachable broker yields a publisher that drops events.
func InitializeMessaging(cfg config.MessagingConfig) *MessagingComponents {
	if !cfg.Enabled {
		return &MessagingComponents{Publisher: events.NopPublisher{}}
	}

	conn, err := events.Dial(cfg.URL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to RabbitMQ - order events disabled")
		return &MessagingComponents{Publisher: events.NopPublisher{}}
	}

	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = events.DefaultPublishTimeout
	}

	publisher, err := events.NewRabbitPublisher(conn, timeout)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ publisher - order events disabled")
		_ = conn.Close()
		return &MessagingComponents{Publisher: events.NopPublisher{}}
	}

	log.Info().Str("exchange", events.EventsExchange).Msg("Publishing order events to RabbitMQ")
	return &MessagingComponents{Publisher: publisher, conn: conn}
}

// Close closes the publisher and the broker connection.
func (m *MessagingComponents) Close() error {
	if m == nil {
		return nil
	}
	var errs []error
	if m.Publisher != nil {
		errs = append(errs, m.Publisher.Close())
	}
	if m.conn != nil {
		errs = append(errs, m.conn.Close())
	}
	return errors.Join(errs...)
}
