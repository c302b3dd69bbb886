//go:build !integration

package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/metrics"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
	deadline bool
}

type fakeChannel struct {
	mu         sync.Mutex
	declared   []string
	published  []publishedMessage
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = append(f.declared, name+":"+kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, hasDeadline := ctx.Deadline()
	f.published = append(f.published, publishedMessage{exchange: exchange, key: key, msg: msg, deadline: hasDeadline})
	return f.publishErr
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestNewOrderPublished(t *testing.T) {
	ev := sampleEvent()

	assert.Equal(t, OrderPublishedEventType, ev.EventType)
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "o-1", ev.OrderID)
	assert.Equal(t, "session-1", ev.SessionID)
	assert.Equal(t, 1200, ev.Total)
	assert.WithinDuration(t, time.Now(), ev.Timestamp, time.Minute)

	anonymous := NewOrderPublished("s", model.OrderPayload{}, nil, 0)
	assert.Empty(t, anonymous.OrderID)
	assert.Nil(t, anonymous.UserID)
}

func TestNewRabbitPublisher_DeclaresExchange(t *testing.T) {
	tests := []struct {
		name       string
		declareErr error
		wantErr    bool
	}{
		{name: "declared"},
		{name: "declare fails", declareErr: errors.New("access refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := &fakeChannel{declareErr: tt.declareErr}
			p, err := newRabbitPublisher(ch, 0)

			assert.Equal(t, []string{EventsExchange + ":topic"}, ch.declared)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultPublishTimeout, p.timeout)
		})
	}
}

func TestRabbitPublisher_PublishOrderPublished(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newRabbitPublisher(ch, time.Second)
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.EventsPublishedTotal.WithLabelValues(OrderPublishedRoutingKey, "success"))

	ev := sampleEvent()
	require.NoError(t, p.PublishOrderPublished(context.Background(), ev))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, EventsExchange, got.exchange)
	assert.Equal(t, OrderPublishedRoutingKey, got.key)
	assert.True(t, got.deadline)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, ev.EventID, got.msg.MessageId)

	var decoded OrderPublished
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, ev.OrderID, decoded.OrderID)
	assert.Equal(t, ev.Pizzas, decoded.Pizzas)
	assert.Equal(t, "user-1", *decoded.UserID)

	after := testutil.ToFloat64(metrics.EventsPublishedTotal.WithLabelValues(OrderPublishedRoutingKey, "success"))
	assert.Equal(t, before+1, after)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	brokerErr := errors.New("channel closed")
	ch := &fakeChannel{publishErr: brokerErr}
	p, err := newRabbitPublisher(ch, time.Second)
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.EventsPublishedTotal.WithLabelValues(OrderPublishedRoutingKey, "error"))

	err = p.PublishOrderPublished(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, brokerErr)

	after := testutil.ToFloat64(metrics.EventsPublishedTotal.WithLabelValues(OrderPublishedRoutingKey, "error"))
	assert.Equal(t, before+1, after)
}

func TestRabbitPublisher_ConcurrentPublish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newRabbitPublisher(ch, time.Second)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.PublishOrderPublished(context.Background(), sampleEvent())
		}()
	}
	wg.Wait()

	assert.Len(t, ch.published, 20)
	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishOrderPublished(context.Background(), sampleEvent()))
	assert.NoError(t, p.Close())
}
