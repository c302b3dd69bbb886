// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pizza-cart/internal/events"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderPublished(ctx context.Context, ev events.OrderPublished) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
