//go:build !integration

package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/circuitbreaker"
	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/middleware"
	"github.com/guttosm/pizza-cart/internal/mocks"
	"github.com/guttosm/pizza-cart/internal/service"
)

type ordersFixture struct {
	router    *gin.Engine
	orders    *mocks.MockOrderGateway
	sessions  *service.SessionRegistry
	validator *service.HMACTokenValidator
}

func newOrdersFixture(t *testing.T) *ordersFixture {
	t.Helper()
	f := &ordersFixture{
		orders:    new(mocks.MockOrderGateway),
		validator: service.NewTokenValidator("test-secret"),
	}
	f.sessions = newTestSessions(t, cart.Dependencies{})
	f.router = NewRouter(NewHealthHandler(), RouterConfig{
		TokenValidator: f.validator,
		Sessions:       f.sessions,
		Orders:         f.orders,
	})
	return f
}

func (f *ordersFixture) bearer(t *testing.T, userID string) map[string]string {
	t.Helper()
	token, err := f.validator.Issue(userID, "", time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func strPtr(s string) *string { return &s }

func TestOrdersHandler_ListOrders(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		userID       string
		setup        func(m *mocks.MockOrderGateway)
		expectedCode int
	}{
		{
			name:         "requires a signed-in user",
			path:         "/api/orders",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "lists with default limit",
			path:   "/api/orders",
			userID: "u-1",
			setup: func(m *mocks.MockOrderGateway) {
				m.On("ListOrders", mock.Anything, "u-1", 0).Return([]model.Order{{ID: "o-1"}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "passes explicit limit",
			path:   "/api/orders?limit=5",
			userID: "u-1",
			setup: func(m *mocks.MockOrderGateway) {
				m.On("ListOrders", mock.Anything, "u-1", 5).Return([]model.Order{}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "rejects out of range limit",
			path:         "/api/orders?limit=1000",
			userID:       "u-1",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "backend unavailable",
			path:   "/api/orders",
			userID: "u-1",
			setup: func(m *mocks.MockOrderGateway) {
				m.On("ListOrders", mock.Anything, "u-1", 0).Return(nil, circuitbreaker.ErrCircuitOpen)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrdersFixture(t)
			if tt.setup != nil {
				tt.setup(f.orders)
			}
			var headers map[string]string
			if tt.userID != "" {
				headers = f.bearer(t, tt.userID)
			}

			w := performRequest(f.router, http.MethodGet, tt.path, "", headers)

			assert.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			f.orders.AssertExpectations(t)
		})
	}
}

func TestOrdersHandler_GetOrder(t *testing.T) {
	tests := []struct {
		name         string
		order        *model.Order
		err          error
		userID       string
		sessionID    string
		expectedCode int
	}{
		{name: "anonymous order readable by its session", order: &model.Order{ID: "o-1", SessionID: "s-1"}, sessionID: "s-1", expectedCode: http.StatusOK},
		{name: "anonymous order hidden from other sessions", order: &model.Order{ID: "o-1", Phone: "555", SessionID: "s-1"}, sessionID: "s-2", expectedCode: http.StatusNotFound},
		{name: "anonymous order hidden without a session", order: &model.Order{ID: "o-1", Phone: "555", SessionID: "s-1"}, expectedCode: http.StatusNotFound},
		{name: "anonymous order of unknown session is hidden", order: &model.Order{ID: "o-1", Phone: "555"}, sessionID: "s-1", expectedCode: http.StatusNotFound},
		{name: "own order", order: &model.Order{ID: "o-1", UserID: strPtr("u-1")}, userID: "u-1", expectedCode: http.StatusOK},
		{name: "other user's order is hidden", order: &model.Order{ID: "o-1", UserID: strPtr("u-2")}, userID: "u-1", expectedCode: http.StatusNotFound},
		{name: "user order hidden from anonymous caller", order: &model.Order{ID: "o-1", UserID: strPtr("u-2")}, expectedCode: http.StatusNotFound},
		{name: "unknown order", err: model.ErrOrderNotFound, expectedCode: http.StatusNotFound},
		{name: "backend error", err: &service.OrderBackendError{StatusCode: 500}, expectedCode: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrdersFixture(t)
			if tt.order != nil {
				f.orders.On("GetOrder", mock.Anything, "o-1").Return(tt.order, nil)
			} else {
				f.orders.On("GetOrder", mock.Anything, "o-1").Return(nil, tt.err)
			}
			headers := map[string]string{}
			if tt.userID != "" {
				headers = f.bearer(t, tt.userID)
			}
			if tt.sessionID != "" {
				headers[middleware.SessionHeader] = tt.sessionID
			}

			w := performRequest(f.router, http.MethodGet, "/api/orders/o-1", "", headers)

			assert.Equal(t, tt.expectedCode, w.Code, w.Body.String())
			if tt.expectedCode == http.StatusNotFound {
				assert.NotContains(t, w.Body.String(), "555")
			}
		})
	}
}

func TestOrdersHandler_LoadOrder(t *testing.T) {
	f := newOrdersFixture(t)
	f.orders.On("GetOrder", mock.Anything, "o-9").Return(&model.Order{
		ID:        "o-9",
		Phone:     "777",
		SessionID: "s-load",
		OrderPizzas: []model.OrderPizza{{
			Name: "Repeat", Dough: model.OrderRef{ID: 2}, Size: model.OrderRef{ID: 1}, Sauce: model.OrderRef{ID: 1}, Quantity: 3,
		}},
		OrderMisc: []model.OrderMisc{{ID: 2, Quantity: 2}},
	}, nil)
	f.orders.On("GetOrder", mock.Anything, "missing").Return(nil, model.ErrOrderNotFound)

	headers := map[string]string{middleware.SessionHeader: "s-load"}
	w := performRequest(f.router, http.MethodPost, "/api/cart/load/o-9", "", headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	store, ok := f.sessions.Get("s-load")
	require.True(t, ok)
	state := store.State()
	assert.Equal(t, "777", state.Phone)
	require.Len(t, state.Pizzas, 1)
	assert.Equal(t, 3, state.Pizzas[0].Quantity)
	assert.Empty(t, state.Pizzas[0].Ingredients)
	assert.Equal(t, []model.MiscSelection{{MiscID: 2, Quantity: 2}}, state.Misc)

	w = performRequest(f.router, http.MethodPost, "/api/cart/load/missing", "", headers)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "777", store.State().Phone, "failed load leaves the cart untouched")
}

func TestOrdersHandler_LoadOrder_OtherSession(t *testing.T) {
	f := newOrdersFixture(t)
	f.orders.On("GetOrder", mock.Anything, "o-9").Return(&model.Order{ID: "o-9", Phone: "777", SessionID: "s-owner"}, nil)

	headers := map[string]string{middleware.SessionHeader: "s-other"}
	w := performRequest(f.router, http.MethodPost, "/api/cart/load/o-9", "", headers)

	assert.Equal(t, http.StatusNotFound, w.Code)
	store, ok := f.sessions.Get("s-other")
	require.True(t, ok)
	assert.Empty(t, store.State().Phone)
}

func TestVisibleTo(t *testing.T) {
	tests := []struct {
		name      string
		order     *model.Order
		userID    string
		sessionID string
		want      bool
	}{
		{name: "own user order", order: &model.Order{UserID: strPtr("u")}, userID: "u", want: true},
		{name: "other user order", order: &model.Order{UserID: strPtr("u")}, userID: "v"},
		{name: "user order ignores session", order: &model.Order{UserID: strPtr("u"), SessionID: "s"}, sessionID: "s"},
		{name: "anonymous order of own session", order: &model.Order{SessionID: "s"}, sessionID: "s", want: true},
		{name: "empty user id counts as anonymous", order: &model.Order{UserID: strPtr(""), SessionID: "s"}, userID: "u", sessionID: "s", want: true},
		{name: "anonymous order of other session", order: &model.Order{SessionID: "s"}, sessionID: "t"},
		{name: "anonymous order without session", order: &model.Order{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, visibleTo(tt.order, tt.userID, tt.sessionID))
		})
	}
}
