//go:build integration

package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/circuitbreaker"
	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/middleware"
	"github.com/guttosm/pizza-cart/internal/repository"
	"github.com/guttosm/pizza-cart/internal/service"
)

func TestCartFlow_Integration(t *testing.T) {
	ctx := context.Background()

	db, err := repository.NewMongoDB(getSharedContainerURI(), sanitizeDBNameForHTTP(t.Name()))
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	catalogRepo := repository.NewCatalogRepository(db)
	seeded, err := catalogRepo.SeedIfEmpty(ctx, service.DefaultCatalog())
	require.NoError(t, err)
	require.True(t, seeded)

	ordersBreaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 5,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "orders",
		IsFailure:        service.IsOrderBackendFailure,
	})
	orders := service.NewOrderGatewayWithCircuitBreaker(repository.NewOrderRepository(db), ordersBreaker)
	catalog := service.NewCatalogService(catalogRepo, time.Minute)
	validator := service.NewTokenValidator("integration-secret")

	sessions := newTestSessions(t, cart.Dependencies{
		Catalog:  catalog,
		Pricer:   service.NewCatalogPricer(),
		Identity: service.NewContextIdentity(),
		Orders:   orders,
	})

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", HealthCheckFunc(db.HealthCheck))
	health.RegisterCircuitBreaker("orders", ordersBreaker)

	router := NewRouter(health, RouterConfig{
		TokenValidator: validator,
		Idempotency:    newTestIdempotency(t),
		Sessions:       sessions,
		Catalog:        catalog,
		Orders:         orders,
	})

	token, err := validator.Issue("user-42", "pizza@example.com", time.Hour)
	require.NoError(t, err)
	headers := map[string]string{
		middleware.SessionHeader: "flow-session",
		"Authorization":          "Bearer " + token,
	}

	var orderID string

	t.Run("catalog is served from MongoDB", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/catalog", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var cat model.Catalog
		decodeData(t, w, &cat)
		assert.Len(t, cat.Ingredients, len(service.DefaultCatalog().Ingredients))
	})

	t.Run("fill and publish cart", func(t *testing.T) {
		steps := []struct {
			method, path, body string
		}{
			{http.MethodPut, "/api/cart/phone", `{"phone": "+7 999 111"}`},
			{http.MethodPut, "/api/cart/address", `{"street": "Lenina", "building": "12", "flat": "4"}`},
			{http.MethodPost, "/api/cart/pizzas", `{"name": "Cheese", "doughId": 2, "sizeId": 3, "sauceId": 2, "ingredients": [{"ingredientId": 2, "quantity": 1}, {"ingredientId": 13, "quantity": 2}]}`},
			{http.MethodPut, "/api/cart/misc/3/quantity", `{"count": 1}`},
		}
		for _, step := range steps {
			w := performRequest(router, step.method, step.path, step.body, headers)
			require.Equal(t, http.StatusOK, w.Code, step.path)
		}

		w := performRequest(router, http.MethodPost, "/api/cart/publish", "", headers)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var result model.OrderResult
		decodeData(t, w, &result)
		require.NotEmpty(t, result.ID)
		require.NotNil(t, result.UserID)
		assert.Equal(t, "user-42", *result.UserID)
		// (300 + 50 + 42 + 2×35) × 3 + 170
		assert.Equal(t, 462*3+170, result.Total)
		orderID = result.ID

		w = performRequest(router, http.MethodGet, "/api/cart", "", headers)
		var state model.Cart
		decodeData(t, w, &state)
		assert.Equal(t, model.NewCart(), state)
	})

	t.Run("order appears in history", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/orders", "", headers)
		require.Equal(t, http.StatusOK, w.Code)

		var history []model.Order
		decodeData(t, w, &history)
		require.Len(t, history, 1)
		assert.Equal(t, orderID, history[0].ID)
		require.Len(t, history[0].OrderPizzas, 1)
		assert.Equal(t, 3, history[0].OrderPizzas[0].Size.ID)
	})

	t.Run("repeat order refills the cart", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/cart/load/"+orderID, "", headers)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var state model.Cart
		decodeData(t, w, &state)
		assert.Equal(t, "+7 999 111", state.Phone)
		require.Len(t, state.Pizzas, 1)
		assert.Equal(t, "Cheese", state.Pizzas[0].Name)
		assert.Equal(t, []model.MiscSelection{{MiscID: 3, Quantity: 1}}, state.Misc)
	})

	t.Run("other users cannot read the order", func(t *testing.T) {
		otherToken, err := validator.Issue("user-43", "", time.Hour)
		require.NoError(t, err)

		w := performRequest(router, http.MethodGet, "/api/orders/"+orderID, "", map[string]string{
			"Authorization": "Bearer " + otherToken,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous order stays with its session", func(t *testing.T) {
		owner := map[string]string{middleware.SessionHeader: "anon-session"}
		w := performRequest(router, http.MethodPut, "/api/cart/phone", `{"phone": "+7 999 222"}`, owner)
		require.Equal(t, http.StatusOK, w.Code)
		w = performRequest(router, http.MethodPost, "/api/cart/publish", "", owner)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var result model.OrderResult
		decodeData(t, w, &result)
		assert.Nil(t, result.UserID)

		w = performRequest(router, http.MethodGet, "/api/orders/"+result.ID, "", owner)
		assert.Equal(t, http.StatusOK, w.Code)

		w = performRequest(router, http.MethodGet, "/api/orders/"+result.ID, "", map[string]string{
			middleware.SessionHeader: "other-session",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Body.String(), "+7 999 222")
	})

	t.Run("readiness reports dependencies", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/readyz", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
		assert.Contains(t, w.Body.String(), `"orders_circuit":"closed"`)
	})
}
