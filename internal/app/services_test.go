//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pizza-cart/config"
	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/mocks"
	"github.com/guttosm/pizza-cart/internal/service"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:       "8080",
			RateLimit:  100,
			RateWindow: time.Minute,
		},
		Session: config.SessionConfig{
			Capacity: 100,
			TTL:      time.Hour,
		},
		Catalog: config.CatalogConfig{
			CacheTTL: time.Minute,
		},
		Database: config.DatabaseConfig{
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Orders: config.OrdersConfig{
			Timeout: time.Second,
		},
	}
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name     string
		cfg      func() config.Config
		db       func(t *testing.T) *DatabaseComponents
		validate func(*testing.T, *ServiceComponents)
	}{
		{
			name: "without database or order backend",
			cfg:  testConfig,
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components.Catalog)
				assert.NotNil(t, components.Sessions)
				assert.Nil(t, components.Orders)
				assert.Nil(t, components.OrdersCircuitBreaker)
				assert.Nil(t, components.TokenValidator)

				store, _ := components.Sessions.GetOrCreate("s1")
				_, err := store.PublishOrder(context.Background())
				assert.ErrorIs(t, err, cart.ErrOrderClientNotConfigured)
			},
		},
		{
			name: "with order backend url",
			cfg: func() config.Config {
				cfg := testConfig()
				cfg.Orders.BaseURL = "http://orders.local"
				return cfg
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components.Orders)
				require.NotNil(t, components.OrdersCircuitBreaker)
				assert.Equal(t, "orders", components.OrdersCircuitBreaker.Name())
			},
		},
		{
			name: "with database orders",
			cfg:  testConfig,
			db: func(t *testing.T) *DatabaseComponents {
				catalogRepo := new(mocks.MockCatalogRepositoryInterface)
				catalogRepo.On("Catalog", mock.Anything).Return(service.DefaultCatalog(), nil)
				return &DatabaseComponents{
					CatalogRepo: catalogRepo,
					OrderRepo:   new(mocks.MockOrderGateway),
				}
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				assert.NotNil(t, components.Orders)
				assert.NotNil(t, components.OrdersCircuitBreaker)

				cat, err := components.Catalog.Catalog(context.Background())
				require.NoError(t, err)
				assert.Len(t, cat.Misc, 3)
			},
		},
		{
			name: "with auth enabled",
			cfg: func() config.Config {
				cfg := testConfig()
				cfg.Auth = config.AuthConfig{Enabled: true, JWTSecretKey: "secret"}
				return cfg
			},
			validate: func(t *testing.T, components *ServiceComponents) {
				require.NotNil(t, components.TokenValidator)
				_, err := components.TokenValidator.Validate("not-a-token")
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var db *DatabaseComponents
			if tt.db != nil {
				db = tt.db(t)
			}

			components := InitializeServices(tt.cfg(), db)
			require.NotNil(t, components)
			defer components.Stop()

			tt.validate(t, components)
		})
	}
}

func TestInitializeServices_SessionsUseDefaultCatalog(t *testing.T) {
	components := InitializeServices(testConfig(), nil)
	defer components.Stop()

	store, created := components.Sessions.GetOrCreate("session-1")
	require.True(t, created)

	cat, err := components.Catalog.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.DefaultCatalog(), cat)

	again, created := components.Sessions.GetOrCreate("session-1")
	assert.False(t, created)
	assert.Same(t, store, again)
}

func TestServiceComponents_StopNil(t *testing.T) {
	var components *ServiceComponents
	assert.NotPanics(t, components.Stop)
}
