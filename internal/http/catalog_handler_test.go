//go:build !integration

package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pizza-cart/internal/domain/model"
	"github.com/guttosm/pizza-cart/internal/middleware"
	"github.com/guttosm/pizza-cart/internal/mocks"
	"github.com/guttosm/pizza-cart/internal/service"
)

func newCatalogRouter(catalog service.CatalogService, apiKeys []string) *gin.Engine {
	return NewRouter(NewHealthHandler(), RouterConfig{
		Catalog: catalog,
		APIKeys: apiKeys,
	})
}

func TestCatalogHandler_GetCatalog(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(m *mocks.MockCatalogService)
		expectedCode int
		validate     func(t *testing.T, body string)
	}{
		{
			name: "returns catalog",
			setup: func(m *mocks.MockCatalogService) {
				m.On("Catalog", mock.Anything).Return(service.DefaultCatalog(), nil)
			},
			expectedCode: http.StatusOK,
			validate: func(t *testing.T, body string) {
				assert.Contains(t, body, `"doughs"`)
				assert.Contains(t, body, "Mushrooms")
			},
		},
		{
			name: "source failure",
			setup: func(m *mocks.MockCatalogService) {
				m.On("Catalog", mock.Anything).Return(nil, errors.New("mongo down"))
			},
			expectedCode: http.StatusServiceUnavailable,
			validate: func(t *testing.T, body string) {
				assert.Contains(t, body, "service_unavailable")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := new(mocks.MockCatalogService)
			tt.setup(catalog)

			w := performRequest(newCatalogRouter(catalog, nil), http.MethodGet, "/api/catalog", "", nil)

			assert.Equal(t, tt.expectedCode, w.Code)
			tt.validate(t, w.Body.String())
			assert.Empty(t, w.Header().Get(middleware.SessionHeader), "catalog reads do not start cart sessions")
			catalog.AssertExpectations(t)
		})
	}
}

func TestCatalogHandler_Refresh(t *testing.T) {
	tests := []struct {
		name         string
		apiKeys      []string
		headers      map[string]string
		refreshErr   error
		expectedCode int
		expectCall   bool
	}{
		{name: "open when no keys configured", expectedCode: http.StatusOK, expectCall: true},
		{name: "valid key", apiKeys: []string{"k"}, headers: map[string]string{middleware.APIKeyHeader: "k"}, expectedCode: http.StatusOK, expectCall: true},
		{name: "missing key", apiKeys: []string{"k"}, expectedCode: http.StatusUnauthorized},
		{name: "wrong key", apiKeys: []string{"k"}, headers: map[string]string{middleware.APIKeyHeader: "x"}, expectedCode: http.StatusUnauthorized},
		{name: "reload failure", refreshErr: errors.New("boom"), expectedCode: http.StatusServiceUnavailable, expectCall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := new(mocks.MockCatalogService)
			if tt.refreshErr != nil {
				catalog.On("Refresh", mock.Anything).Return(nil, tt.refreshErr)
			} else {
				catalog.On("Refresh", mock.Anything).Return(model.EmptyCatalog(), nil)
			}

			w := performRequest(newCatalogRouter(catalog, tt.apiKeys), http.MethodPost, "/api/catalog/refresh", "", tt.headers)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectCall {
				catalog.AssertCalled(t, "Refresh", mock.Anything)
			} else {
				catalog.AssertNotCalled(t, "Refresh", mock.Anything)
			}
		})
	}
}
