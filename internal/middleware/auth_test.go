//go:build !integration

package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	validKeys := []string{"valid-key-123", "another-valid-key"}

	tests := []struct {
		name           string
		validKeys      []string
		path           string
		headers        map[string]string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "allows request with valid API key in header",
			validKeys:      validKeys,
			path:           "/test",
			headers:        map[string]string{APIKeyHeader: "another-valid-key"},
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:           "allows request with valid API key in query",
			validKeys:      validKeys,
			path:           "/test?api_key=valid-key-123",
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:           "rejects request without API key",
			validKeys:      validKeys,
			path:           "/test",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "API key is required",
		},
		{
			name:           "rejects request with invalid API key",
			validKeys:      validKeys,
			path:           "/test",
			headers:        map[string]string{APIKeyHeader: "invalid-key"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid API key",
		},
		{
			name:           "allows all requests when no keys configured",
			path:           "/test",
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:           "blank keys are ignored",
			validKeys:      []string{""},
			path:           "/test",
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(APIKeyAuth(tt.validKeys))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			w := performRequest(router, http.MethodGet, tt.path, "", tt.headers)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}
