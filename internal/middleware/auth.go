package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth returns a middleware that guards operator endpoints with API keys.
// The X-API-Key header is checked first, then the api_key query parameter.
// If validKeys is empty, authentication is disabled.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	keys := make([][]byte, 0, len(validKeys))
	for _, k := range validKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		if key == "" {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}

		if !matchesAny(keys, []byte(key)) {
			abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Next()
	}
}

func matchesAny(keys [][]byte, candidate []byte) bool {
	found := false
	for _, k := range keys {
		if subtle.ConstantTimeCompare(k, candidate) == 1 {
			found = true
		}
	}
	return found
}
