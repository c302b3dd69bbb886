package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/logger"
	"github.com/guttosm/pizza-cart/internal/service"
)

const (
	// SessionHeader carries the cart session id in both directions.
	SessionHeader = "X-Cart-Session"
	// SessionIDKey is the gin context key for the session id.
	SessionIDKey = "session_id"
	// CartStoreKey is the gin context key for the session's cart store.
	CartStoreKey = "cart_store"

	maxSessionIDLength = 64
)

// SessionResolver returns the cart store for a session id, creating it when needed.
type SessionResolver interface {
	GetOrCreate(id string) (*cart.Store, bool)
}

// Session returns a middleware that binds the request to a cart session.
// A missing or malformed X-Cart-Session header starts a new session; the
// effective id is always echoed back in the response header.
func Session(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if !validToken(sessionID, maxSessionIDLength) {
			sessionID = uuid.NewString()
		}

		store, created := resolver.GetOrCreate(sessionID)
		if store == nil {
			abortWithError(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
			return
		}
		if created {
			log := logger.ForSession(sessionID)
			log.Debug().Str("request_id", GetRequestID(c)).Msg("Cart session started")
		}

		c.Set(SessionIDKey, sessionID)
		c.Set(CartStoreKey, store)
		c.Request = c.Request.WithContext(service.WithSessionID(c.Request.Context(), sessionID))
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id bound to the request, or "".
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// GetCartStore returns the cart store bound to the request.
func GetCartStore(c *gin.Context) (*cart.Store, bool) {
	v, ok := c.Get(CartStoreKey)
	if !ok {
		return nil, false
	}
	store, ok := v.(*cart.Store)
	return store, ok && store != nil
}
