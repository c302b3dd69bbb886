package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/logger"
	"github.com/guttosm/pizza-cart/internal/service"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "user_id"

// OptionalJWT returns a middleware that resolves the caller's identity from a
// Bearer token. Missing or invalid tokens leave the request anonymous unless
// required is set, in which case they are rejected with 401.
//
// On success the user id and the raw token are put on the request context so
// the cart can attach the user to orders and the order client can forward the token.
func OptionalJWT(validator service.TokenValidator, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validator == nil {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyTokenRequired)
				return
			}
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			rejectOrContinue(c, required, "malformed authorization header")
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			rejectOrContinue(c, required, err.Error())
			return
		}

		userID := claims.ID()
		ctx := service.WithUserID(c.Request.Context(), userID)
		ctx = service.WithBearerToken(ctx, token)
		c.Request = c.Request.WithContext(ctx)
		c.Set(UserIDKey, userID)

		c.Next()
	}
}

func rejectOrContinue(c *gin.Context, required bool, reason string) {
	if required {
		abortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
		return
	}
	log := logger.Logger()
	log.Debug().
		Str("request_id", GetRequestID(c)).
		Str("reason", reason).
		Msg("Ignoring invalid bearer token")
	c.Next()
}

// GetUserID returns the authenticated user id, if any.
func GetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}
