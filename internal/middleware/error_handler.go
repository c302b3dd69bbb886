package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/i18n"
	"github.com/guttosm/pizza-cart/internal/logger"
)

// ErrorHandler returns a middleware that logs errors attached to the gin context.
// When a handler recorded an error without writing a response, a 500 envelope is sent.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		status := c.Writer.Status()
		log := logger.Logger()
		event := log.Error()
		if c.Writer.Written() && status < http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("request_id", GetRequestID(c)).
			Str("session_id", GetSessionID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", status).
			Strs("errors", c.Errors.Errors()).
			Msg("Request error")

		if !c.Writer.Written() {
			abortWithError(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
		}
	}
}
