package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/i18n"
)

// DefaultRequestTimeout is used when Timeout is given a non-positive duration.
const DefaultRequestTimeout = 30 * time.Second

// Timeout returns a middleware that puts a deadline on the request context.
// Handlers run on the request goroutine and are expected to honour the context;
// if the deadline passed and nothing was written, a 504 envelope is sent.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			abortWithError(c, http.StatusGatewayTimeout, i18n.ErrKeyTimeout)
		}
	}
}
