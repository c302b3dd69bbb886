package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/pizza-cart/internal/logger"
	"github.com/guttosm/pizza-cart/internal/service"
)

// RequestLogger returns a middleware that logs one structured line per request.
// Requests to skipPaths (probes, metrics scraping) are not logged.
func RequestLogger(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if _, ok := skip[path]; ok {
			return
		}

		statusCode := c.Writer.Status()
		ctx := logger.Logger().With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status_code", statusCode).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int("response_size", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent())

		if sessionID := GetSessionID(c); sessionID != "" {
			ctx = ctx.Str("session_id", sessionID)
		}
		if userID, ok := service.UserIDFromContext(c.Request.Context()); ok {
			ctx = ctx.Str("user_id", userID)
		}

		log := ctx.Logger()
		log.WithLevel(levelForStatus(statusCode)).Msg("HTTP request")
	}
}

// levelForStatus maps a response status to a log level.
func levelForStatus(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
