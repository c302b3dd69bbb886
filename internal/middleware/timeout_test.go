//go:build !integration

package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	tests := []struct {
		name       string
		timeout    time.Duration
		handler    gin.HandlerFunc
		wantStatus int
	}{
		{
			name:       "fast request completes",
			timeout:    time.Second,
			handler:    func(c *gin.Context) { c.Status(http.StatusOK) },
			wantStatus: http.StatusOK,
		},
		{
			name:    "context-aware handler times out",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
			},
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:    "response written before deadline is kept",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				c.Status(http.StatusAccepted)
				c.Writer.WriteHeaderNow()
				<-c.Request.Context().Done()
			},
			wantStatus: http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Timeout(tt.timeout))
			router.GET("/test", tt.handler)

			w := performRequest(router, http.MethodGet, "/test", "", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusGatewayTimeout {
				assert.Contains(t, w.Body.String(), "timeout")
			}
		})
	}
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var hasDeadline bool
	router := gin.New()
	router.Use(Timeout(0))
	router.GET("/test", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		hasDeadline = ok && time.Until(deadline) <= DefaultRequestTimeout
		c.Status(http.StatusOK)
	})

	performRequest(router, http.MethodGet, "/test", "", nil)
	assert.True(t, hasDeadline)
}
