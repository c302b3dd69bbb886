//go:build !integration

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pizza-cart/internal/service"
)

func TestNewShardedRateLimiter(t *testing.T) {
	tests := []struct {
		name       string
		numShards  int
		wantShards int
	}{
		{name: "default shards when zero", numShards: 0, wantShards: defaultNumShards},
		{name: "default shards when negative", numShards: -1, wantShards: defaultNumShards},
		{name: "custom shard count", numShards: 8, wantShards: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(10, time.Minute, tt.numShards)
			defer rl.Stop()

			assert.Len(t, rl.shards, tt.wantShards)
			assert.Equal(t, 10, rl.rate)
		})
	}
}

func TestShardedRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	for want := 2; want >= 0; want-- {
		allowed, remaining, _ := rl.allow("ip:1")
		require.True(t, allowed)
		assert.Equal(t, want, remaining)
	}

	allowed, remaining, resetIn := rl.allow("ip:1")
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.Greater(t, resetIn, time.Duration(0))

	allowed, _, _ = rl.allow("ip:2")
	assert.True(t, allowed, "other identifiers have their own window")
}

func TestShardedRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	defer rl.Stop()

	allowed, _, _ := rl.allow("a")
	require.True(t, allowed)
	allowed, _, _ = rl.allow("a")
	require.False(t, allowed)

	time.Sleep(30 * time.Millisecond)
	allowed, _, _ = rl.allow("a")
	assert.True(t, allowed)
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	router := gin.New()
	router.Use(RequestID(), rl.RateLimit())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := performRequest(router, http.MethodGet, "/test", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := performRequest(router, http.MethodGet, "/test", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.InDelta(t, 60, retryAfter, 1)
}

func TestIdentifierFor(t *testing.T) {
	router := gin.New()
	var ids []string
	router.GET("/anon", func(c *gin.Context) { ids = append(ids, identifierFor(c)) })
	router.GET("/user", func(c *gin.Context) {
		c.Request = c.Request.WithContext(service.WithUserID(c.Request.Context(), "u-1"))
		ids = append(ids, identifierFor(c))
	})

	performRequest(router, http.MethodGet, "/anon", "", nil)
	performRequest(router, http.MethodGet, "/user", "", nil)

	require.Len(t, ids, 2)
	assert.Contains(t, ids[0], "ip:")
	assert.Equal(t, "user:u-1", ids[1])
}

func TestShardedRateLimiter_CleanupAndStop(t *testing.T) {
	rl := NewRateLimiter(5, 10*time.Millisecond)
	_, _, _ = rl.allow("a")
	_, _, _ = rl.allow("b")
	assert.Equal(t, 2, rl.Visitors())

	time.Sleep(30 * time.Millisecond)
	rl.cleanupExpired()
	assert.Equal(t, 0, rl.Visitors())

	rl.Stop()
	rl.Stop()
}

func TestShardedRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(100, time.Minute)
	defer rl.Stop()

	var mu sync.Mutex
	allowedCount := 0
	var wg sync.WaitGroup
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _, _ := rl.allow("shared"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}
