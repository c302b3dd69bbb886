package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/domain/dto"
	"github.com/guttosm/pizza-cart/internal/middleware"
	"github.com/guttosm/pizza-cart/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// performRequest sends a request through router and returns the recorder.
func performRequest(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a SuccessResponse into out.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) dto.SuccessResponse {
	t.Helper()
	var envelope struct {
		dto.SuccessResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.SuccessResponse
}

// decodeError unmarshals an ErrorResponse.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// newTestSessions returns a session registry whose carts use deps.
func newTestSessions(t *testing.T, deps cart.Dependencies) *service.SessionRegistry {
	t.Helper()
	sessions := service.NewSessionRegistry(100, time.Hour, 4, func() *cart.Store {
		return cart.NewStore(deps)
	})
	t.Cleanup(sessions.Stop)
	return sessions
}

// newTestIdempotency returns an idempotency store stopped at test end.
func newTestIdempotency(t *testing.T) *middleware.IdempotencyStore {
	t.Helper()
	store := middleware.NewIdempotencyStore(time.Minute)
	t.Cleanup(store.Stop)
	return store
}
