package middleware

import (
	"bytes"
	"crypto/sha256"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pizza-cart/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency store.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long completed responses are kept.
	IdempotencyKeyTTL = 5 * time.Minute
	// maxIdempotencyKeyLength bounds client supplied keys.
	maxIdempotencyKeyLength = 255
)

// Idempotency returns a middleware that replays the response of a mutating
// request sent again with the same Idempotency-Key.
//
// Keys are scoped to the cart session. Reusing a key for a different request
// yields 409, as does a retry that arrives while the first attempt is running.
// Only 2xx responses are stored; failures release the key.
func Idempotency(store *IdempotencyStore) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortWithError(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequest)
			return
		}

		scopedKey := GetSessionID(c) + "|" + key
		fingerprint, err := requestFingerprint(c.Request)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}

		state, cached := store.reserve(scopedKey, fingerprint)
		switch state {
		case reservationReplay:
			for k, v := range cached.Headers {
				c.Header(k, v)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		case reservationInFlight, reservationConflict:
			abortWithError(c, http.StatusConflict, i18n.ErrKeyConflict)
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		defer func() {
			status := writer.Status()
			if !writer.Written() || status < 200 || status > 299 {
				store.complete(scopedKey, nil)
				return
			}
			store.complete(scopedKey, &cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Headers:     replayHeaders(writer.Header()),
				Body:        writer.body.Bytes(),
			})
		}()

		c.Next()
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// requestFingerprint hashes method, path and body, restoring the body for handlers.
func requestFingerprint(req *http.Request) ([32]byte, error) {
	hasher := sha256.New()
	_, _ = hasher.Write([]byte(req.Method))
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.Write([]byte(req.URL.Path))
	_, _ = hasher.Write([]byte{0})

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return [32]byte{}, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		_, _ = hasher.Write(body)
	}

	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return sum, nil
}

// replayHeaders keeps the response headers a replay must carry.
func replayHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for _, name := range []string{SessionHeader, "Location"} {
		if v := h.Get(name); v != "" {
			out[name] = v
		}
	}
	return out
}

// captureWriter tees the response body for storage.
type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
