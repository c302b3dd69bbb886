package middleware

import (
	"sync"
	"time"

	"github.com/guttosm/pizza-cart/internal/metrics"
)

// cachedResponse is a completed response kept for replay.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        []byte
}

type idempotencyEntry struct {
	fingerprint [32]byte
	response    *cachedResponse
	inFlight    bool
	expiresAt   time.Time
}

// reservation is the outcome of trying to claim an idempotency key.
type reservation int

const (
	reservationNew reservation = iota
	reservationReplay
	reservationInFlight
	reservationConflict
)

// IdempotencyStore holds in-flight and completed responses per idempotency key.
type IdempotencyStore struct {
	mu       sync.Mutex
	items    map[string]*idempotencyEntry
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewIdempotencyStore creates a store whose entries live for ttl.
func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	s := &IdempotencyStore{
		items:  make(map[string]*idempotencyEntry),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go s.startCleanup()
	return s
}

// reserve claims key for a request with the given fingerprint.
// A completed entry with the same fingerprint is returned for replay.
func (s *IdempotencyStore) reserve(key string, fingerprint [32]byte) (reservation, *cachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry, ok := s.items[key]
	if ok && now.After(entry.expiresAt) {
		delete(s.items, key)
		ok = false
	}

	if !ok {
		s.items[key] = &idempotencyEntry{
			fingerprint: fingerprint,
			inFlight:    true,
			expiresAt:   now.Add(s.ttl),
		}
		metrics.RecordCacheOperation("idempotency", "get", "miss")
		return reservationNew, nil
	}

	switch {
	case entry.fingerprint != fingerprint:
		metrics.RecordCacheOperation("idempotency", "get", "conflict")
		return reservationConflict, nil
	case entry.inFlight:
		metrics.RecordCacheOperation("idempotency", "get", "in_flight")
		return reservationInFlight, nil
	default:
		metrics.RecordCacheOperation("idempotency", "get", "hit")
		return reservationReplay, entry.response
	}
}

// complete stores resp for key. A nil resp releases the key so the request can be retried.
func (s *IdempotencyStore) complete(key string, resp *cachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp == nil {
		delete(s.items, key)
		return
	}
	if entry, ok := s.items[key]; ok {
		entry.response = resp
		entry.inFlight = false
		entry.expiresAt = time.Now().Add(s.ttl)
	}
}

// Len returns the number of tracked keys.
func (s *IdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Stop ends background cleanup.
func (s *IdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *IdempotencyStore) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *IdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, key)
		}
	}
}
