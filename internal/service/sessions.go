package service

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/pizza-cart/internal/cart"
	"github.com/guttosm/pizza-cart/internal/metrics"
)

// SessionStats reports registry counters.
type SessionStats struct {
	Active    int
	Capacity  int
	Created   int64
	Evictions int64
	Expired   int64
}

// SessionRegistry maps session ids to their cart stores.
// Entries are distributed across shards to reduce lock contention; each shard
// evicts its least recently used cart when full and drops carts idle longer than the TTL.
type SessionRegistry struct {
	shards    []*sessionShard
	shardMask uint32
	factory   func() *cart.Store
	active    int64
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewSessionRegistry creates a registry holding up to capacity carts.
// numShards is rounded up to a power of 2, then halved while it exceeds
// capacity so that the shards together never hold more than capacity carts.
func NewSessionRegistry(capacity int, ttl time.Duration, numShards int, factory func() *cart.Store) *SessionRegistry {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}
	for capacity > 0 && n > capacity {
		n /= 2
	}
	numShards = n

	perShard := capacity / numShards
	if perShard < 1 {
		perShard = 1
	}

	r := &SessionRegistry{
		shards:    make([]*sessionShard, numShards),
		shardMask: uint32(numShards - 1),
		factory:   factory,
		stopCh:    make(chan struct{}),
	}
	for i := range r.shards {
		r.shards[i] = &sessionShard{
			capacity: perShard,
			ttl:      ttl,
			items:    make(map[string]*sessionEntry, perShard),
			registry: r,
		}
	}

	go r.startCleanup(ttl)
	return r
}

func (r *SessionRegistry) shard(id string) *sessionShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return r.shards[h.Sum32()&r.shardMask]
}

// GetOrCreate returns the cart of session id, creating an empty one if needed.
func (r *SessionRegistry) GetOrCreate(id string) (*cart.Store, bool) {
	return r.shard(id).getOrCreate(id)
}

// Get returns the cart of session id if it is still alive.
func (r *SessionRegistry) Get(id string) (*cart.Store, bool) {
	return r.shard(id).get(id)
}

// Remove ends session id.
func (r *SessionRegistry) Remove(id string) {
	r.shard(id).remove(id)
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	return int(atomic.LoadInt64(&r.active))
}

// Stats returns aggregated registry counters.
func (r *SessionRegistry) Stats() SessionStats {
	var total SessionStats
	for _, s := range r.shards {
		s.mu.Lock()
		total.Capacity += s.capacity
		total.Created += s.created
		total.Evictions += s.evictions
		total.Expired += s.expired
		s.mu.Unlock()
	}
	total.Active = r.Len()
	return total
}

// Stop halts the background cleanup.
func (r *SessionRegistry) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}

func (r *SessionRegistry) startCleanup(ttl time.Duration) {
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	if interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCh:
			return
		}
	}
}

func (r *SessionRegistry) cleanup() {
	for _, s := range r.shards {
		s.cleanup()
	}
}

func (r *SessionRegistry) adjustActive(delta int64) {
	metrics.SetActiveSessions(int(atomic.AddInt64(&r.active, delta)))
}

// sessionEntry is a cart in the shard's LRU list.
type sessionEntry struct {
	id         string
	store      *cart.Store
	lastAccess time.Time
	prev       *sessionEntry
	next       *sessionEntry
}

type sessionShard struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*sessionEntry
	head      *sessionEntry
	tail      *sessionEntry
	created   int64
	evictions int64
	expired   int64
	registry  *SessionRegistry
}

func (s *sessionShard) getOrCreate(id string) (*cart.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if entry, ok := s.items[id]; ok {
		if !s.isExpired(entry, now) {
			entry.lastAccess = now
			s.moveToFront(entry)
			return entry.store, false
		}
		s.removeEntry(entry)
		s.expired++
		metrics.RecordSessionEviction("idle")
	}

	entry := &sessionEntry{
		id:         id,
		store:      s.registry.factory(),
		lastAccess: now,
	}
	s.items[id] = entry
	s.addToFront(entry)
	s.created++
	s.registry.adjustActive(1)

	if len(s.items) > s.capacity {
		s.removeEntry(s.tail)
		s.evictions++
		metrics.RecordSessionEviction("capacity")
	}
	return entry.store, true
}

func (s *sessionShard) get(id string) (*cart.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[id]
	if !ok {
		return nil, false
	}
	now := time.Now()
	if s.isExpired(entry, now) {
		s.removeEntry(entry)
		s.expired++
		metrics.RecordSessionEviction("idle")
		return nil, false
	}
	entry.lastAccess = now
	s.moveToFront(entry)
	return entry.store, true
}

func (s *sessionShard) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.items[id]; ok {
		s.removeEntry(entry)
	}
}

// cleanup walks from the least recently used end and drops idle carts.
func (s *sessionShard) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for entry := s.tail; entry != nil && s.isExpired(entry, now); entry = s.tail {
		s.removeEntry(entry)
		s.expired++
		metrics.RecordSessionEviction("idle")
	}
}

func (s *sessionShard) isExpired(entry *sessionEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastAccess) > s.ttl
}

func (s *sessionShard) removeEntry(entry *sessionEntry) {
	delete(s.items, entry.id)
	s.unlink(entry)
	s.registry.adjustActive(-1)
}

func (s *sessionShard) moveToFront(entry *sessionEntry) {
	if entry == s.head {
		return
	}
	s.unlink(entry)
	s.addToFront(entry)
}

func (s *sessionShard) addToFront(entry *sessionEntry) {
	entry.prev = nil
	entry.next = s.head
	if s.head != nil {
		s.head.prev = entry
	}
	s.head = entry
	if s.tail == nil {
		s.tail = entry
	}
}

func (s *sessionShard) unlink(entry *sessionEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		s.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		s.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}
