package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	val       []byte
	expiresAt time.Time
}

// MemoryStore is an in-process TTL cache.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]entry
	ttl   time.Duration

	stop chan struct{}
	once sync.Once
}

// NewMemoryStore creates a store whose entries live for ttl and starts a sweeper that
// removes expired entries every sweep interval. Call Close to stop the sweeper.
func NewMemoryStore(ttl, sweep time.Duration) *MemoryStore {
	s := &MemoryStore{
		store: make(map[string]entry),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	if sweep > 0 {
		go s.cleanup(sweep)
	}
	return s
}

// Get retrieves a value if present and not expired.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.store[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.val, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, val []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[key] = entry{
		val:       append([]byte(nil), val...),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Len counts entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = make(map[string]entry)
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.store {
		if now.After(e.expiresAt) {
			delete(s.store, key)
		}
	}
}
