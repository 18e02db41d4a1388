package flash

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory flash store. It's the default store and
// suitable for single-server deployments; use SQLStore when flashes must
// survive a process restart or be visible across servers.
type MemoryStore struct {
	mu      sync.RWMutex
	flashes map[string]*storedFlash
	closed  bool
	done    chan struct{}
}

type storedFlash struct {
	flash     Flash
	expiresAt time.Time
}

// MemoryStoreOption configures MemoryStore behavior.
type MemoryStoreOption func(*memoryStoreConfig)

type memoryStoreConfig struct {
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired flashes are swept.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		c.cleanupInterval = d
	}
}

// NewMemoryStore creates a new in-memory flash store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	cfg := &memoryStoreConfig{
		cleanupInterval: 1 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	store := &MemoryStore{
		flashes: make(map[string]*storedFlash),
		done:    make(chan struct{}),
	}

	go store.cleanupLoop(cfg.cleanupInterval)
	return store
}

// Put saves the flash under id until expiresAt.
func (m *MemoryStore) Put(ctx context.Context, id string, f Flash, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	// Store a copy so later mutations by the caller don't leak in.
	m.flashes[id] = &storedFlash{
		flash:     f.clone(),
		expiresAt: expiresAt,
	}
	return nil
}

// Take returns and removes the flash stored under id.
func (m *MemoryStore) Take(ctx context.Context, id string) (*Flash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrStoreClosed{}
	}

	s, ok := m.flashes[id]
	if !ok {
		return nil, nil
	}
	delete(m.flashes, id)

	if time.Now().After(s.expiresAt) {
		return nil, nil
	}

	f := s.flash.clone()
	return &f, nil
}

// Close shuts down the store and releases resources.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true
	close(m.done)
	m.flashes = nil
	return nil
}

// Count returns the number of stored flashes. For monitoring/testing.
func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.flashes)
}

// cleanupLoop periodically removes expired flashes.
func (m *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	now := time.Now()
	for id, s := range m.flashes {
		if now.After(s.expiresAt) {
			delete(m.flashes, id)
		}
	}
}
