package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Key identifies one provider lookup. Every parameter that affects the
// result is a field, so two call sites can never disagree on parameter
// order the way ad-hoc string concatenation lets them.
type Key struct {
	Kind        string
	Origin      string
	Destination string
	CheckIn     string
	CheckOut    string
	Adults      int
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d",
		k.Kind, k.Origin, k.Destination, k.CheckIn, k.CheckOut, k.Adults)
}

// Store is a TTL'd byte store. A hit returns exactly the value last stored
// for the key within its TTL window.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Store with lazy expiry on read plus a periodic
// background sweep. Entries are only ever invalidated by TTL.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
	once    sync.Once
}

func NewMemory() *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Close stops the background sweeper.
func (m *Memory) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *Memory) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, entry := range m.entries {
				if now.After(entry.expiresAt) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}
