package cache

import (
	"context"
	"sync"
	"time"
)

// memoryStore is an in-memory Store for tests. It records calls and can be
// told to fail.
type memoryStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	calls   []string
	failAll error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) record(op, key string) {
	m.calls = append(m.calls, op+" "+key)
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("exists", key)
	if m.failAll != nil {
		return false, m.failAll
	}
	_, ok := m.data[key]
	return ok, nil
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("get", key)
	if m.failAll != nil {
		return nil, m.failAll
	}
	b := m.data[key]
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}

func (m *memoryStore) SetEx(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("setex", key)
	if m.failAll != nil {
		return m.failAll
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		m.record("del", k)
	}
	if m.failAll != nil {
		return m.failAll
	}
	for _, k := range keys {
		delete(m.data, k)
		delete(m.ttls, k)
	}
	return nil
}

func (m *memoryStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// countingObserver counts cache outcomes.
type countingObserver struct {
	hits, misses, errors int
}

func (o *countingObserver) CacheHit(string) { o.hits++ }
func (o *countingObserver) CacheMiss(string) { o.misses++ }
func (o *countingObserver) CacheError(string, string) { o.errors++ }
