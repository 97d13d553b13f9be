package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps records in a map. It backs tests and the "memory"
// backend, which forgets everything on exit.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
	// Fail, when set, is returned by every Write.
	Fail error
	// FailOn limits Fail to one key, whose Erase then fails too.
	FailOn string
}

var _ Persistence = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Read(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Write(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil && (m.FailOn == "" || m.FailOn == key) {
		return m.Fail
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Erase(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil && m.FailOn == key {
		return m.Fail
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Close() error { return nil }
