package blobstore

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. Saves can be made to fail for tests.
type MemoryStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	saves   int
	FailErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailErr != nil {
		return m.FailErr
	}
	m.blobs[key] = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// SetFailure makes subsequent saves return err; nil restores normal behaviour.
func (m *MemoryStore) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailErr = err
}

// Saves reports how many successful writes happened.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
