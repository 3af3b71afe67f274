package blob

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// Object is a stored upload.
type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStore keeps objects in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]Object{}}
}

func (m *MemoryStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = Object{ContentType: contentType, Data: data}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) URL(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", common.ErrorNotFound
	}
	return "memory://" + key, nil
}

func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o, ok
}
