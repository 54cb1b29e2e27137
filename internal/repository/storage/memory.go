package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps values in process memory. Nothing survives a restart.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (that *MemoryStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.values[key]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), value...), true, nil
}

func (that *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values[key] = append([]byte(nil), value...)

	return nil
}

func (that *MemoryStorage) SetMany(_ context.Context, values map[string][]byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	for key, value := range values {
		that.values[key] = append([]byte(nil), value...)
	}

	return nil
}

func (that *MemoryStorage) Close() error {
	return nil
}
