package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in process memory. Used by tests.
type MemoryBackend struct {
	mu   sync.Mutex
	docs map[string][]byte

	// FailWrites makes every Write return the given error when set.
	FailWrites error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(_ context.Context, name string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.docs[name]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) Write(_ context.Context, name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailWrites != nil {
		return b.FailWrites
	}
	b.docs[name] = append([]byte(nil), data...)
	return nil
}
