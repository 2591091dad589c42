package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/beautique-shop/storefront/internal/cart/model"
	errx "github.com/beautique-shop/storefront/internal/core/error"
)

// MemoryStorage is a process-local key-value map. Values survive only as
// long as the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Read(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("read %q: %w", key, errx.ErrNotFound)
	}
	return v, nil
}

func (m *MemoryStorage) Write(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

var _ model.Storage = (*MemoryStorage)(nil)
