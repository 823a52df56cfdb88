package repository

import (
	"context"
	"sync"

	repo "storefront/internal/repository"
)

// ClientStorageMemory はDB無しで動かすときとテスト用のインメモリ実装。
type ClientStorageMemory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewClientStorageMemory() *ClientStorageMemory {
	return &ClientStorageMemory{data: map[string]string{}}
}

func (r *ClientStorageMemory) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (r *ClientStorageMemory) Set(_ context.Context, key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = value
	return nil
}

func (r *ClientStorageMemory) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}
