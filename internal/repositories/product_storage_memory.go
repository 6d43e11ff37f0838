package repositories

import (
	"context"
	"sync"

	"inventario/internal/models"
)

// MemoryProductStorage is an in-memory implementation of ProductStorage.
// It keeps the encoded document so callers see exactly what would be persisted.
type MemoryProductStorage struct {
	data []byte
	mu   sync.RWMutex
}

// NewMemoryProductStorage creates a new instance of MemoryProductStorage.
func NewMemoryProductStorage() *MemoryProductStorage {
	return &MemoryProductStorage{}
}

// Load decodes the stored document.
func (s *MemoryProductStorage) Load(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeProducts(s.data)
}

// Save encodes and stores the collection.
func (s *MemoryProductStorage) Save(ctx context.Context, products []models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeProducts(products)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Bytes returns a copy of the stored document.
func (s *MemoryProductStorage) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}
