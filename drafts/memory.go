package drafts

import (
	"context"
	"sync"
)

// MemoryStore keeps the encoded draft in process memory. Each Load decodes a
// fresh copy, so callers never share a tree with the store. The CLI uses it
// for the built-in sample quote; tests use it in place of a file or record.
type MemoryStore struct {
	mu  sync.RWMutex
	raw []byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.raw == nil {
		return Draft{}, ErrNotFound
	}
	return Decode(s.raw)
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, d Draft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := Encode(d)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.raw = b
	s.mu.Unlock()
	return nil
}
