// Package docstore provides the chunk store adapter.
// Clean Architecture: Adapter implementing ports.DocumentStore.
package docstore

import (
	"context"
	"sync"

	"pdfrag/internal/domain/entities"
)

// MemoryStore is an append-only, insertion-ordered in-memory chunk store.
// Lifetime is the process lifetime; nothing is persisted. The mutex keeps
// individual appends and snapshots consistent, but chunk IDs are computed
// from a size observed before the append, so two in-flight ingests can
// still mint overlapping IDs.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks []entities.Chunk
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds a batch of chunks to the end of the store.
func (s *MemoryStore) Append(ctx context.Context, chunks []entities.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = append(s.chunks, chunks...)
	return nil
}

// All returns a snapshot of every stored chunk in insertion order.
func (s *MemoryStore) All(ctx context.Context) ([]entities.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out, nil
}

// Count reports how many chunks are stored.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.chunks), nil
}
