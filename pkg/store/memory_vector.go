package store

import (
	"context"
	"sync"
)

type memoryEntry struct {
	text      string
	embedding []float32
}

// MemoryVectorStore is an in-memory implementation of VectorStore.
// It does not persist entries across restarts.
type MemoryVectorStore struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
}

// NewMemoryVectorStore creates a new in-memory vector store.
func NewMemoryVectorStore() *MemoryVectorStore {
	return &MemoryVectorStore{
		entries: make(map[string]memoryEntry),
	}
}

// Add adds or updates the entry for the given ID.
func (m *MemoryVectorStore) Add(ctx context.Context, id string, text string, embedding []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to avoid external mutations
	m.entries[id] = memoryEntry{
		text:      text,
		embedding: append([]float32(nil), embedding...),
	}
	return nil
}

// Search finds the most similar vectors to the query.
func (m *MemoryVectorStore) Search(ctx context.Context, query []float32, topK int) ([]SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]SearchResult, 0, len(m.entries))
	for id, e := range m.entries {
		results = append(results, SearchResult{
			ID:    id,
			Text:  e.text,
			Score: CosineSimilarity(query, e.embedding),
		})
	}

	return rank(results, topK), nil
}

// Delete removes an entry from the store.
func (m *MemoryVectorStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Count returns the number of stored entries.
func (m *MemoryVectorStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries), nil
}
