// Package vectordb provides vector store adapters.
// Clean Architecture: Adapters implementing ports.VectorStore.
package vectordb

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/askjersey/faqbot/internal/domain/entities"
)

// InMemoryStore is a simple in-process vector store. Used by tests and
// as a zero-dependency development backend; nothing persists.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]entities.VectorRecord
}

// NewInMemoryStore creates a new in-memory vector store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]entities.VectorRecord),
	}
}

// Count returns the current record count.
func (s *InMemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Add bulk-inserts records. A duplicate id silently keeps the first
// record, matching first-occurrence-wins ingestion semantics.
func (s *InMemoryStore) Add(ctx context.Context, records []entities.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		if _, exists := s.records[r.ID]; exists {
			continue
		}
		s.records[r.ID] = r
	}
	return nil
}

// Query returns up to k nearest records by cosine distance, most similar
// first. An empty store yields an empty result, never an error.
func (s *InMemoryStore) Query(ctx context.Context, embedding []float32, k int) ([]entities.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []entities.RetrievedDocument
	for _, r := range s.records {
		distance := 1 - cosineSimilarity(embedding, r.Embedding)
		results = append(results, entities.RetrievedDocument{
			Document: r.Document,
			Metadata: r.Metadata,
			Distance: float32(distance),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
