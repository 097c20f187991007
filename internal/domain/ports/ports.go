// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/askjersey/faqbot/internal/domain/entities"
)

// EmbeddingService turns text into a fixed-length vector using a named
// embedding model. The model must stay constant across ingestion and
// query - mixing models produces meaningless distances.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// LLMService generates an answer from a hosted chat-completion model.
// Single Responsibility: Only generation, no embedding logic.
type LLMService interface {
	// Complete sends a system and user prompt and returns the generated text.
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error)
}

// VectorStore is a durable nearest-neighbor index keyed by entry ID.
// Dependency Inversion: Usecases depend on this abstraction, not on
// Chroma or SQLite directly.
type VectorStore interface {
	// Count returns the current record count of the collection.
	Count(ctx context.Context) (int, error)

	// Add bulk-inserts records. Duplicate-id behavior is delegated to the
	// backing store; implementations log a warning rather than fail.
	Add(ctx context.Context, records []entities.VectorRecord) error

	// Query returns up to k nearest records for the embedding, most
	// similar first. An empty collection yields an empty result, not an
	// error.
	Query(ctx context.Context, embedding []float32, k int) ([]entities.RetrievedDocument, error)
}

// DatasetLoader reads the FAQ seed dataset from disk.
type DatasetLoader interface {
	// Load parses the dataset at path into entries, preserving file order.
	Load(ctx context.Context, path string) ([]entities.FAQEntry, error)
}
