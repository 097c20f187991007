// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import "fmt"

// FAQEntry represents one record of the FAQ seed dataset.
// This is a core entity - no knowledge of storage or external services.
type FAQEntry struct {
	ID       string
	Question string
	Answer   string
	Source   string // optional, e.g. "Law.je"
	Category string // optional, e.g. "tax"
}

// Validate checks the required fields. Entries failing validation are
// skipped during ingestion, never embedded or stored.
func (e FAQEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("missing id")
	}
	if e.Question == "" {
		return fmt.Errorf("missing question")
	}
	if e.Answer == "" {
		return fmt.Errorf("missing answer")
	}
	return nil
}

// EmbeddingText renders the entry as the exact text blob that gets
// embedded and stored as the document body. The template must stay
// byte-identical between ingestion and any re-embedding, otherwise
// query-time distances stop being comparable.
func (e FAQEntry) EmbeddingText() string {
	return fmt.Sprintf("Question: %s\nAnswer: %s", e.Question, e.Answer)
}

// Metadata is the per-record payload stored alongside each vector.
type Metadata struct {
	Question string
	Answer   string
	Source   string
	Category string
}

// VectorRecord is the unit handed to the vector store at ingestion time.
// Immutable after insertion - there is no update or upsert path.
type VectorRecord struct {
	ID        string
	Embedding []float32
	Document  string
	Metadata  Metadata
}

// NewVectorRecord builds the stored record for a validated FAQ entry.
func NewVectorRecord(entry FAQEntry, embedding []float32) VectorRecord {
	return VectorRecord{
		ID:        entry.ID,
		Embedding: embedding,
		Document:  entry.EmbeddingText(),
		Metadata: Metadata{
			Question: entry.Question,
			Answer:   entry.Answer,
			Source:   entry.Source,
			Category: entry.Category,
		},
	}
}

// RetrievedDocument is one ranked match from a similarity query.
// Ordered by ascending distance: most similar first.
type RetrievedDocument struct {
	Document string
	Metadata Metadata
	Distance float32
}
