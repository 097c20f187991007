// Package vectordb - chroma.go is the ChromaDB-backed vector store.
// The default backend: the collection persists server-side and nearest-
// neighbor search is delegated to Chroma's own index and distance metric.
package vectordb

import (
	"context"
	"fmt"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"go.uber.org/zap"

	"github.com/askjersey/faqbot/internal/domain/entities"
)

// ChromaStore implements ports.VectorStore on a named Chroma collection.
type ChromaStore struct {
	collection chroma.Collection
	logger     *zap.Logger
}

// NewChromaStore connects to the Chroma server and gets or creates the
// named collection. Safe to call on every process start; a connection
// failure here puts the service into degraded mode rather than crashing it.
func NewChromaStore(url, collectionName string, logger *zap.Logger) (*ChromaStore, error) {
	if url == "" {
		url = "http://localhost:8000"
	}
	if collectionName == "" {
		collectionName = "jersey_faqs"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := chroma.NewHTTPClient(chroma.WithBaseURL(url))
	if err != nil {
		return nil, fmt.Errorf("creating chroma client: %w", err)
	}

	// Embeddings are computed by our own adapter, so the collection
	// carries no embedding function of its own.
	collection, err := client.GetOrCreateCollection(context.Background(), collectionName,
		chroma.WithHNSWSpaceCreate(embeddings.L2))
	if err != nil {
		return nil, fmt.Errorf("getting collection %q: %w", collectionName, err)
	}

	logger.Info("chroma collection ready",
		zap.String("url", url),
		zap.String("collection", collectionName))
	return &ChromaStore{collection: collection, logger: logger}, nil
}

// Count returns the current record count of the collection.
func (s *ChromaStore) Count(ctx context.Context) (int, error) {
	count, err := s.collection.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting collection: %w", err)
	}
	return count, nil
}

// Add bulk-inserts records. Duplicate-id behavior is whatever the Chroma
// server does with them; a failed add fails the whole batch.
func (s *ChromaStore) Add(ctx context.Context, records []entities.VectorRecord) error {
	ids := make([]chroma.DocumentID, len(records))
	embs := make([]embeddings.Embedding, len(records))
	documents := make([]string, len(records))
	metadatas := make([]chroma.DocumentMetadata, len(records))

	for i, r := range records {
		ids[i] = chroma.DocumentID(r.ID)
		embs[i] = embeddings.NewEmbeddingFromFloat32(r.Embedding)
		documents[i] = r.Document
		meta, err := chroma.NewDocumentMetadataFromMap(map[string]interface{}{
			"question": r.Metadata.Question,
			"answer":   r.Metadata.Answer,
			"source":   r.Metadata.Source,
			"category": r.Metadata.Category,
		})
		if err != nil {
			return fmt.Errorf("building metadata for record %q: %w", r.ID, err)
		}
		metadatas[i] = meta
	}

	err := s.collection.Add(ctx,
		chroma.WithIDs(ids...),
		chroma.WithEmbeddings(embs...),
		chroma.WithTexts(documents...),
		chroma.WithMetadatas(metadatas...),
	)
	if err != nil {
		return fmt.Errorf("adding %d records: %w", len(records), err)
	}
	return nil
}

// Query returns up to k nearest records, most similar first. An empty
// collection yields an empty result, never an error.
func (s *ChromaStore) Query(ctx context.Context, embedding []float32, k int) ([]entities.RetrievedDocument, error) {
	qr, err := s.collection.Query(ctx,
		chroma.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(embedding)),
		chroma.WithNResults(k),
	)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}
	docGroups := qr.GetDocumentsGroups()
	if len(docGroups) == 0 || len(docGroups[0]) == 0 {
		return nil, nil
	}

	// A single query embedding means a single result group.
	docs := docGroups[0]
	metaGroups := qr.GetMetadatasGroups()
	distGroups := qr.GetDistancesGroups()

	results := make([]entities.RetrievedDocument, 0, len(docs))
	for i, doc := range docs {
		var meta entities.Metadata
		if len(metaGroups) > 0 && i < len(metaGroups[0]) && metaGroups[0][i] != nil {
			m := metaGroups[0][i]
			meta = entities.Metadata{
				Question: metaString(m, "question"),
				Answer:   metaString(m, "answer"),
				Source:   metaString(m, "source"),
				Category: metaString(m, "category"),
			}
		}
		var distance float32
		if len(distGroups) > 0 && i < len(distGroups[0]) {
			distance = float32(distGroups[0][i])
		}
		results = append(results, entities.RetrievedDocument{
			Document: doc.ContentString(),
			Metadata: meta,
			Distance: distance,
		})
	}
	return results, nil
}

// metaString pulls a string value out of Chroma document metadata.
func metaString(m chroma.DocumentMetadata, key string) string {
	if v, ok := m.GetString(key); ok {
		return v
	}
	return ""
}
