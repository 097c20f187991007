// Package vectordb - sqlite.go is the local persistent vector store.
// Brute-force cosine ranking over all rows; fine at FAQ-dataset scale.
package vectordb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"

	"github.com/askjersey/faqbot/internal/domain/entities"
)

// SQLiteStore implements ports.VectorStore with SQLite-based persistence.
// An alternative to the Chroma backend for single-host deployments.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) the store under dataPath.
func NewSQLiteStore(dataPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "faqs.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

// initSchema creates the necessary table.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS faqs (
		id TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		embedding BLOB NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		source TEXT,
		category TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Count returns the current record count.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM faqs").Scan(&count)
	return count, err
}

// Add bulk-inserts records in one transaction. Records are immutable
// after insertion: an already-present id is ignored and warned about,
// never overwritten.
func (s *SQLiteStore) Add(ctx context.Context, records []entities.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO faqs (id, document, embedding, question, answer, source, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		embeddingJSON, err := json.Marshal(r.Embedding)
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}

		res, err := stmt.ExecContext(ctx,
			r.ID,
			r.Document,
			embeddingJSON,
			r.Metadata.Question,
			r.Metadata.Answer,
			r.Metadata.Source,
			r.Metadata.Category,
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			s.logger.Warn("record id already present, keeping existing record",
				zap.String("id", r.ID))
		}
	}

	return tx.Commit()
}

// Query returns up to k nearest records by cosine distance, most similar
// first. An empty table yields an empty result, never an error.
func (s *SQLiteStore) Query(ctx context.Context, embedding []float32, k int) ([]entities.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT document, embedding, question, answer, source, category
		FROM faqs
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var results []entities.RetrievedDocument
	for rows.Next() {
		var doc entities.RetrievedDocument
		var embeddingJSON []byte
		var source, category sql.NullString

		err := rows.Scan(&doc.Document, &embeddingJSON,
			&doc.Metadata.Question, &doc.Metadata.Answer, &source, &category)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		doc.Metadata.Source = source.String
		doc.Metadata.Category = category.String

		var stored []float32
		if err := json.Unmarshal(embeddingJSON, &stored); err != nil {
			continue // Skip corrupted embeddings
		}

		doc.Distance = float32(1 - cosineSimilarity(embedding, stored))
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
