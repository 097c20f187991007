// Package usecases - seed.go handles the one-time FAQ ingestion pipeline.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/askjersey/faqbot/internal/domain/entities"
	"github.com/askjersey/faqbot/internal/domain/ports"
)

// SeedUseCase loads the FAQ dataset into the vector store exactly once.
// Single Responsibility: Only ingestion logic.
type SeedUseCase struct {
	store       ports.VectorStore
	embedder    ports.EmbeddingService
	loader      ports.DatasetLoader
	datasetPath string
	logger      *zap.Logger
}

// SeedReport summarizes one ingestion run for the operator.
type SeedReport struct {
	AlreadySeeded bool // store was non-empty, run was a no-op
	Loaded        int  // entries read from the dataset
	Invalid       int  // entries missing a required field
	Duplicates    int  // entries whose id was already seen this run
	EmbedFailures int  // entries skipped because embedding failed
	Added         int  // records in the bulk add
	Total         int  // store count after the run
}

// NewSeedUseCase creates a SeedUseCase with injected dependencies.
func NewSeedUseCase(
	store ports.VectorStore,
	embedder ports.EmbeddingService,
	loader ports.DatasetLoader,
	datasetPath string,
	logger *zap.Logger,
) *SeedUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedUseCase{
		store:       store,
		embedder:    embedder,
		loader:      loader,
		datasetPath: datasetPath,
		logger:      logger,
	}
}

// SeedIfEmpty populates the vector store from the dataset unless it
// already holds records. Re-running never duplicates or mutates existing
// records - a populated store makes the whole run a no-op.
//
// Per-entry problems (missing fields, duplicate ids, a failed embedding)
// are logged and skipped; the batch continues. File-level problems and a
// failed bulk add abort the run with nothing committed.
func (uc *SeedUseCase) SeedIfEmpty(ctx context.Context) (*SeedReport, error) {
	report := &SeedReport{}

	count, err := uc.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting records: %w", err)
	}
	if count > 0 {
		uc.logger.Info("vector store already seeded, skipping ingestion",
			zap.Int("records", count))
		report.AlreadySeeded = true
		report.Total = count
		return report, nil
	}

	entries, err := uc.loader.Load(ctx, uc.datasetPath)
	if err != nil {
		if errors.Is(err, ErrDatasetMissing) || errors.Is(err, ErrDatasetMalformed) {
			return nil, err
		}
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	report.Loaded = len(entries)
	uc.logger.Info("starting FAQ ingestion",
		zap.String("dataset", uc.datasetPath),
		zap.Int("entries", len(entries)))

	seen := make(map[string]struct{}, len(entries))
	var records []entities.VectorRecord

	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			uc.logger.Warn("skipping invalid FAQ entry",
				zap.String("id", entry.ID),
				zap.Error(err))
			report.Invalid++
			continue
		}

		// First occurrence wins; later duplicates are never embedded.
		if _, dup := seen[entry.ID]; dup {
			uc.logger.Warn("skipping duplicate FAQ id", zap.String("id", entry.ID))
			report.Duplicates++
			continue
		}
		seen[entry.ID] = struct{}{}

		embedding, err := uc.embedder.Embed(ctx, entry.EmbeddingText())
		if err != nil {
			uc.logger.Warn("skipping FAQ entry, embedding failed",
				zap.String("id", entry.ID),
				zap.Error(err))
			report.EmbedFailures++
			continue
		}

		records = append(records, entities.NewVectorRecord(entry, embedding))
	}

	if len(records) == 0 {
		uc.logger.Info("no valid FAQ entries to ingest")
		return report, nil
	}

	// Single bulk add for the whole batch. Partial-batch retries are not
	// attempted: a failed add fails the run and the operator re-runs it.
	if err := uc.store.Add(ctx, records); err != nil {
		return nil, fmt.Errorf("bulk add of %d records: %w", len(records), err)
	}
	report.Added = len(records)

	total, err := uc.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting records after add: %w", err)
	}
	report.Total = total

	uc.logger.Info("FAQ ingestion complete",
		zap.Int("added", report.Added),
		zap.Int("invalid", report.Invalid),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("embed_failures", report.EmbedFailures),
		zap.Int("total", report.Total))
	return report, nil
}
