// Package dataset provides the FAQ seed dataset loader.
// Clean Architecture: Adapter implementing ports.DatasetLoader.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/askjersey/faqbot/internal/domain/entities"
	"github.com/askjersey/faqbot/internal/domain/usecases"
)

// JSONLoader reads a JSON array of FAQ records (seed_faq.json format).
type JSONLoader struct{}

// NewJSONLoader creates a new JSON dataset loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// flexID accepts a JSON string or number; the canonical form is the
// string rendering either way.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

// rawEntry is the wire form of one dataset record.
type rawEntry struct {
	ID       flexID `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
	Category string `json:"category"`
}

// Load parses the dataset at path, preserving file order.
// A missing file maps to ErrDatasetMissing, an unparseable one to
// ErrDatasetMalformed; both abort the ingestion run.
func (l *JSONLoader) Load(ctx context.Context, path string) ([]entities.FAQEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", usecases.ErrDatasetMissing, path)
		}
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", usecases.ErrDatasetMalformed, path, err)
	}

	entries := make([]entities.FAQEntry, len(raw))
	for i, r := range raw {
		entries[i] = entities.FAQEntry{
			ID:       string(r.ID),
			Question: r.Question,
			Answer:   r.Answer,
			Source:   r.Source,
			Category: r.Category,
		}
	}
	return entries, nil
}
