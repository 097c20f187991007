package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/askjersey/faqbot/internal/domain/usecases"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed_faq.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestJSONLoader_Load(t *testing.T) {
	path := writeDataset(t, `[
		{"id": "faq-1", "question": "q1", "answer": "a1", "source": "Law.je", "category": "tax"},
		{"id": "faq-2", "question": "q2", "answer": "a2"}
	]`)

	entries, err := NewJSONLoader().Load(context.Background(), path)

	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "faq-1" || entries[0].Source != "Law.je" || entries[0].Category != "tax" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Source != "" {
		t.Errorf("missing source should default to empty, got %q", entries[1].Source)
	}
}

func TestJSONLoader_NumericIDs(t *testing.T) {
	path := writeDataset(t, `[{"id": 42, "question": "q", "answer": "a"}]`)

	entries, err := NewJSONLoader().Load(context.Background(), path)

	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if entries[0].ID != "42" {
		t.Errorf("numeric id should canonicalize to its string form, got %q", entries[0].ID)
	}
}

func TestJSONLoader_PreservesFileOrder(t *testing.T) {
	path := writeDataset(t, `[
		{"id": "c", "question": "q", "answer": "a"},
		{"id": "a", "question": "q", "answer": "a"},
		{"id": "b", "question": "q", "answer": "a"}
	]`)

	entries, err := NewJSONLoader().Load(context.Background(), path)

	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	ids := []string{entries[0].ID, entries[1].ID, entries[2].ID}
	if ids[0] != "c" || ids[1] != "a" || ids[2] != "b" {
		t.Errorf("file order not preserved: %v", ids)
	}
}

func TestJSONLoader_Missing(t *testing.T) {
	_, err := NewJSONLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))

	if !errors.Is(err, usecases.ErrDatasetMissing) {
		t.Fatalf("expected ErrDatasetMissing, got %v", err)
	}
}

func TestJSONLoader_Malformed(t *testing.T) {
	for name, content := range map[string]string{
		"not json":    `{{{`,
		"not a list":  `{"id": "x"}`,
		"bad id type": `[{"id": {"nested": true}, "question": "q", "answer": "a"}]`,
	} {
		path := writeDataset(t, content)
		_, err := NewJSONLoader().Load(context.Background(), path)
		if !errors.Is(err, usecases.ErrDatasetMalformed) {
			t.Errorf("%s: expected ErrDatasetMalformed, got %v", name, err)
		}
	}
}
