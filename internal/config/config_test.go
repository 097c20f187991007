package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	if err != nil {
		t.Fatalf("missing config file should fall back to defaults: %v", err)
	}
	if cfg.Server.Addr != ":5000" {
		t.Errorf("unexpected default addr: %s", cfg.Server.Addr)
	}
	if cfg.Store.Type != "chroma" || cfg.Store.Chroma.Collection != "jersey_faqs" {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.TopK != 3 {
		t.Errorf("expected top_k 3, got %d", cfg.TopK)
	}
	if cfg.DatasetPath != "seed_faq.json" {
		t.Errorf("unexpected dataset path: %s", cfg.DatasetPath)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":8080"
store:
  type: sqlite
  sqlite:
    path: /var/lib/faqbot
embedder:
  model: text-embedding-ada-002
top_k: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)

	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Store.Type != "sqlite" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Store.SQLite.Path != "/var/lib/faqbot" {
		t.Errorf("sqlite path not applied: %s", cfg.Store.SQLite.Path)
	}
	if cfg.Embedder.Model != "text-embedding-ada-002" {
		t.Errorf("embedder model not applied: %s", cfg.Embedder.Model)
	}
	if cfg.TopK != 5 {
		t.Errorf("top_k not applied: %d", cfg.TopK)
	}
	// Untouched sections still get defaults.
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("llm defaults missing: %s", cfg.LLM.Model)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("CHROMA_URL", "http://chroma:8000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("PORT override not applied: %s", cfg.Server.Addr)
	}
	if cfg.Store.Chroma.URL != "http://chroma:8000" {
		t.Errorf("CHROMA_URL override not applied: %s", cfg.Store.Chroma.URL)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("{{{not yaml"), 0o644)

	if _, err := Load(path); err == nil {
		t.Fatal("malformed config should fail loudly")
	}
}

func TestAPIKeyResolution(t *testing.T) {
	t.Setenv("TEST_FAQBOT_KEY", "sk-test")
	c := EmbedderConfig{APIKeyEnv: "TEST_FAQBOT_KEY"}

	if c.APIKey() != "sk-test" {
		t.Errorf("api key not resolved from env, got %q", c.APIKey())
	}
}
