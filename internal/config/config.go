// Package config loads the application configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ChromaConfig contains connection details for the Chroma backend.
type ChromaConfig struct {
	URL        string `yaml:"url"`
	Collection string `yaml:"collection"`
}

// SQLiteConfig contains the data directory for the SQLite backend.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// StoreConfig selects and configures the vector store backend.
type StoreConfig struct {
	Type   string        `yaml:"type"` // chroma, sqlite or memory
	Chroma *ChromaConfig `yaml:"chroma,omitempty"`
	SQLite *SQLiteConfig `yaml:"sqlite,omitempty"`
}

// EmbedderConfig configures the OpenAI-compatible embeddings client.
type EmbedderConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// LLMConfig configures the OpenAI-compatible chat-completion client.
type LLMConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// Config is the root application configuration structure.
type Config struct {
	Server      ServerConfig   `yaml:"server"`
	Store       StoreConfig    `yaml:"store"`
	Embedder    EmbedderConfig `yaml:"embedder"`
	LLM         LLMConfig      `yaml:"llm"`
	DatasetPath string         `yaml:"dataset_path"`
	TopK        int            `yaml:"top_k"`
}

// Load reads a config from the given path. If the file does not exist,
// returns defaults so the service can run on env vars alone.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// APIKey resolves the embedder API key from its configured env var.
func (c EmbedderConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

// APIKey resolves the LLM API key from its configured env var.
func (c LLMConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "chroma"
	}
	if cfg.Store.Chroma == nil {
		cfg.Store.Chroma = &ChromaConfig{}
	}
	if cfg.Store.Chroma.URL == "" {
		cfg.Store.Chroma.URL = "http://localhost:8000"
	}
	if cfg.Store.Chroma.Collection == "" {
		cfg.Store.Chroma.Collection = "jersey_faqs"
	}
	if cfg.Store.SQLite == nil {
		cfg.Store.SQLite = &SQLiteConfig{}
	}
	if cfg.Store.SQLite.Path == "" {
		cfg.Store.SQLite.Path = "./data"
	}
	if cfg.Embedder.BaseURL == "" {
		cfg.Embedder.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "text-embedding-3-small"
	}
	if cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.DatasetPath == "" {
		cfg.DatasetPath = "seed_faq.json"
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
}

// applyEnvOverrides lets deployment platforms override the listener port
// and Chroma location without a config file.
func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if url := os.Getenv("CHROMA_URL"); url != "" {
		cfg.Store.Chroma.URL = url
	}
}
