// Package app wires configuration to concrete adapters.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/askjersey/faqbot/internal/adapters/embedding"
	"github.com/askjersey/faqbot/internal/adapters/llm"
	"github.com/askjersey/faqbot/internal/adapters/vectordb"
	"github.com/askjersey/faqbot/internal/config"
	"github.com/askjersey/faqbot/internal/domain/ports"
)

// NewVectorStore builds the configured vector store backend.
func NewVectorStore(cfg *config.Config, logger *zap.Logger) (ports.VectorStore, error) {
	switch cfg.Store.Type {
	case "chroma":
		return vectordb.NewChromaStore(cfg.Store.Chroma.URL, cfg.Store.Chroma.Collection, logger)
	case "sqlite":
		return vectordb.NewSQLiteStore(cfg.Store.SQLite.Path, logger)
	case "memory":
		return vectordb.NewInMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

// NewEmbedder builds the embeddings client.
func NewEmbedder(cfg *config.Config, logger *zap.Logger) ports.EmbeddingService {
	return embedding.NewOpenAIAdapter(cfg.Embedder.BaseURL, cfg.Embedder.APIKey(), cfg.Embedder.Model, logger)
}

// NewLLM builds the chat-completion client.
func NewLLM(cfg *config.Config, logger *zap.Logger) ports.LLMService {
	return llm.NewOpenAIAdapter(cfg.LLM.BaseURL, cfg.LLM.APIKey(), cfg.LLM.Model, logger)
}
