// Command faqbot runs the FAQ query service: it seeds the vector store
// on startup if empty, then serves the question-answering API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/askjersey/faqbot/internal/adapters/dataset"
	"github.com/askjersey/faqbot/internal/app"
	"github.com/askjersey/faqbot/internal/config"
	"github.com/askjersey/faqbot/internal/domain/usecases"
	httpserver "github.com/askjersey/faqbot/internal/infrastructure/http"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A store connection failure degrades the service instead of killing
	// it: /ping stays alive and /api/query answers 503 until restart.
	var answer httpserver.AnswerService
	store, err := app.NewVectorStore(cfg, logger)
	if err != nil {
		logger.Error("vector store unavailable, starting degraded", zap.Error(err))
	} else {
		embedder := app.NewEmbedder(cfg, logger)
		generator := app.NewLLM(cfg, logger)

		seed := usecases.NewSeedUseCase(store, embedder, dataset.NewJSONLoader(), cfg.DatasetPath, logger)
		if _, err := seed.SeedIfEmpty(ctx); err != nil {
			// Ingestion failures are operator-retryable; keep serving
			// whatever the store already holds.
			logger.Error("seeding failed", zap.Error(err))
		}

		answer = usecases.NewAnswerUseCase(embedder, store, generator, cfg.TopK, logger)
	}

	server := httpserver.NewServer(answer, cfg.Server.Addr, logger)
	if err := server.Start(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
