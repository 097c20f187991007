// Command seed runs the FAQ ingestion pipeline once and exits.
// Idempotent: a populated store makes the run a no-op.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/askjersey/faqbot/internal/adapters/dataset"
	"github.com/askjersey/faqbot/internal/app"
	"github.com/askjersey/faqbot/internal/config"
	"github.com/askjersey/faqbot/internal/domain/usecases"
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

	store, err := app.NewVectorStore(cfg, logger)
	if err != nil {
		logger.Fatal("connecting to vector store", zap.Error(err))
	}

	seed := usecases.NewSeedUseCase(store, app.NewEmbedder(cfg, logger),
		dataset.NewJSONLoader(), cfg.DatasetPath, logger)

	report, err := seed.SeedIfEmpty(context.Background())
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	if report.AlreadySeeded {
		logger.Info("store already seeded, nothing to do", zap.Int("total", report.Total))
		return
	}
	logger.Info("seeding finished",
		zap.Int("loaded", report.Loaded),
		zap.Int("added", report.Added),
		zap.Int("invalid", report.Invalid),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("embed_failures", report.EmbedFailures),
		zap.Int("total", report.Total))
}
