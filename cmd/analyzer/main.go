package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"newsquant/db"
	"newsquant/internal/config"
	"newsquant/internal/pipeline"
	"newsquant/internal/repository"
	"newsquant/pkg/llm"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	err = db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	var scorer llm.Scorer
	switch {
	case cfg.AnthropicKey != "":
		scorer = llm.NewAnthropicScorer(cfg.AnthropicKey)
	case cfg.OpenAIKey != "":
		scorer = llm.NewOpenAIScorer(cfg.OpenAIKey)
	default:
		log.Fatal("no scorer API key configured (ANTHROPIC_API_KEY or OPENAI_API_KEY)")
	}

	repo := repository.NewArticleRepository(db.DB)
	analyzer := pipeline.NewAnalyzer(repo, db.Blobs{}, scorer, cfg.BatchSize, cfg.MaxAttempts)

	scored, err := analyzer.Run(context.Background())
	if err != nil {
		slog.Error("analysis aborted", "scored", scored, "error", err)
		os.Exit(1)
	}

	slog.Info("analyzer finished", "scored", scored)
}
