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
	"newsquant/pkg/feed"

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

	var sources []feed.Source
	selectors := make(map[string]string)
	for _, s := range cfg.Sources {
		sources = append(sources, feed.NewRSSSource(s.Name, s.URL))
		if s.Selector != "" {
			selectors[s.Name] = s.Selector
		}
	}
	if cfg.FinnhubKey != "" {
		sources = append(sources, feed.NewFinnhubSource(cfg.FinnhubKey))
	}

	if len(sources) == 0 {
		log.Fatal("no news sources configured (sources.yml empty or missing, and no FINNHUB_API_KEY)")
	}

	extractor := feed.NewPageExtractor(selectors, cfg.MinTextLen)
	repo := repository.NewArticleRepository(db.DB)
	collector := pipeline.NewCollector(extractor, db.Blobs{}, repo)

	total := collector.CollectAll(context.Background(), sources)

	latest, err := repo.LatestPublished()
	if err != nil {
		slog.Error("error reading latest published timestamp", "error", err)
	}

	slog.Info("collector finished", "sources", len(sources), "inserted", total, "latest_published", latest)
}
