package main

import (
	"encoding/csv"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"newsquant/db"
	"newsquant/internal/config"
	"newsquant/internal/features"
	"newsquant/internal/model"
	"newsquant/internal/repository"
	"newsquant/pkg/prices"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	if cfg.Ticker == "" {
		log.Fatal("TICKER is not set")
	}

	start, err := time.Parse("2006-01-02", cfg.StartDate)
	if err != nil {
		log.Fatalf("invalid START_DATE (expected YYYY-MM-DD): %v", err)
	}
	end, err := time.Parse("2006-01-02", cfg.EndDate)
	if err != nil {
		log.Fatalf("invalid END_DATE (expected YYYY-MM-DD): %v", err)
	}

	err = db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	repo := repository.NewArticleRepository(db.DB)
	priceSource := prices.NewYahooSource(cfg.TickerSuffix)

	series, err := priceSource.DailySeries(cfg.Ticker, start, end)
	if err != nil {
		log.Fatalf("error fetching price history: %v", err)
	}

	scored, err := repo.Scored(cfg.Ticker)
	if err != nil {
		log.Fatalf("error fetching scored articles: %v", err)
	}

	rows, err := features.Assemble(series, scored, cfg.Ticker)
	if err != nil {
		log.Fatalf("error assembling features: %v", err)
	}

	if err := writeCSV(os.Stdout, rows); err != nil {
		log.Fatalf("error writing feature table: %v", err)
	}

	slog.Info("assembler finished", "ticker", cfg.Ticker,
		"rows", len(rows), "articles", len(scored),
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))
}

func writeCSV(f *os.File, rows []model.FeatureRow) error {
	w := csv.NewWriter(f)

	if err := w.Write([]string{"date", "open", "close", "volume", "sentiment_sum", "news_count", "target"}); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.Date.Format("2006-01-02"),
			strconv.FormatFloat(r.Open, 'f', -1, 64),
			strconv.FormatFloat(r.Close, 'f', -1, 64),
			strconv.FormatInt(r.Volume, 10),
			strconv.FormatFloat(r.SentimentSum, 'f', -1, 64),
			strconv.Itoa(r.NewsCount),
			strconv.Itoa(r.Target),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
