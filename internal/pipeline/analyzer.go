package pipeline

import (
	"context"
	"log/slog"

	"newsquant/internal/model"
	"newsquant/pkg/llm"
)

// BlobReader is the analyzer's view of raw-text storage.
type BlobReader interface {
	GetText(ctx context.Context, path string) (string, error)
}

// Backlog is the analyzer's view of the article table.
type Backlog interface {
	Unscored(limit int, maxAttempts int) ([]model.StoredArticle, error)
	UpdateAnalysis(id int64, rec *model.AnalysisRecord) error
	RecordFailure(id int64, maxAttempts int) error
}

// Analyzer drains the backlog of unscored articles in bounded batches.
// Per-article failures never abort a batch: the row keeps its null score,
// its attempt counter is bumped, and the run moves on.
type Analyzer struct {
	repo        Backlog
	blobs       BlobReader
	scorer      llm.Scorer
	batchSize   int
	maxAttempts int
}

func NewAnalyzer(repo Backlog, blobs BlobReader, scorer llm.Scorer, batchSize, maxAttempts int) *Analyzer {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Analyzer{
		repo:        repo,
		blobs:       blobs,
		scorer:      scorer,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

// Run fetches and scores backlog batches until none remain, returning
// the number of articles scored. Each row is touched at most once per
// run: rows that failed this run stay in the backlog query, so the fetch
// widens by the number of known failures and a seen set filters them out.
// The loop ends when a fetch yields no unseen rows.
func (a *Analyzer) Run(ctx context.Context) (int, error) {
	scored := 0
	failed := 0
	seen := make(map[int64]bool)

	for {
		batch, err := a.repo.Unscored(a.batchSize+failed, a.maxAttempts)
		if err != nil {
			return scored, err
		}

		processed := 0
		for _, article := range batch {
			if seen[article.ID] {
				continue
			}
			seen[article.ID] = true
			processed++

			if a.process(ctx, &article) {
				scored++
			} else {
				failed++
			}
		}

		if processed == 0 {
			break
		}
	}

	slog.Info("analysis complete", "scored", scored, "failed", failed)
	return scored, nil
}

func (a *Analyzer) process(ctx context.Context, article *model.StoredArticle) bool {
	text, err := a.blobs.GetText(ctx, article.StoragePath)
	if err != nil {
		slog.Warn("skipping article, text download failed", "article_id", article.ID, "path", article.StoragePath, "error", err)
		a.recordFailure(article.ID)
		return false
	}

	rec, err := a.scorer.Score(ctx, text)
	if err != nil {
		// Malformed output and scorer-reported errors land here alike;
		// both leave the row in the backlog for a future run.
		slog.Warn("skipping article, scoring failed", "article_id", article.ID, "error", err)
		a.recordFailure(article.ID)
		return false
	}

	if err := a.repo.UpdateAnalysis(article.ID, rec); err != nil {
		slog.Error("error saving analysis", "article_id", article.ID, "error", err)
		a.recordFailure(article.ID)
		return false
	}

	slog.Info("article scored", "article_id", article.ID, "ticker", rec.StockTicker,
		"sentiment", rec.SentimentScore, "relevance", rec.RelevanceScore)
	return true
}

func (a *Analyzer) recordFailure(id int64) {
	if err := a.repo.RecordFailure(id, a.maxAttempts); err != nil {
		slog.Error("error recording analysis failure", "article_id", id, "error", err)
	}
}
