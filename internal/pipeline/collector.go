package pipeline

import (
	"context"
	"log/slog"

	"newsquant/internal/model"
	"newsquant/pkg/feed"
)

// BlobStore is the collector's view of raw-text storage. PutText is
// idempotent: created=false means the key already held this article's
// text, which is expected on re-runs and treated as success.
type BlobStore interface {
	PutText(ctx context.Context, key string, text string) (path string, created bool, err error)
}

// ArticleSaver persists article metadata. Save reports (false, nil) on a
// url conflict, the benign already-known case.
type ArticleSaver interface {
	Save(article *model.StoredArticle) (bool, error)
}

// Collector drives the discovery → extraction → storage phase for one or
// many feeds. Safe to re-run against the same feeds: the blob store and
// the url constraint make every write idempotent.
type Collector struct {
	extractor feed.Extractor
	blobs     BlobStore
	repo      ArticleSaver
}

func NewCollector(extractor feed.Extractor, blobs BlobStore, repo ArticleSaver) *Collector {
	return &Collector{extractor: extractor, blobs: blobs, repo: repo}
}

// Collect processes every reference one source currently lists and
// returns the number of newly inserted articles. A source failure is
// non-fatal: it logs and returns zero so other sources can proceed.
func (c *Collector) Collect(ctx context.Context, src feed.Source) int {
	refs, err := src.List()
	if err != nil {
		slog.Error("error listing feed", "source", src.Name(), "error", err)
		return 0
	}

	var inserted, duplicated, skipped, failed int

	for _, ref := range refs {
		text, err := c.extractor.Extract(ref.URL, ref.Source)
		if err != nil {
			slog.Warn("skipping article, extraction failed", "source", src.Name(), "url", ref.URL, "error", err)
			skipped++
			continue
		}

		path, created, err := c.blobs.PutText(ctx, model.BlobKey(ref.URL), text)
		if err != nil {
			slog.Error("error storing article text", "source", src.Name(), "url", ref.URL, "error", err)
			failed++
			continue
		}
		if !created {
			slog.Info("article text already stored", "source", src.Name(), "path", path)
		}

		article := model.StoredArticle{
			Title:       ref.Title,
			URL:         ref.URL,
			Source:      ref.Source,
			PublishedAt: ref.PublishedAt.UTC(),
			StoragePath: path,
		}

		ok, err := c.repo.Save(&article)
		if err != nil {
			slog.Error("error saving article", "source", src.Name(), "url", ref.URL, "error", err)
			failed++
			continue
		}
		if !ok {
			duplicated++
			continue
		}

		inserted++
	}

	slog.Info("collection complete", "source", src.Name(),
		"inserted", inserted, "duplicated", duplicated, "skipped", skipped, "errors", failed)

	return inserted
}

// CollectAll runs Collect over each source in order and returns the
// total inserted across all of them.
func (c *Collector) CollectAll(ctx context.Context, sources []feed.Source) int {
	total := 0
	for _, src := range sources {
		total += c.Collect(ctx, src)
	}
	return total
}
