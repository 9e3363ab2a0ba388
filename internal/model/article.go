package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

const (
	StatusPending = "pending"
	StatusScored  = "scored"
	StatusFailed  = "failed"
)

// ArticleReference is what a feed source knows about an article before
// its body has been fetched.
type ArticleReference struct {
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
}

// StoredArticle is one row of the articles table. Analysis fields are
// pointers because they stay NULL until the analyzer scores the row.
type StoredArticle struct {
	ID               int64
	Title            string
	URL              string
	Source           string
	PublishedAt      time.Time
	StoragePath      string
	SentimentScore   *float64
	RelevanceScore   *int
	StockTicker      *string
	TopicCategory    *string
	Reasoning        *string
	SecondaryTickers []string
	AnalysisAttempts int
	AnalysisStatus   string
	FetchedAt        time.Time
}

// ScoredArticle is the subset of a StoredArticle the assembler and the
// dashboard feed need; scores are non-null by construction.
type ScoredArticle struct {
	ID             int64
	Title          string
	URL            string
	Source         string
	PublishedAt    time.Time
	StockTicker    string
	SentimentScore float64
	RelevanceScore int
	TopicCategory  string
	Reasoning      string
}

// AnalysisRecord is the scorer's structured verdict on one article.
type AnalysisRecord struct {
	StockTicker      string   `json:"stock_ticker"`
	SentimentScore   float64  `json:"sentiment_score"`
	RelevanceScore   int      `json:"relevance_score"`
	TopicCategory    string   `json:"topic_category"`
	Reasoning        string   `json:"reasoning"`
	SecondaryTickers []string `json:"secondary_tickers"`
}

// Validate rejects out-of-range model output. Scores are never clamped:
// a value outside the contract means the model misbehaved and the article
// should stay in the backlog.
func (r *AnalysisRecord) Validate() error {
	if r.StockTicker == "" {
		return fmt.Errorf("analysis record: empty stock_ticker")
	}
	if r.SentimentScore < -1.0 || r.SentimentScore > 1.0 {
		return fmt.Errorf("analysis record: sentiment_score %v outside [-1.0, 1.0]", r.SentimentScore)
	}
	if r.RelevanceScore < 1 || r.RelevanceScore > 3 {
		return fmt.Errorf("analysis record: relevance_score %d outside {1,2,3}", r.RelevanceScore)
	}
	return nil
}

// ArticleIdentity is the deterministic content address of an article:
// the hex sha256 of its canonical URL. It doubles as the blob key, which
// makes raw-text writes naturally idempotent.
func ArticleIdentity(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", sum)
}

// BlobKey is the storage path of an article's raw text.
func BlobKey(url string) string {
	return fmt.Sprintf("articles/%s.txt", ArticleIdentity(url))
}
