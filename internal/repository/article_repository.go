package repository

import (
	"database/sql"
	"time"

	"newsquant/internal/model"

	"github.com/lib/pq"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Save inserts an article with all analysis fields null. The unique
// constraint on url is the dedup mechanism: a conflict means the article
// is already known and Save reports (false, nil), not an error.
func (r *ArticleRepository) Save(article *model.StoredArticle) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO articles(title, url, source, published_at, storage_path, analysis_status)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.Title, article.URL, article.Source, article.PublishedAt, article.StoragePath, model.StatusPending).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id
	return true, nil
}

// Unscored returns up to limit backlog rows: sentiment still null and,
// when maxAttempts > 0, fewer than maxAttempts failed scoring attempts.
func (r *ArticleRepository) Unscored(limit int, maxAttempts int) ([]model.StoredArticle, error) {
	rows, err := r.db.Query(`
		SELECT id, title, url, source, published_at, storage_path, analysis_attempts
		FROM articles
		WHERE sentiment_score IS NULL
		  AND ($2 <= 0 OR analysis_attempts < $2)
		ORDER BY fetched_at ASC
		LIMIT $1
	`, limit, maxAttempts)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.StoredArticle
	for rows.Next() {
		var a model.StoredArticle
		err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Source, &a.PublishedAt, &a.StoragePath, &a.AnalysisAttempts)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// UpdateAnalysis writes a validated analysis record onto its row and
// marks it scored. Rows are scored at most once: the backlog query never
// returns a row whose sentiment is already set.
func (r *ArticleRepository) UpdateAnalysis(id int64, rec *model.AnalysisRecord) error {
	_, err := r.db.Exec(`
		UPDATE articles
		SET sentiment_score = $1, relevance_score = $2, stock_ticker = $3,
			topic_category = $4, reasoning = $5, secondary_tickers = $6,
			analysis_status = $7
		WHERE id = $8
	`, rec.SentimentScore, rec.RelevanceScore, rec.StockTicker,
		rec.TopicCategory, rec.Reasoning, pq.Array(rec.SecondaryTickers),
		model.StatusScored, id)
	return err
}

// RecordFailure bumps a row's attempt counter after a failed scoring
// pass. Once the counter reaches maxAttempts the row is marked failed and
// drops out of future backlogs; maxAttempts <= 0 disables the ceiling.
func (r *ArticleRepository) RecordFailure(id int64, maxAttempts int) error {
	_, err := r.db.Exec(`
		UPDATE articles
		SET analysis_attempts = analysis_attempts + 1,
			analysis_status = CASE
				WHEN $2 > 0 AND analysis_attempts + 1 >= $2 THEN $3
				ELSE analysis_status
			END
		WHERE id = $1
	`, id, maxAttempts, model.StatusFailed)
	return err
}

// Scored returns all analyzed articles, oldest first, optionally
// filtered to one primary ticker.
func (r *ArticleRepository) Scored(ticker string) ([]model.ScoredArticle, error) {
	rows, err := r.db.Query(`
		SELECT id, title, url, source, published_at, stock_ticker,
			sentiment_score, relevance_score, topic_category, reasoning
		FROM articles
		WHERE sentiment_score IS NOT NULL
		  AND ($1 = '' OR stock_ticker = $1)
		ORDER BY published_at ASC
	`, ticker)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.ScoredArticle
	for rows.Next() {
		var a model.ScoredArticle
		err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Source, &a.PublishedAt,
			&a.StockTicker, &a.SentimentScore, &a.RelevanceScore, &a.TopicCategory, &a.Reasoning)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// ScoredFeed is the paginated variant backing the dashboard article list.
func (r *ArticleRepository) ScoredFeed(ticker string, limit, offset int) ([]model.ScoredArticle, error) {
	rows, err := r.db.Query(`
		SELECT id, title, url, source, published_at, stock_ticker,
			sentiment_score, relevance_score, topic_category, reasoning
		FROM articles
		WHERE sentiment_score IS NOT NULL
		  AND ($1 = '' OR stock_ticker = $1)
		ORDER BY published_at DESC
		LIMIT $2 OFFSET $3
	`, ticker, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.ScoredArticle
	for rows.Next() {
		var a model.ScoredArticle
		err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Source, &a.PublishedAt,
			&a.StockTicker, &a.SentimentScore, &a.RelevanceScore, &a.TopicCategory, &a.Reasoning)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// ScoredTotal counts analyzed articles for pagination.
func (r *ArticleRepository) ScoredTotal(ticker string) (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM articles
		WHERE sentiment_score IS NOT NULL
		  AND ($1 = '' OR stock_ticker = $1)
	`, ticker).Scan(&total)
	return total, err
}

// BacklogSize counts rows still awaiting analysis.
func (r *ArticleRepository) BacklogSize() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM articles WHERE sentiment_score IS NULL
	`).Scan(&total)
	return total, err
}

// LatestPublished reports the newest published_at in the table, used by
// the collector summary log.
func (r *ArticleRepository) LatestPublished() (time.Time, error) {
	var t sql.NullTime
	err := r.db.QueryRow(`SELECT MAX(published_at) FROM articles`).Scan(&t)
	if err != nil {
		return time.Time{}, err
	}
	return t.Time, nil
}
