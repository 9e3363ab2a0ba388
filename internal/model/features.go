package model

import "time"

// PricePoint is one daily bar from the price source, date normalized to
// UTC midnight.
type PricePoint struct {
	Date   time.Time
	Open   float64
	Close  float64
	Volume int64
}

// SentimentAggregate is the per-day rollup of scored articles for one
// ticker: the relevance-weighted sentiment sum and how many articles
// contributed to it.
type SentimentAggregate struct {
	Date         time.Time
	SentimentSum float64
	NewsCount    int
}

// FeatureRow is one date of the final joined table. Target is 1 when the
// next trading day's close exceeds this date's close. The last date of a
// series has no next close and is dropped before the row is ever built.
type FeatureRow struct {
	Date         time.Time `json:"date"`
	Open         float64   `json:"open"`
	Close        float64   `json:"close"`
	Volume       int64     `json:"volume"`
	SentimentSum float64   `json:"sentiment_sum"`
	NewsCount    int       `json:"news_count"`
	Target       int       `json:"target"`
}

// Midnight strips the intraday and zone components from t so price and
// sentiment dates join on calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
