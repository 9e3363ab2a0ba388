package model

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestArticleIdentity_Deterministic(t *testing.T) {
	url := "https://example.com/article/123"

	id1 := ArticleIdentity(url)
	id2 := ArticleIdentity(url)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 64, len(id1))

	other := ArticleIdentity("https://example.com/article/456")
	assert.NotEqual(t, id1, other)
}

func TestBlobKey(t *testing.T) {
	key := BlobKey("https://example.com/article/123")

	assert.Equal(t, true, strings.HasPrefix(key, "articles/"))
	assert.Equal(t, true, strings.HasSuffix(key, ".txt"))
	assert.Equal(t, BlobKey("https://example.com/article/123"), key)
}

func TestAnalysisRecordValidate(t *testing.T) {
	valid := AnalysisRecord{StockTicker: "BBVA", SentimentScore: 0.8, RelevanceScore: 3}
	assert.Equal(t, nil, valid.Validate())

	cases := []AnalysisRecord{
		{StockTicker: "", SentimentScore: 0.5, RelevanceScore: 2},
		{StockTicker: "BBVA", SentimentScore: 1.1, RelevanceScore: 2},
		{StockTicker: "BBVA", SentimentScore: -1.5, RelevanceScore: 2},
		{StockTicker: "BBVA", SentimentScore: 0.5, RelevanceScore: 0},
		{StockTicker: "BBVA", SentimentScore: 0.5, RelevanceScore: 4},
	}

	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestMidnight(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2026, time.March, 3, 0, 30, 0, 0, loc)

	got := Midnight(ts)

	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), got)
}
