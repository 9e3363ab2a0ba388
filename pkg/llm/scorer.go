package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"newsquant/internal/model"
)

// ErrScorerReported marks a failure the model itself flagged in its
// payload (safety filter, quota, unrecognizable article). Distinct from
// malformed output, though callers handle both the same way: skip.
var ErrScorerReported = errors.New("scorer reported an error")

// Scorer produces a validated analysis record for one article's text.
// Adapters normalize whatever shape their vendor returns; callers never
// see raw payloads.
type Scorer interface {
	Score(ctx context.Context, articleText string) (*model.AnalysisRecord, error)
}

const systemPrompt = `You are a senior quantitative analyst. Your only task is to analyze financial news articles and turn them into sentiment and relevance metrics that feed a time-series prediction model. Your analysis must be objective, fast, and focused on share-price impact. Identify stock tickers precisely.

Output as JSON only, no other text:
{
  "stock_ticker": "primary ticker affected, or the index symbol if the news is macro",
  "sentiment_score": -1.0 to 1.0 (very negative to very positive),
  "relevance_score": 1, 2 or 3 (expected price impact: low, medium, high; earnings news is 3),
  "topic_category": "one of: Earnings, M&A, Regulation, Macro, Product, Other",
  "reasoning": "concise justification",
  "secondary_tickers": ["other tickers that could be affected"]
}
If the article cannot be analyzed, output {"error": "<reason>"} instead.`

func userPrompt(articleText string) string {
	return fmt.Sprintf("Analyze the following financial article. Identify the primary ticker affected, a sentiment score between -1.0 and 1.0, and a relevance score between 1 and 3.\n\nArticle:\n---\n%s\n---", articleText)
}

// decodeAnalysis parses a model payload into a validated record. It
// accepts fenced or prose-wrapped JSON, surfaces an explicit error field
// as ErrScorerReported, and rejects out-of-range scores.
func decodeAnalysis(content string) (*model.AnalysisRecord, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		Error            string   `json:"error"`
		StockTicker      string   `json:"stock_ticker"`
		SentimentScore   float64  `json:"sentiment_score"`
		RelevanceScore   int      `json:"relevance_score"`
		TopicCategory    string   `json:"topic_category"`
		Reasoning        string   `json:"reasoning"`
		SecondaryTickers []string `json:"secondary_tickers"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	if parsed.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrScorerReported, parsed.Error)
	}

	rec := &model.AnalysisRecord{
		StockTicker:      parsed.StockTicker,
		SentimentScore:   parsed.SentimentScore,
		RelevanceScore:   parsed.RelevanceScore,
		TopicCategory:    parsed.TopicCategory,
		Reasoning:        parsed.Reasoning,
		SecondaryTickers: parsed.SecondaryTickers,
	}
	if rec.SecondaryTickers == nil {
		rec.SecondaryTickers = []string{}
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
