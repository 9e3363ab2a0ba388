package features

import (
	"errors"
	"sort"
	"time"

	"newsquant/internal/model"
)

var (
	// ErrNoPriceData means the price source returned nothing for the
	// requested ticker and range.
	ErrNoPriceData = errors.New("no price data for requested ticker/range")

	// ErrNoSentimentData means no scored articles exist for the ticker.
	// Distinct from a valid table where some days simply had no news.
	ErrNoSentimentData = errors.New("no sentiment data for requested ticker")
)

// Aggregate rolls scored articles up to one sentiment row per UTC
// calendar day: the sum of sentiment×relevance and the article count.
func Aggregate(articles []model.ScoredArticle) map[time.Time]model.SentimentAggregate {
	daily := make(map[time.Time]model.SentimentAggregate, len(articles))
	for _, a := range articles {
		day := model.Midnight(a.PublishedAt)
		agg := daily[day]
		agg.Date = day
		agg.SentimentSum += a.SentimentScore * float64(a.RelevanceScore)
		agg.NewsCount++
		daily[day] = agg
	}
	return daily
}

// Assemble left-joins the price series with per-day sentiment and labels
// each row with the next-day close direction. Days without news keep the
// row with sentiment_sum=0 and news_count=0; absence of news is a signal,
// not missing data. The final date has no next close and is dropped.
// Rows come back ordered by date ascending, ready for a chronological
// train/test split.
func Assemble(prices []model.PricePoint, scored []model.ScoredArticle, ticker string) ([]model.FeatureRow, error) {
	if len(prices) == 0 {
		return nil, ErrNoPriceData
	}

	var forTicker []model.ScoredArticle
	for _, a := range scored {
		if a.StockTicker == ticker {
			forTicker = append(forTicker, a)
		}
	}
	if len(forTicker) == 0 {
		return nil, ErrNoSentimentData
	}

	daily := Aggregate(forTicker)

	series := make([]model.PricePoint, len(prices))
	copy(series, prices)
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	rows := make([]model.FeatureRow, 0, len(series)-1)
	for i := 0; i < len(series)-1; i++ {
		p := series[i]
		day := model.Midnight(p.Date)

		row := model.FeatureRow{
			Date:   day,
			Open:   p.Open,
			Close:  p.Close,
			Volume: p.Volume,
		}

		if agg, ok := daily[day]; ok {
			row.SentimentSum = agg.SentimentSum
			row.NewsCount = agg.NewsCount
		}

		if series[i+1].Close > p.Close {
			row.Target = 1
		}

		rows = append(rows, row)
	}

	return rows, nil
}
