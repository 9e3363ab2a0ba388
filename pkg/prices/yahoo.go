package prices

import (
	"fmt"
	"time"

	"newsquant/internal/model"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

// Source produces a daily OHLCV series for one ticker.
type Source interface {
	DailySeries(ticker string, start, end time.Time) ([]model.PricePoint, error)
}

// YahooSource pulls daily bars from Yahoo Finance's chart API.
type YahooSource struct {
	// Suffix is appended to tickers for non-US listings, e.g. ".MC" for
	// the Madrid exchange. Empty for US symbols.
	Suffix string
}

func NewYahooSource(suffix string) *YahooSource {
	return &YahooSource{Suffix: suffix}
}

func (s *YahooSource) DailySeries(ticker string, start, end time.Time) ([]model.PricePoint, error) {
	symbol := ticker + s.Suffix

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var points []model.PricePoint
	for iter.Next() {
		b := iter.Bar()
		points = append(points, model.PricePoint{
			Date:   model.Midnight(time.Unix(int64(b.Timestamp), 0)),
			Open:   decimalToFloat(b.Open),
			Close:  decimalToFloat(b.Close),
			Volume: int64(b.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("price history %s: %w", symbol, err)
	}

	return points, nil
}

func decimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
