package feed

import (
	"context"
	"time"

	"newsquant/internal/model"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

// FinnhubSource lists references from Finnhub's general market news.
// Finnhub only carries headlines and summaries, so the body text still
// goes through the extractor like any RSS reference.
type FinnhubSource struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubSource(apiKey string) *FinnhubSource {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubSource{client: client}
}

func (s *FinnhubSource) Name() string {
	return "FinnHub"
}

func (s *FinnhubSource) List() ([]model.ArticleReference, error) {
	res, _, err := s.client.MarketNews(context.Background()).Category("general").Execute()
	if err != nil {
		return nil, err
	}

	var refs []model.ArticleReference
	for _, news := range res {
		if news.Url == nil || *news.Url == "" {
			continue
		}

		ref := model.ArticleReference{
			URL:    *news.Url,
			Source: s.Name(),
		}

		if news.Headline != nil {
			ref.Title = *news.Headline
		}

		if news.Datetime != nil {
			ref.PublishedAt = time.Unix(*news.Datetime, 0).UTC()
		} else {
			ref.PublishedAt = time.Now().UTC()
		}

		refs = append(refs, ref)
	}

	return refs, nil
}
