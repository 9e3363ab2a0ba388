package feed

import (
	"fmt"
	"time"

	"newsquant/internal/model"

	"github.com/mmcdole/gofeed"
)

type RSSSource struct {
	name   string
	url    string
	parser *gofeed.Parser
}

func NewRSSSource(name, url string) *RSSSource {
	return &RSSSource{
		name:   name,
		url:    url,
		parser: gofeed.NewParser(),
	}
}

func (s *RSSSource) Name() string {
	return s.name
}

func (s *RSSSource) List() ([]model.ArticleReference, error) {
	parsed, err := s.parser.ParseURL(s.url)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s: %w", s.url, err)
	}

	refs := make([]model.ArticleReference, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}

		publishedAt := time.Now().UTC()
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.UTC()
		}

		refs = append(refs, model.ArticleReference{
			Title:       item.Title,
			URL:         item.Link,
			Source:      s.name,
			PublishedAt: publishedAt,
		})
	}

	return refs, nil
}
