package feed

import "newsquant/internal/model"

// Source lists article references from one news feed. A source failure
// is feed-level: callers log it and move on to the next source.
type Source interface {
	Name() string
	List() ([]model.ArticleReference, error)
}

// Extractor turns a reference URL into cleaned article text.
type Extractor interface {
	Extract(url string, sourceName string) (string, error)
}
