package feed

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

var (
	// ErrTooShort marks extractions below the configured minimum length,
	// usually a paywall or a selector that stopped matching.
	ErrTooShort = errors.New("extracted text below minimum length")

	reWhitespace = regexp.MustCompile(`[ \t]+`)
)

// PageExtractor downloads an article page and pulls its body text. A
// per-source CSS selector is tried first; anything without one, or whose
// selector matches nothing, falls back to readability extraction.
type PageExtractor struct {
	httpClient *http.Client
	userAgent  string
	selectors  map[string]string
	minLen     int
}

func NewPageExtractor(selectors map[string]string, minLen int) *PageExtractor {
	return &PageExtractor{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  "Mozilla/5.0 (compatible; newsquant/1.0)",
		selectors:  selectors,
		minLen:     minLen,
	}
}

func (e *PageExtractor) Extract(pageURL string, sourceName string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extract %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", pageURL, err)
	}

	text := ""
	if selector, ok := e.selectors[sourceName]; ok && selector != "" {
		text = selectorText(doc, selector)
	}

	if text == "" {
		text, err = readabilityText(doc, pageURL)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", pageURL, err)
		}
	}

	text = normalizeText(text)
	if len(text) < e.minLen {
		return "", fmt.Errorf("extract %s: %w (%d chars)", pageURL, ErrTooShort, len(text))
	}

	return text, nil
}

func selectorText(doc *goquery.Document, selector string) string {
	var parts []string
	doc.Find(selector).Find("p, h1, h2").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n")
}

func readabilityText(doc *goquery.Document, pageURL string) (string, error) {
	html, err := doc.Html()
	if err != nil {
		return "", err
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return "", err
	}

	return article.TextContent, nil
}

func normalizeText(text string) string {
	text = reWhitespace.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
