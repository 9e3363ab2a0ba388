package feed

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func paragraph() string {
	return strings.Repeat("The bank reported strong quarterly results, beating analyst expectations, and raised its full-year guidance for the second time this year. ", 4)
}

func articlePage(selectorClass string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>Resultados</title></head>
<body>
  <nav><p>Home</p><p>Markets</p></nav>
  <div class="%s">
    <h1>Banco sube tras resultados</h1>
    <p>%s</p>
    <p>%s</p>
    <p>%s</p>
  </div>
  <footer><p>Legal</p></footer>
</body></html>`, selectorClass, paragraph(), paragraph(), paragraph())
}

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtract_WithSourceSelector(t *testing.T) {
	srv := serveHTML(t, articlePage("article-body"))

	e := NewPageExtractor(map[string]string{"CincoDias": "div.article-body"}, 250)

	text, err := e.Extract(srv.URL, "CincoDias")

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(text, "Banco sube tras resultados"))
	assert.Equal(t, true, strings.Contains(text, "beating analyst expectations"))
	// Navigation chrome stays out of the extracted body.
	assert.Equal(t, false, strings.Contains(text, "Legal"))
}

func TestExtract_ReadabilityFallback(t *testing.T) {
	srv := serveHTML(t, articlePage("post-content"))

	// No selector configured for this source.
	e := NewPageExtractor(map[string]string{}, 250)

	text, err := e.Extract(srv.URL, "Unknown")

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(text, "beating analyst expectations"))
}

func TestExtract_TooShortRejected(t *testing.T) {
	srv := serveHTML(t, `<html><body><div class="article-body"><p>Paywall teaser.</p></div></body></html>`)

	e := NewPageExtractor(map[string]string{"CincoDias": "div.article-body"}, 250)

	_, err := e.Extract(srv.URL, "CincoDias")

	assert.Equal(t, true, errors.Is(err, ErrTooShort))
}

func TestExtract_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := NewPageExtractor(map[string]string{}, 250)

	_, err := e.Extract(srv.URL, "Unknown")

	assert.NotEqual(t, nil, err)
}
