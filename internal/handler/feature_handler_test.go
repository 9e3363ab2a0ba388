package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsquant/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeStore struct {
	scored  []model.ScoredArticle
	total   int
	backlog int
	err     error
}

func (f *fakeStore) Scored(ticker string) ([]model.ScoredArticle, error) {
	return f.scored, f.err
}

func (f *fakeStore) ScoredFeed(ticker string, limit, offset int) ([]model.ScoredArticle, error) {
	return f.scored, f.err
}

func (f *fakeStore) ScoredTotal(ticker string) (int, error) {
	return f.total, f.err
}

func (f *fakeStore) BacklogSize() (int, error) {
	return f.backlog, f.err
}

type fakePrices struct {
	series []model.PricePoint
	err    error
}

func (f *fakePrices) DailySeries(ticker string, start, end time.Time) ([]model.PricePoint, error) {
	return f.series, f.err
}

func newTestRouter(store ArticleStore, priceSource *fakePrices) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewFeatureHandler(store, priceSource)
	r.GET("/features", h.GetFeatures)
	r.GET("/articles", h.GetArticles)
	r.GET("/health", h.GetHealth)
	return r
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestGetFeatures_ReturnsLabeledRows(t *testing.T) {
	store := &fakeStore{scored: []model.ScoredArticle{
		{StockTicker: "BBVA", PublishedAt: day(2), SentimentScore: 0.5, RelevanceScore: 2},
	}}
	pricesSrc := &fakePrices{series: []model.PricePoint{
		{Date: day(2), Close: 10},
		{Date: day(3), Close: 12},
		{Date: day(4), Close: 9},
	}}

	r := newTestRouter(store, pricesSrc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/features?ticker=BBVA&start=2026-03-01&end=2026-03-10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res FeatureResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "BBVA", res.Ticker)
	assert.Equal(t, 2, len(res.Rows))
	assert.Equal(t, 1, res.Rows[0].Target)
	assert.Equal(t, 1.0, res.Rows[0].SentimentSum)
	assert.Equal(t, 0, res.Rows[1].NewsCount)
}

func TestGetFeatures_MissingTicker(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/features?start=2026-03-01&end=2026-03-10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeatures_NoDataConditionsAreDistinct(t *testing.T) {
	// Empty price series.
	r := newTestRouter(&fakeStore{scored: []model.ScoredArticle{
		{StockTicker: "BBVA", PublishedAt: day(2), SentimentScore: 0.5, RelevanceScore: 2},
	}}, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/features?ticker=BBVA&start=2026-03-01&end=2026-03-10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	priceBody := w.Body.String()

	// No scored articles for the ticker.
	r = newTestRouter(&fakeStore{}, &fakePrices{series: []model.PricePoint{
		{Date: day(2), Close: 10},
		{Date: day(3), Close: 12},
	}})

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/features?ticker=BBVA&start=2026-03-01&end=2026-03-10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEqual(t, priceBody, w.Body.String())
}

func TestGetFeatures_PriceSourceError(t *testing.T) {
	r := newTestRouter(&fakeStore{}, &fakePrices{err: errors.New("upstream down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/features?ticker=BBVA&start=2026-03-01&end=2026-03-10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetArticles_ReturnsFeed(t *testing.T) {
	store := &fakeStore{
		scored: []model.ScoredArticle{
			{ID: 1, Title: "Banco sube", StockTicker: "BBVA", PublishedAt: day(2), SentimentScore: 0.5, RelevanceScore: 2},
		},
		total: 1,
	}

	r := newTestRouter(store, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?limit=10&offset=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticleFeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, len(res.Articles))
	assert.Equal(t, "Banco sube", res.Articles[0].Title)
	assert.Equal(t, "BBVA", res.Articles[0].StockTicker)
}

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeStore{backlog: 4}, &fakePrices{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	r = newTestRouter(&fakeStore{err: errors.New("connection refused")}, &fakePrices{})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
