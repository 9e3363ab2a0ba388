package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsquant/internal/features"
	"newsquant/internal/model"
	"newsquant/pkg/prices"

	"github.com/gin-gonic/gin"
)

// ArticleStore is the handler's view of the repository.
type ArticleStore interface {
	Scored(ticker string) ([]model.ScoredArticle, error)
	ScoredFeed(ticker string, limit, offset int) ([]model.ScoredArticle, error)
	ScoredTotal(ticker string) (int, error)
	BacklogSize() (int, error)
}

type FeatureHandler struct {
	repository ArticleStore
	prices     prices.Source
}

func NewFeatureHandler(repository ArticleStore, priceSource prices.Source) *FeatureHandler {
	return &FeatureHandler{repository: repository, prices: priceSource}
}

// GetFeatures assembles the labeled price+sentiment table for one ticker
// and date range. The two no-data conditions return distinct 404 bodies
// so the dashboard can tell "no prices" from "no scored news".
func (h *FeatureHandler) GetFeatures(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ticker parameter"})
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}

	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return
	}

	series, err := h.prices.DailySeries(ticker, start, end)
	if err != nil {
		slog.Error("error fetching price history", "ticker", ticker, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Price source error"})
		return
	}

	scored, err := h.repository.Scored(ticker)
	if err != nil {
		slog.Error("error fetching scored articles", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	rows, err := features.Assemble(series, scored, ticker)
	if err != nil {
		switch {
		case errors.Is(err, features.ErrNoPriceData):
			c.JSON(http.StatusNotFound, gin.H{"error": "No price data for ticker and range"})
		case errors.Is(err, features.ErrNoSentimentData):
			c.JSON(http.StatusNotFound, gin.H{"error": "No sentiment data for ticker"})
		default:
			slog.Error("error assembling features", "ticker", ticker, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Assembly error"})
		}
		return
	}

	c.JSON(http.StatusOK, FeatureResponse{Ticker: ticker, Rows: rows})
}

func (h *FeatureHandler) GetArticles(c *gin.Context) {
	ticker := c.Query("ticker")
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	articles, err := h.repository.ScoredFeed(ticker, limit, offset)
	if err != nil {
		slog.Error("error fetching article feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.ScoredTotal(ticker)
	if err != nil {
		slog.Error("error fetching article total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := ArticleFeedResponse{
		Articles: make([]ArticleResponse, 0, len(articles)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}

	for _, a := range articles {
		res.Articles = append(res.Articles, ArticleResponse{
			ID:             a.ID,
			Title:          a.Title,
			URL:            a.URL,
			Source:         a.Source,
			PublishedAt:    a.PublishedAt.Format(time.RFC3339),
			StockTicker:    a.StockTicker,
			SentimentScore: a.SentimentScore,
			RelevanceScore: a.RelevanceScore,
			TopicCategory:  a.TopicCategory,
			Reasoning:      a.Reasoning,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *FeatureHandler) GetHealth(c *gin.Context) {
	backlog, err := h.repository.BacklogSize()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"backlog":  backlog,
	})
}
