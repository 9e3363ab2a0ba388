package handler

import (
	"strconv"

	"newsquant/internal/model"

	"github.com/gin-gonic/gin"
)

type ArticleResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Source         string  `json:"source"`
	PublishedAt    string  `json:"published_at"`
	StockTicker    string  `json:"stock_ticker"`
	SentimentScore float64 `json:"sentiment_score"`
	RelevanceScore int     `json:"relevance_score"`
	TopicCategory  string  `json:"topic_category"`
	Reasoning      string  `json:"reasoning"`
}

type ArticleFeedResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type FeatureResponse struct {
	Ticker string             `json:"ticker"`
	Rows   []model.FeatureRow `json:"rows"`
}

func getQueryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		return 20
	}
	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
