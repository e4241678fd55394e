package handler

import (
	"net/http"
	"strconv"

	"github.com/forgelabs-dev/fitforge/internal/service"
	"github.com/forgelabs-dev/fitforge/pkg/response"
	"github.com/gin-gonic/gin"
)

const defaultSearchLimit = 20

type SearchHandler struct {
	search service.MeiliSearchService
}

func NewSearchHandler(search service.MeiliSearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) SearchWorkouts(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not configured"})
		return
	}

	query := c.Query("q")
	limit := parseLimit(c.Query("limit"))

	hits, err := h.search.SearchWorkouts(query, c.Query("user_id"), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": hits})
}

func (h *SearchHandler) SearchHighlights(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not configured"})
		return
	}

	query := c.Query("q")
	limit := parseLimit(c.Query("limit"))

	hits, err := h.search.SearchHighlights(query, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": hits})
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultSearchLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		return defaultSearchLimit
	}
	return limit
}
