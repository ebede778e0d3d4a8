package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PShah260898/PRS-FinSight/internal/marketdata"
	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

type WatchlistHandler struct {
	Repo   repository.Repository
	Quotes marketdata.QuoteSource
}

func (h *WatchlistHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/watchlist", auth)
	g.GET("", h.list)
	g.POST("", h.add)
	g.DELETE("/:symbol", h.remove)
	g.GET("/quotes", h.quotes)
}

type addWatchItemRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Alias  string `json:"alias"`
}

// @Summary Add or rename a watchlist entry
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Success 200 {object} apiResponse
// @Router /api/v1/watchlist [post]
func (h *WatchlistHandler) add(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req addWatchItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item := &models.WatchlistItem{
		UserID: currentUserID(c),
		Symbol: strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Alias:  strings.TrimSpace(req.Alias),
	}
	if item.Symbol == "" {
		Error(c, http.StatusBadRequest, "symbol is required", nil)
		return
	}
	if err := h.Repo.UpsertWatchItem(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary List watchlist entries
// @Tags watchlist
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/watchlist [get]
func (h *WatchlistHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListWatchItems(c.Request.Context(), currentUserID(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// @Summary Remove a watchlist entry
// @Tags watchlist
// @Security BearerAuth
// @Param symbol path string true "symbol"
// @Success 200 {object} apiResponse
// @Router /api/v1/watchlist/{symbol} [delete]
func (h *WatchlistHandler) remove(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	rows, err := h.Repo.DeleteWatchItem(c.Request.Context(), currentUserID(c), c.Param("symbol"))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if rows == 0 {
		Error(c, http.StatusNotFound, "watchlist entry not found", nil)
		return
	}
	Ok(c, gin.H{"deleted": rows}, nil)
}

// watchQuote joins a watchlist row with its live quote.
type watchQuote struct {
	models.WatchlistItem
	Quote *marketdata.Quote `json:"quote,omitempty"`
}

// @Summary Watchlist with live quotes
// @Tags watchlist
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/watchlist/quotes [get]
func (h *WatchlistHandler) quotes(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListWatchItems(c.Request.Context(), currentUserID(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	symbols := make([]string, 0, len(items))
	for _, item := range items {
		symbols = append(symbols, item.Symbol)
	}
	var quotes map[string]marketdata.Quote
	if h.Quotes != nil && len(symbols) > 0 {
		quotes = h.Quotes.GetLatestPrices(c.Request.Context(), symbols)
	}
	out := make([]watchQuote, 0, len(items))
	for _, item := range items {
		wq := watchQuote{WatchlistItem: item}
		if q, ok := quotes[item.Symbol]; ok {
			quote := q
			wq.Quote = &quote
		}
		out = append(out, wq)
	}
	Ok(c, out, map[string]any{"count": len(out)})
}
