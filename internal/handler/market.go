package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PShah260898/PRS-FinSight/internal/marketdata"
)

type MarketHandler struct {
	Client *marketdata.Client
	Quotes marketdata.QuoteSource

	MaxBatchSize int
}

func (h *MarketHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/market")
	g.GET("/quotes", h.quotes)
	g.GET("/history/:symbol", h.history)
}

// @Summary Latest quotes for a symbol batch
// @Tags market
// @Param symbols query string true "comma-separated symbols"
// @Success 200 {object} apiResponse
// @Router /api/v1/market/quotes [get]
func (h *MarketHandler) quotes(c *gin.Context) {
	if h.Quotes == nil {
		Error(c, http.StatusInternalServerError, "market gateway unavailable", nil)
		return
	}
	symbols := csvQuery(c, "symbols")
	if len(symbols) == 0 {
		Error(c, http.StatusBadRequest, "symbols query parameter is required", nil)
		return
	}
	max := h.MaxBatchSize
	if max <= 0 {
		max = 50
	}
	if len(symbols) > max {
		symbols = symbols[:max]
	}
	quotes := h.Quotes.GetLatestPrices(c.Request.Context(), symbols)
	Ok(c, quotes, map[string]any{"requested": len(symbols), "resolved": len(quotes)})
}

// @Summary Candle history for one symbol
// @Tags market
// @Param symbol path string true "symbol"
// @Param range query string false "1d,5d,1mo,3mo,6mo,1y,3y,5y,max"
// @Success 200 {object} apiResponse
// @Router /api/v1/market/history/{symbol} [get]
func (h *MarketHandler) history(c *gin.Context) {
	if h.Client == nil {
		Error(c, http.StatusInternalServerError, "market gateway unavailable", nil)
		return
	}
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		Error(c, http.StatusBadRequest, "symbol is required", nil)
		return
	}
	candles, err := h.Client.History(c.Request.Context(), symbol, c.Query("range"))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, candles, map[string]any{"count": len(candles)})
}
