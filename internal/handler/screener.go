package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PShah260898/PRS-FinSight/internal/marketdata"
	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

type ScreenerHandler struct {
	Repo   repository.Repository
	Quotes marketdata.QuoteSource
}

func (h *ScreenerHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/screener")
	g.GET("/symbols", h.symbols)
}

// screenerRow joins a catalog entry with its live quote when requested.
type screenerRow struct {
	models.CatalogSymbol
	Quote *marketdata.Quote `json:"quote,omitempty"`
}

// @Summary Search the symbol catalog
// @Tags screener
// @Param q query string false "substring match on symbol or name"
// @Param country query string false "comma-separated countries"
// @Param type query string false "comma-separated asset types"
// @Param sector query string false "comma-separated sectors"
// @Param quotes query bool false "join live quotes"
// @Success 200 {object} apiResponse
// @Router /api/v1/screener/symbols [get]
func (h *ScreenerHandler) symbols(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.SearchCatalogSymbolsParams{
		Query:     c.Query("q"),
		Countries: csvQuery(c, "country"),
		Types:     csvQuery(c, "type"),
		Sectors:   csvQuery(c, "sector"),
		Limit:     intQuery(c, "limit", 100),
	}
	items, err := h.Repo.SearchCatalogSymbols(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	withQuotes, _ := strconv.ParseBool(c.Query("quotes"))
	var quotes map[string]marketdata.Quote
	if withQuotes && h.Quotes != nil && len(items) > 0 {
		symbols := make([]string, 0, len(items))
		for _, item := range items {
			symbols = append(symbols, item.Symbol)
		}
		quotes = h.Quotes.GetLatestPrices(c.Request.Context(), symbols)
	}
	out := make([]screenerRow, 0, len(items))
	for _, item := range items {
		row := screenerRow{CatalogSymbol: item}
		if q, ok := quotes[item.Symbol]; ok {
			quote := q
			row.Quote = &quote
		}
		out = append(out, row)
	}
	Ok(c, out, map[string]any{"count": len(out)})
}
