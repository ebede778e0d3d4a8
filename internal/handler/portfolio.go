package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PShah260898/PRS-FinSight/internal/repository"
	"github.com/PShah260898/PRS-FinSight/internal/service"
)

type PortfolioHandler struct {
	Portfolio *service.PortfolioService
	Repo      repository.Repository
}

func (h *PortfolioHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/portfolio", auth)
	g.GET("/holdings", h.holdings)
	g.GET("/history", h.history)
}

// @Summary Current positions with valuation
// @Tags portfolio
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/portfolio/holdings [get]
func (h *PortfolioHandler) holdings(c *gin.Context) {
	if h.Portfolio == nil {
		Error(c, http.StatusInternalServerError, "portfolio service unavailable", nil)
		return
	}
	positions, summary, err := h.Portfolio.Holdings(c.Request.Context(), currentUserID(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"positions": positions, "summary": summary}, map[string]any{"count": len(positions)})
}

// @Summary Portfolio value over time
// @Tags portfolio
// @Security BearerAuth
// @Param since query string false "RFC3339 or YYYY-MM-DD"
// @Param until query string false "RFC3339 or YYYY-MM-DD"
// @Success 200 {object} apiResponse
// @Router /api/v1/portfolio/history [get]
func (h *PortfolioHandler) history(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.ListPortfolioSnapshotsParams{
		UserID: currentUserID(c),
		Since:  timeQueryPtr(c, "since"),
		Until:  timeQueryPtr(c, "until"),
		Limit:  intQuery(c, "limit", 168),
		Offset: intQuery(c, "offset", 0),
	}
	items, err := h.Repo.ListPortfolioSnapshots(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}
