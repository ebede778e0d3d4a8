package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

type FundsHandler struct {
	Repo repository.Repository
}

func (h *FundsHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/funds")
	g.GET("/search", h.search)
	g.GET("/status", h.status)

	w := g.Group("/watchlist", auth)
	w.GET("", h.listWatch)
	w.POST("", h.addWatch)
	w.DELETE("/:code", h.removeWatch)
}

// @Summary Search the mutual fund registry
// @Tags funds
// @Param q query string false "scheme name or code"
// @Param amc query string false "fund house"
// @Param category query string false "scheme category"
// @Success 200 {object} apiResponse
// @Router /api/v1/funds/search [get]
func (h *FundsHandler) search(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.SearchFundSchemesParams{
		Query:    c.Query("q"),
		AMC:      c.Query("amc"),
		Category: c.Query("category"),
		Limit:    intQuery(c, "limit", 50),
	}
	items, err := h.Repo.SearchFundSchemes(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// @Summary Registry sync status
// @Tags funds
// @Success 200 {object} apiResponse
// @Router /api/v1/funds/status [get]
func (h *FundsHandler) status(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	state, err := h.Repo.GetSyncState(c.Request.Context(), "fund_registry")
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountFundSchemes(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"sync": state, "schemes": total}, nil)
}

type addFundWatchRequest struct {
	SchemeCode uint64 `json:"scheme_code" binding:"required"`
	SchemeName string `json:"scheme_name"`
}

// @Summary Track a fund scheme
// @Tags funds
// @Security BearerAuth
// @Accept json
// @Success 200 {object} apiResponse
// @Router /api/v1/funds/watchlist [post]
func (h *FundsHandler) addWatch(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req addFundWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	name := strings.TrimSpace(req.SchemeName)
	if name == "" {
		schemes, err := h.Repo.ListFundSchemesByCodes(c.Request.Context(), []uint64{req.SchemeCode})
		if err != nil {
			Error(c, http.StatusBadGateway, err.Error(), nil)
			return
		}
		if len(schemes) == 0 {
			Error(c, http.StatusNotFound, "scheme code not in registry", nil)
			return
		}
		name = schemes[0].SchemeName
	}
	item := &models.FundWatchItem{
		UserID:     currentUserID(c),
		SchemeCode: req.SchemeCode,
		SchemeName: name,
	}
	if err := h.Repo.UpsertFundWatchItem(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// fundWatchRow joins a tracked scheme with its latest registry NAV.
type fundWatchRow struct {
	models.FundWatchItem
	Scheme *models.FundScheme `json:"scheme,omitempty"`
}

// @Summary Tracked fund schemes with latest NAV
// @Tags funds
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/funds/watchlist [get]
func (h *FundsHandler) listWatch(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListFundWatchItems(c.Request.Context(), currentUserID(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	codes := make([]uint64, 0, len(items))
	for _, item := range items {
		codes = append(codes, item.SchemeCode)
	}
	schemes, err := h.Repo.ListFundSchemesByCodes(c.Request.Context(), codes)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	byCode := make(map[uint64]models.FundScheme, len(schemes))
	for _, s := range schemes {
		byCode[s.SchemeCode] = s
	}
	out := make([]fundWatchRow, 0, len(items))
	for _, item := range items {
		row := fundWatchRow{FundWatchItem: item}
		if s, ok := byCode[item.SchemeCode]; ok {
			scheme := s
			row.Scheme = &scheme
		}
		out = append(out, row)
	}
	Ok(c, out, map[string]any{"count": len(out)})
}

// @Summary Stop tracking a fund scheme
// @Tags funds
// @Security BearerAuth
// @Param code path int true "scheme code"
// @Success 200 {object} apiResponse
// @Router /api/v1/funds/watchlist/{code} [delete]
func (h *FundsHandler) removeWatch(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	code := uint64PathParam(c, "code")
	if code == 0 {
		Error(c, http.StatusBadRequest, "invalid scheme code", nil)
		return
	}
	rows, err := h.Repo.DeleteFundWatchItem(c.Request.Context(), currentUserID(c), code)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if rows == 0 {
		Error(c, http.StatusNotFound, "scheme not tracked", nil)
		return
	}
	Ok(c, gin.H{"deleted": rows}, nil)
}
