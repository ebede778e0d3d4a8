package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

type TransactionHandler struct {
	Repo repository.Repository
}

func (h *TransactionHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/transactions", auth)
	g.POST("", h.create)
	g.GET("", h.list)
	g.DELETE("/:id", h.remove)
}

type createTransactionRequest struct {
	Date      string          `json:"date" binding:"required"`
	Symbol    string          `json:"symbol" binding:"required"`
	AssetType string          `json:"asset_type"`
	TxnType   string          `json:"txn_type" binding:"required"`
	Units     decimal.Decimal `json:"units"`
	Price     decimal.Decimal `json:"price"`
	Fees      decimal.Decimal `json:"fees"`
	Account   string          `json:"account"`
}

var txnTypes = map[string]struct{}{
	models.TxnBuy:  {},
	models.TxnSell: {},
	models.TxnDiv:  {},
	models.TxnSIP:  {},
}

// @Summary Append a ledger transaction
// @Tags transactions
// @Security BearerAuth
// @Accept json
// @Param payload body createTransactionRequest true "transaction"
// @Success 200 {object} apiResponse
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}
	txnType := strings.ToUpper(strings.TrimSpace(req.TxnType))
	if _, ok := txnTypes[txnType]; !ok {
		Error(c, http.StatusBadRequest, "txn_type must be one of BUY, SELL, DIV, SIP", nil)
		return
	}
	if req.Units.IsNegative() || req.Price.IsNegative() || req.Fees.IsNegative() {
		Error(c, http.StatusBadRequest, "units, price and fees must be non-negative", nil)
		return
	}
	assetType := strings.ToLower(strings.TrimSpace(req.AssetType))
	if assetType == "" {
		assetType = models.AssetStock
	}
	account := strings.TrimSpace(req.Account)
	if account == "" {
		account = "Default"
	}

	tx := &models.Transaction{
		UserID:    currentUserID(c),
		Date:      req.Date,
		Symbol:    strings.ToUpper(strings.TrimSpace(req.Symbol)),
		AssetType: assetType,
		TxnType:   txnType,
		Units:     req.Units,
		Price:     req.Price,
		Fees:      req.Fees,
		Account:   account,
	}
	if err := h.Repo.InsertTransaction(c.Request.Context(), tx); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, tx, nil)
}

// @Summary List the ledger, oldest first
// @Tags transactions
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListTransactionsByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// @Summary Delete one transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path int true "transaction id"
// @Success 200 {object} apiResponse
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) remove(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64PathParam(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	rows, err := h.Repo.DeleteTransaction(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if rows == 0 {
		Error(c, http.StatusNotFound, "transaction not found", nil)
		return
	}
	Ok(c, gin.H{"deleted": rows}, nil)
}
