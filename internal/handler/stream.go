package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/PShah260898/PRS-FinSight/internal/marketdata"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

// StreamHandler pushes the caller's watchlist quotes over a websocket on a
// fixed refresh cadence, so the dashboard does not have to poll.
type StreamHandler struct {
	Repo   repository.Repository
	Quotes marketdata.QuoteSource
	Logger *zap.Logger

	RefreshInterval time.Duration
	MaxSymbols      int
}

func (h *StreamHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/api/v1/stream/watchlist", auth, h.watchlist)
}

type streamFrame struct {
	At     time.Time                   `json:"at"`
	Quotes map[string]marketdata.Quote `json:"quotes"`
}

// @Summary Live watchlist quote stream
// @Tags stream
// @Security BearerAuth
// @Router /api/v1/stream/watchlist [get]
func (h *StreamHandler) watchlist(c *gin.Context) {
	if h.Repo == nil || h.Quotes == nil {
		Error(c, http.StatusInternalServerError, "stream unavailable", nil)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	ctx := c.Request.Context()
	userID := currentUserID(c)
	interval := h.RefreshInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		items, err := h.Repo.ListWatchItems(ctx, userID)
		if err != nil {
			if h.Logger != nil {
				h.Logger.Warn("stream watchlist read failed", zap.Uint64("user_id", userID), zap.Error(err))
			}
			return
		}
		symbols := make([]string, 0, len(items))
		for _, item := range items {
			symbols = append(symbols, item.Symbol)
		}
		if h.MaxSymbols > 0 && len(symbols) > h.MaxSymbols {
			symbols = symbols[:h.MaxSymbols]
		}
		frame := streamFrame{
			At:     time.Now().UTC(),
			Quotes: h.Quotes.GetLatestPrices(ctx, symbols),
		}
		if err := wsjson.Write(ctx, conn, frame); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
