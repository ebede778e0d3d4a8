package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PShah260898/PRS-FinSight/internal/service"
)

type MessagesHandler struct {
	Inbox *service.InboxService
}

func (h *MessagesHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/messages", auth)
	g.GET("", h.thread)
	g.POST("", h.send)
	g.GET("/unread_count", h.unreadCount)
	g.POST("/seen", h.markSeen)
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// @Summary Ask a question in the inbox thread
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Success 200 {object} apiResponse
// @Router /api/v1/messages [post]
func (h *MessagesHandler) send(c *gin.Context) {
	if h.Inbox == nil {
		Error(c, http.StatusInternalServerError, "inbox service unavailable", nil)
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	msg, err := h.Inbox.Send(c.Request.Context(), currentUserID(c), req.Text)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, msg, nil)
}

// @Summary Full message thread, oldest first
// @Tags messages
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/messages [get]
func (h *MessagesHandler) thread(c *gin.Context) {
	if h.Inbox == nil {
		Error(c, http.StatusInternalServerError, "inbox service unavailable", nil)
		return
	}
	items, err := h.Inbox.Thread(c.Request.Context(), currentUserID(c))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// @Summary Unanswered user question count
// @Tags messages
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/messages/unread_count [get]
func (h *MessagesHandler) unreadCount(c *gin.Context) {
	if h.Inbox == nil {
		Error(c, http.StatusInternalServerError, "inbox service unavailable", nil)
		return
	}
	n, err := h.Inbox.UnreadCount(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"unread": n}, nil)
}

// @Summary Mark all user questions as seen
// @Tags messages
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/messages/seen [post]
func (h *MessagesHandler) markSeen(c *gin.Context) {
	if h.Inbox == nil {
		Error(c, http.StatusInternalServerError, "inbox service unavailable", nil)
		return
	}
	rows, err := h.Inbox.MarkAllSeen(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"seen": rows}, nil)
}
