package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PShah260898/PRS-FinSight/internal/service"
)

type InquiriesHandler struct {
	Inbox *service.InboxService
	Auth  *service.AuthService
}

func (h *InquiriesHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/inquiries")
	g.POST("", h.create)
	g.GET("", auth, h.list)
}

type createInquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// @Summary File a contact/appointment inquiry
// @Tags inquiries
// @Accept json
// @Success 200 {object} apiResponse
// @Router /api/v1/inquiries [post]
func (h *InquiriesHandler) create(c *gin.Context) {
	if h.Inbox == nil {
		Error(c, http.StatusInternalServerError, "inbox service unavailable", nil)
		return
	}
	var req createInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	in := service.InquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	// Inquiries are accepted without login; attach the user when a valid
	// token happens to be present.
	if h.Auth != nil {
		if header := c.GetHeader("Authorization"); len(header) > 7 {
			if id, err := h.Auth.VerifyToken(header[7:]); err == nil && id > 0 {
				in.UserID = &id
			}
		}
	}
	inquiry, err := h.Inbox.FileInquiry(c.Request.Context(), in)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, inquiry, nil)
}

// @Summary List filed inquiries
// @Tags inquiries
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/inquiries [get]
func (h *InquiriesHandler) list(c *gin.Context) {
	if h.Inbox == nil {
		Error(c, http.StatusInternalServerError, "inbox service unavailable", nil)
		return
	}
	items, err := h.Inbox.ListInquiries(c.Request.Context(), intQuery(c, "limit", 100), intQuery(c, "offset", 0))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}
