package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PShah260898/PRS-FinSight/internal/service"
)

type NewsHandler struct {
	News *service.NewsService
}

func (h *NewsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/news")
	g.GET("/categories", h.categories)
	g.GET("/:category", h.category)
}

// @Summary Configured news categories
// @Tags news
// @Success 200 {object} apiResponse
// @Router /api/v1/news/categories [get]
func (h *NewsHandler) categories(c *gin.Context) {
	if h.News == nil {
		Error(c, http.StatusInternalServerError, "news service unavailable", nil)
		return
	}
	Ok(c, h.News.Categories(), nil)
}

// @Summary Aggregated headlines for one category
// @Tags news
// @Param category path string true "category"
// @Success 200 {object} apiResponse
// @Router /api/v1/news/{category} [get]
func (h *NewsHandler) category(c *gin.Context) {
	if h.News == nil {
		Error(c, http.StatusInternalServerError, "news service unavailable", nil)
		return
	}
	articles, err := h.News.Category(c.Request.Context(), c.Param("category"))
	if err != nil {
		Error(c, http.StatusNotFound, err.Error(), nil)
		return
	}
	Ok(c, articles, map[string]any{"count": len(articles)})
}
