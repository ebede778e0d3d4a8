package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

type PostsHandler struct {
	Repo repository.Repository
}

func (h *PostsHandler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/api/v1/posts")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	authed := g.Group("", auth)
	authed.POST("", h.create)
	authed.GET("/mine", h.mine)
	authed.POST("/:id/publish", h.publish)
}

type createPostRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Symbols []string `json:"symbols"`
	Publish bool     `json:"publish"`
}

// @Summary Create an analysis post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Success 200 {object} apiResponse
// @Router /api/v1/posts [post]
func (h *PostsHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	status := models.PostStatusDraft
	if req.Publish {
		status = models.PostStatusPublished
	}
	post := &models.Post{
		UserID:  currentUserID(c),
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Status:  status,
	}
	if len(req.Symbols) > 0 {
		tags := make([]string, 0, len(req.Symbols))
		for _, s := range req.Symbols {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				tags = append(tags, s)
			}
		}
		raw, err := json.Marshal(tags)
		if err == nil {
			post.Symbols = datatypes.JSON(raw)
		}
	}
	if err := h.Repo.InsertPost(c.Request.Context(), post); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, post, nil)
}

// @Summary Published posts, newest first
// @Tags posts
// @Success 200 {object} apiResponse
// @Router /api/v1/posts [get]
func (h *PostsHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	published := models.PostStatusPublished
	params := repository.ListPostsParams{
		Status: &published,
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}
	items, err := h.Repo.ListPosts(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// @Summary Caller's posts including drafts
// @Tags posts
// @Security BearerAuth
// @Success 200 {object} apiResponse
// @Router /api/v1/posts/mine [get]
func (h *PostsHandler) mine(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	userID := currentUserID(c)
	params := repository.ListPostsParams{
		UserID: &userID,
		Status: strQueryPtr(c, "status"),
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}
	items, err := h.Repo.ListPosts(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"count": len(items)})
}

// @Summary Fetch one post
// @Tags posts
// @Param id path int true "post id"
// @Success 200 {object} apiResponse
// @Router /api/v1/posts/{id} [get]
func (h *PostsHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64PathParam(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	post, err := h.Repo.GetPostByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if post == nil || post.Status != models.PostStatusPublished {
		Error(c, http.StatusNotFound, "post not found", nil)
		return
	}
	Ok(c, post, nil)
}

// @Summary Publish a draft
// @Tags posts
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} apiResponse
// @Router /api/v1/posts/{id}/publish [post]
func (h *PostsHandler) publish(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64PathParam(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	rows, err := h.Repo.UpdatePostStatus(c.Request.Context(), id, currentUserID(c), models.PostStatusPublished)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if rows == 0 {
		Error(c, http.StatusNotFound, "post not found", nil)
		return
	}
	Ok(c, gin.H{"published": rows}, nil)
}
