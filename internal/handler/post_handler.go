package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/draftshare/internal/pkg/errcode"
	"github.com/xxxsen/draftshare/internal/pkg/response"
	"github.com/xxxsen/draftshare/internal/service"
)

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type postRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	PublishAt int64  `json:"publish_at"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	post, err := h.posts.Create(c.Request.Context(), getAuthorID(c), service.PostCreateInput{
		Title:     req.Title,
		Content:   req.Content,
		Status:    req.Status,
		PublishAt: req.PublishAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), getAuthorID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	post, err := h.posts.Update(c.Request.Context(), getAuthorID(c), c.Param("id"), service.PostUpdateInput{
		Title:     req.Title,
		Content:   req.Content,
		Status:    req.Status,
		PublishAt: req.PublishAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), getAuthorID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *PostHandler) List(c *gin.Context) {
	items, err := h.posts.List(c.Request.Context(), getAuthorID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// ListDrafts feeds the share picker: the author's unshared drafts, scheduled
// posts and pending-review posts, grouped.
func (h *PostHandler) ListDrafts(c *gin.Context) {
	groups, err := h.posts.ListShareCandidates(c.Request.Context(), getAuthorID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"groups": groups})
}
