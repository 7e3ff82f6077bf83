package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/draftshare/internal/pkg/duration"
	"github.com/xxxsen/draftshare/internal/pkg/errcode"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
	"github.com/xxxsen/draftshare/internal/pkg/response"
	"github.com/xxxsen/draftshare/internal/service"
)

// Status messages surfaced to the author when a share cannot be created.
const (
	msgNoSuchPost    = "There is no such post!"
	msgPostPublished = "The post is published!"
)

type ShareHandler struct {
	shares *service.ShareService
}

func NewShareHandler(shares *service.ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

type createShareRequest struct {
	PostID  string `json:"post_id"`
	Expires string `json:"expires"`
	Measure string `json:"measure"`
}

type extendShareRequest struct {
	Expires string `json:"expires"`
	Measure string `json:"measure"`
}

func (h *ShareHandler) Create(c *gin.Context) {
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	seconds := duration.Parse(req.Expires, req.Measure)
	share, err := h.shares.Create(c.Request.Context(), getAuthorID(c), req.PostID, seconds)
	switch {
	case appErr.IsNotFound(err):
		response.Error(c, errcode.ErrNotFound, msgNoSuchPost)
		return
	case err == appErr.ErrPostPublished:
		response.Error(c, errcode.ErrPostPublished, msgPostPublished)
		return
	case err != nil:
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"share": share,
		"url":   h.shares.PreviewURL(share.PostID, share.Key),
	})
}

func (h *ShareHandler) Extend(c *gin.Context) {
	var req extendShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	seconds := duration.Parse(req.Expires, req.Measure)
	if err := h.shares.Extend(c.Request.Context(), getAuthorID(c), c.Param("key"), seconds); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ShareHandler) Revoke(c *gin.Context) {
	if err := h.shares.Revoke(c.Request.Context(), getAuthorID(c), c.Param("key")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ShareHandler) List(c *gin.Context) {
	items, err := h.shares.List(c.Request.Context(), getAuthorID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}
