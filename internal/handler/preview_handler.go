package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/draftshare/internal/pkg/response"
	"github.com/xxxsen/draftshare/internal/service"
)

// PreviewHandler serves the viewer-facing entry point: a plain URL carrying
// the post id in the path and the secret key as a query parameter. No account
// required; possession of a valid key is the whole credential.
type PreviewHandler struct {
	preview *service.PreviewService
}

func NewPreviewHandler(preview *service.PreviewService) *PreviewHandler {
	return &PreviewHandler{preview: preview}
}

func (h *PreviewHandler) Get(c *gin.Context) {
	view, err := h.preview.View(c.Request.Context(), c.Param("id"), c.Query("token"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, view)
}
