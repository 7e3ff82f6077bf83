package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/draftshare/internal/pkg/errcode"
	appErr "github.com/xxxsen/draftshare/internal/pkg/errors"
	"github.com/xxxsen/draftshare/internal/pkg/response"
)

func getAuthorID(c *gin.Context) string {
	value, _ := c.Get("author_id")
	authorID, _ := value.(string)
	return authorID
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("author_id", getAuthorID(c)),
		zap.Error(err),
	)
	switch {
	case err == appErr.ErrUnauthorized:
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case err == appErr.ErrForbidden:
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case appErr.IsNotFound(err):
		response.Error(c, errcode.ErrNotFound, "not found")
	case err == appErr.ErrInvalid:
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case appErr.IsConflict(err):
		response.Error(c, errcode.ErrConflict, "conflict")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
