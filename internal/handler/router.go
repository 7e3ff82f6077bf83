package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/draftshare/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Posts     *PostHandler
	Shares    *ShareHandler
	Preview   *PreviewHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/posts", deps.Posts.Create)
	authGroup.GET("/posts", deps.Posts.List)
	authGroup.GET("/posts/:id", deps.Posts.Get)
	authGroup.PUT("/posts/:id", deps.Posts.Update)
	authGroup.DELETE("/posts/:id", deps.Posts.Delete)
	authGroup.GET("/drafts", deps.Posts.ListDrafts)

	shareGroup := authGroup.Group("")
	shareGroup.Use(middleware.RateLimit(time.Second))
	shareGroup.POST("/shares", deps.Shares.Create)
	shareGroup.POST("/shares/:key/extend", deps.Shares.Extend)
	shareGroup.DELETE("/shares/:key", deps.Shares.Revoke)
	authGroup.GET("/shares", deps.Shares.List)

	api.GET("/public/posts/:id", deps.Preview.Get)
}
