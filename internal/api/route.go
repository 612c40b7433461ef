package api

import (
	"Townsquare/internal/api/config"
	"Townsquare/internal/api/middleware"
	"Townsquare/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		apiGroup.GET("/categories", group.CategoryHandler.ListCategories)

		userGroup := apiGroup.Group("/user")
		userGroup.Use(middleware.IdentityMiddleware())
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.GET("/profile", group.UserHandler.GetProfile)
			userGroup.PUT("/city", group.UserHandler.SetCity)
			userGroup.PUT("/categories", group.UserHandler.SetCategories)
		}

		postGroup := apiGroup.Group("/posts")
		postGroup.Use(middleware.IdentityMiddleware())
		{
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.GET("/mine", group.PostHandler.GetMyPosts)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)

			postGroup.POST("/:post_id/like", group.PostActionHandler.ToggleLike)
			postGroup.GET("/:post_id/like", group.PostActionHandler.GetLikeInfo)
		}

		feedGroup := apiGroup.Group("/feed")
		feedGroup.Use(middleware.IdentityMiddleware())
		{
			feedGroup.GET("", group.FeedHandler.GetFeed)
			feedGroup.GET("/liked", group.FeedHandler.GetLikedFeed)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.IdentityMiddleware())
		{
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}

		moderationGroup := apiGroup.Group("/moderation")
		moderationGroup.Use(middleware.IdentityMiddleware(), middleware.RequireModerator(cfg))
		{
			moderationGroup.GET("/queue", group.ModerationHandler.GetQueue)
			moderationGroup.POST("/posts/:post_id/decision", group.ModerationHandler.Decide)
			moderationGroup.GET("/posts/:post_id/history", group.ModerationHandler.GetHistory)
		}
	}

	return r
}
