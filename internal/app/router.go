package app

import (
	"post_place_backend/docs"
	"post_place_backend/internal/config"
	"post_place_backend/internal/middleware"
	"post_place_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 公共路由（无需登录）
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
	}

	// WebSocket 事件推送
	router.GET("/ws", middleware.AuthMiddleware(cfg), c.ws.HandleWS)

	// 需要授权的路由
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/auth/me", c.auth.Me)

		users := api.Group("/users")
		{
			users.PUT("/me", c.user.UpdateProfile)
			users.DELETE("/me", c.user.DeleteAccount)
			users.GET("/me/commented-posts", c.user.GetCommentedPosts)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", c.post.ListPosts)
			posts.POST("", c.post.CreatePost)
			posts.GET("/me", c.post.ListMyPosts)
			posts.GET("/search", c.post.SearchPosts)
			posts.GET("/user/:userId", c.post.ListUserPosts)
			posts.PUT("/comments/:commentId", c.post.UpdateComment)
			posts.DELETE("/comments/:commentId", c.post.DeleteComment)
			posts.GET("/:id", c.post.GetPost)
			posts.PUT("/:id", c.post.UpdatePost)
			posts.DELETE("/:id", c.post.DeletePost)
			posts.POST("/:id/comments", c.post.AddComment)
		}

		friends := api.Group("/friends")
		{
			friends.GET("", c.friendship.GetFriends)
			friends.GET("/stats", c.friendship.GetStats)
			friends.GET("/search", c.friendship.SearchUsers)
			friends.GET("/status/:userId", c.friendship.GetStatus)
			friends.POST("/requests", c.friendship.SendRequest)
			friends.GET("/requests/pending", c.friendship.GetPendingRequests)
			friends.GET("/requests/sent", c.friendship.GetSentRequests)
			friends.POST("/requests/:senderId/accept", c.friendship.AcceptRequest)
			friends.POST("/requests/:senderId/reject", c.friendship.RejectRequest)
			friends.DELETE("/requests/:receiverId", c.friendship.CancelRequest)
			friends.DELETE("/:friendId", c.friendship.RemoveFriend)
		}

		groups := api.Group("/groups")
		{
			groups.GET("", c.group.ListGroups)
			groups.POST("", c.group.CreateGroup)
			groups.GET("/:id", c.group.GetGroup)
			groups.DELETE("/:id", c.group.DeleteGroup)
			groups.POST("/:id/leave", c.group.LeaveGroup)
			groups.GET("/:id/available-friends", c.group.GetAvailableFriends)
			groups.POST("/:id/members", c.group.AddMember)
			groups.DELETE("/:id/members/:userId", c.group.RemoveMember)
		}

		interests := api.Group("/interests")
		{
			interests.GET("", c.interest.ListCatalog)
			interests.GET("/mine", c.interest.ListMine)
			interests.POST("/mine", c.interest.AddInterest)
			interests.DELETE("/mine/:name", c.interest.RemoveInterest)
			interests.GET("/stats", c.interest.GetStats)
			interests.GET("/recommendations", c.interest.GetRecommendations)
		}
	}
}
