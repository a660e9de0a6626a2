package routes

import (
	"civicguard-be/controllers"
	"civicguard-be/middlewares"

	"github.com/gin-gonic/gin"
)

// CommunityRoutes sets up the forum, leaderboard, notification and
// assistant routes
func CommunityRoutes(r *gin.Engine) {
	forum := r.Group("/api/forum", middlewares.AuthMiddleware())
	{
		forum.POST("/posts", controllers.CreatePost)
		forum.GET("/posts", controllers.GetPosts)
		forum.GET("/posts/:id", controllers.GetPost)
		forum.POST("/posts/:id/comments", controllers.CreateComment)
		forum.POST("/comments/:id/vote", controllers.HandleVoteOnComment)
	}

	user := r.Group("/api/user")
	{
		user.GET("/leaderboard", controllers.GetLeaderboard)
		user.GET("/notifications", middlewares.AuthMiddleware(), controllers.GetNotifications)
		user.PUT("/profile", middlewares.AuthMiddleware(), controllers.UpdateProfile)
	}

	r.GET("/api/locations/districts", controllers.GetDistricts)
	r.POST("/api/assistant/chat", middlewares.AuthMiddleware(), controllers.AskAssistant)
}
