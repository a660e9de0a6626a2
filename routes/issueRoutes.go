package routes

import (
	"civicguard-be/controllers"
	"civicguard-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue, map and analytics routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/create", middlewares.AuthMiddleware(), middlewares.ReportRateLimiter(10), controllers.CreateIssue)
		issue.GET("/all", middlewares.AuthMiddleware(), controllers.GetAllIssues)
		issue.GET("/mine", middlewares.AuthMiddleware(), controllers.GetMyIssues)
		issue.GET("/recent", controllers.RecentIssues)
		issue.GET("/analytics", middlewares.AuthMiddleware(), controllers.GetIssueAnalytics)
		issue.GET("/:id", middlewares.AuthMiddleware(), controllers.GetIssue)
		issue.PUT("/:id", middlewares.AuthMiddleware(), controllers.UpdateIssue)
		issue.DELETE("/:id", middlewares.AuthMiddleware(), controllers.DeleteIssue)
		issue.POST("/:id/vote", middlewares.AuthMiddleware(), controllers.HandleVoteOnIssue)
		issue.PATCH("/:id/status", middlewares.AuthMiddleware(), controllers.UpdateIssueStatus)
		issue.PATCH("/:id/triage", middlewares.AuthMiddleware(), controllers.UpdateIssueTriage)
	}

	r.GET("/api/map/choropleth", controllers.GetChoropleth)
}
