package routes

import (
	"civicguard-be/controllers"
	"civicguard-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AgentRoutes sets up the guided reporting conversation routes
func AgentRoutes(r *gin.Engine) {
	session := r.Group("/api/agent/session", middlewares.AuthMiddleware())
	{
		session.POST("", controllers.StartSession)
		session.GET("/:id", controllers.GetSession)
		session.DELETE("/:id", controllers.CloseSession)
		session.POST("/:id/language", controllers.ChooseLanguage)
		session.POST("/:id/answer", controllers.SubmitAnswer)
		session.POST("/:id/speech", controllers.SubmitSpeech)
		session.POST("/:id/photo", controllers.CapturePhoto)
		session.DELETE("/:id/photo/:photoId", controllers.RemovePhoto)
		session.POST("/:id/video/start", controllers.StartVideo)
		session.POST("/:id/video/frame", controllers.VideoFrame)
		session.POST("/:id/video/stop", controllers.StopVideo)
		session.POST("/:id/audio", controllers.RecordAudio)
		session.POST("/:id/summary", controllers.GenerateSummary)
		session.POST("/:id/confirm", middlewares.ReportRateLimiter(10), controllers.ConfirmReport)
		session.POST("/:id/edit", controllers.EditReport)
	}
}
