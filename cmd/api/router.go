package api

import (
	"net/http"

	"taskbot/internal/auth/delivery"
	authUsecase "taskbot/internal/auth/usecase"
	dashboardDelivery "taskbot/internal/dashboard/delivery"
	taskDelivery "taskbot/internal/task/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, dashboardHandler *dashboardDelivery.DashboardHandler, taskHandler *taskDelivery.TaskHandler, settings *RuntimeSettings) {
	authHandler := delivery.NewAuthHandler(authUsecase)
	requireAuth := delivery.AuthMiddleware(authUsecase)

	// Dashboard page (Basic auth prompts the browser)
	r.GET("/", requireAuth, dashboardHandler.Page)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Stats (protected)
		api.GET("/stats", requireAuth, dashboardHandler.Stats)

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.GET("/:id", taskHandler.GetTaskByID)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
		}

		// Settings routes (protected) - Runtime configuration
		settingsGroup := api.Group("/settings")
		settingsGroup.Use(requireAuth)
		{
			settingsGroup.GET("/speech", settings.GetSpeechSettings)
			settingsGroup.PUT("/speech", settings.UpdateSpeechSettings)
		}
	}
}
