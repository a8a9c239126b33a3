package api

import (
	"net/http"

	"voxplan-backend/internal/auth/delivery"
	authUsecase "voxplan-backend/internal/auth/usecase"
	plannerDelivery "voxplan-backend/internal/planner/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, authHandler *delivery.AuthHandler, plannerHandler *plannerDelivery.PlannerHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUsecase), authHandler.Me)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(delivery.AuthMiddleware(authUsecase))
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}

		// Voice pipeline (protected)
		voice := api.Group("/voice")
		voice.Use(delivery.AuthMiddleware(authUsecase))
		{
			voice.POST("/generate", plannerHandler.GenerateFromVoice)
		}

		// Plan routes (protected)
		plans := api.Group("/plans")
		plans.Use(delivery.AuthMiddleware(authUsecase))
		{
			plans.GET("", plannerHandler.ListPlans)
			plans.GET("/:id", plannerHandler.GetPlan)
			plans.DELETE("/:id", plannerHandler.DeletePlan)
			plans.POST("/:id/voice", plannerHandler.UpdatePlanFromVoice)
			plans.PATCH("/:id/tasks/:taskId/status", plannerHandler.SetTaskStatus)
			plans.POST("/:id/tasks/:taskId/subtasks/voice", plannerHandler.AddSubtasksFromVoice)
		}

		// Itinerary routes (protected)
		itineraries := api.Group("/itineraries")
		itineraries.Use(delivery.AuthMiddleware(authUsecase))
		{
			itineraries.GET("", plannerHandler.ListItineraries)
			itineraries.GET("/:id", plannerHandler.GetItinerary)
			itineraries.DELETE("/:id", plannerHandler.DeleteItinerary)
			itineraries.POST("/:id/voice", plannerHandler.UpdateItineraryFromVoice)
		}

		// Insights (protected)
		api.GET("/insights", delivery.AuthMiddleware(authUsecase), plannerHandler.GetInsights)
	}
}
