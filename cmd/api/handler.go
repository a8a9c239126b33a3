package api

import (
	authDelivery "voxplan-backend/internal/auth/delivery"
	authRepo "voxplan-backend/internal/auth/repository"
	authUsecasePkg "voxplan-backend/internal/auth/usecase"
	plannerDelivery "voxplan-backend/internal/planner/delivery"
	plannerUsecasePkg "voxplan-backend/internal/planner/usecase"
	"voxplan-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecasePkg.AuthUsecase
	plannerUsecase plannerUsecasePkg.PlannerUsecase
	config         *config.Config
	authHandler    *authDelivery.AuthHandler
	plannerHandler *plannerDelivery.PlannerHandler
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	plannerUc plannerUsecasePkg.PlannerUsecase,
	fcmTokenRepo authRepo.FCMTokenRepository,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:    authUc,
		plannerUsecase: plannerUc,
		config:         cfg,
		authHandler:    authDelivery.NewAuthHandler(authUc, fcmTokenRepo),
		plannerHandler: plannerDelivery.NewPlannerHandler(plannerUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.plannerHandler)

	return r.Run(addr)
}
