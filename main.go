package main

import (
	"log"
	"os"

	api "voxplan-backend/cmd/api"
	authdomain "voxplan-backend/internal/auth/domain"
	authRepo "voxplan-backend/internal/auth/repository"
	authUsecase "voxplan-backend/internal/auth/usecase"
	plannerRepo "voxplan-backend/internal/planner/repository"
	"voxplan-backend/internal/planner/scheduler"
	plannerUsecase "voxplan-backend/internal/planner/usecase"
	"voxplan-backend/pkg/ai"
	"voxplan-backend/pkg/config"
	"voxplan-backend/pkg/database"
	"voxplan-backend/pkg/fcm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.FCMToken{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	fcmTokenRepo := authRepo.NewFCMTokenRepository(db)
	planRepository := plannerRepo.NewGormPlanRepository(db)
	itineraryRepository := plannerRepo.NewGormItineraryRepository(db)
	reminderRepository := plannerRepo.NewGormReminderRepository(db)

	// Initialize AI service
	aiService, err := ai.NewGenerativeService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("AI service initialized with provider: %s", cfg.AIProvider)

	// Initialize FCM Client (optional, reminders are disabled without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
			fcmClient = nil
		}
	} else {
		log.Println("[WARN] No Firebase credentials configured, FCM disabled")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)
	plannerUsecaseInstance := plannerUsecase.NewPlannerUsecase(aiService, planRepository, itineraryRepository)

	// Start the reminder scheduler
	reminderScheduler := scheduler.NewReminderScheduler(planRepository, reminderRepository, fcmTokenRepo, fcmClient)
	reminderScheduler.Start()
	defer reminderScheduler.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, plannerUsecaseInstance, fcmTokenRepo, cfg)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := handler.Start(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
