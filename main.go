package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	api "vidtube-backend/cmd/api"
	authdomain "vidtube-backend/internal/auth/domain"
	authRepo "vidtube-backend/internal/auth/repository"
	authUsecase "vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/database"
	"vidtube-backend/pkg/media"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)

	// Initialize media storage
	uploader, err := media.NewS3Uploader(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize media storage:", err)
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, uploader, cfg)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, cfg, logger)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
