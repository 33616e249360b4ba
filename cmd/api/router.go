package api

import (
	"log/slog"
	"net/http"

	"vidtube-backend/internal/auth/delivery"
	authUsecase "vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, log *slog.Logger) {
	authHandler := delivery.NewAuthHandler(authUsecase, log)

	api := r.Group("/api/v1")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.POST("/refresh-token", authHandler.RefreshToken)

			// Routes below need an authenticated caller
			secured := users.Group("")
			secured.Use(delivery.AuthMiddleware(authUsecase))
			{
				secured.POST("/logout", authHandler.Logout)
				secured.POST("/change-password", authHandler.ChangePassword)
				secured.GET("/current-user", authHandler.CurrentUser)
				secured.PATCH("/update-account", authHandler.UpdateAccount)
				secured.PATCH("/avatar", authHandler.UpdateAvatar)
				secured.PATCH("/cover-image", authHandler.UpdateCoverImage)
			}
		}
	}
}
