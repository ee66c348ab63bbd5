package routes

import (
	"github.com/gin-gonic/gin"

	"gocart/internal/handlers"
	"gocart/internal/middleware"
)

// SetupAuthRoutes sets up account and session routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	account := r.Group("/account")
	account.Use(middleware.AuthRequired(jwtSecret))
	{
		account.GET("/profile", authHandler.GetProfile)
		account.PUT("/profile", authHandler.UpdateProfile)
		account.PUT("/password", authHandler.ChangePassword)
		account.POST("/device", authHandler.RegisterDevice)
	}
}
