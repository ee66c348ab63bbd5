package routes

import (
	"github.com/gin-gonic/gin"

	"gocart/internal/handlers"
	"gocart/internal/middleware"
)

// SetupCartRoutes sets up cart routes, all of which require a session
func SetupCartRoutes(r *gin.RouterGroup, cartHandler *handlers.CartHandler, jwtSecret string) {
	cart := r.Group("/cart")
	cart.Use(middleware.AuthRequired(jwtSecret))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:productId", cartHandler.UpdateItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
	}
}
