package routes

import (
	"github.com/gin-gonic/gin"

	"gocart/internal/handlers"
	"gocart/internal/middleware"
)

// SetupCheckoutRoutes sets up checkout and order history routes
func SetupCheckoutRoutes(r *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler, jwtSecret string) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.AuthRequired(jwtSecret))
	{
		checkout.POST("", checkoutHandler.Checkout)
	}

	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired(jwtSecret))
	{
		orders.GET("", checkoutHandler.ListOrders)
		orders.GET("/:id", checkoutHandler.GetOrder)
	}
}
