package routes

import (
	"github.com/gin-gonic/gin"

	"gocart/internal/handlers"
	"gocart/internal/middleware"
)

// SetupProductRoutes sets up public catalog and admin catalog management
// routes
func SetupProductRoutes(r *gin.RouterGroup, productHandler *handlers.ProductHandler, jwtSecret string) {
	products := r.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/categories", productHandler.ListCategories)
		products.GET("/:id", productHandler.GetProduct)
	}

	admin := r.Group("/admin/products")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("", productHandler.CreateProduct)
		admin.PUT("/:id", productHandler.UpdateProduct)
		admin.DELETE("/:id", productHandler.DeleteProduct)
		admin.POST("/:id/stock", productHandler.AdjustStock)
		admin.POST("/:id/image", productHandler.UploadImage)
	}
}
