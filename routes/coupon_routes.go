package routes

import (
	"github.com/gin-gonic/gin"

	"gocart/internal/handlers"
	"gocart/internal/middleware"
)

// SetupCouponRoutes sets up wheel draw and coupon wallet routes
func SetupCouponRoutes(r *gin.RouterGroup, couponHandler *handlers.CouponHandler, jwtSecret string) {
	coupons := r.Group("/coupons")
	coupons.Use(middleware.AuthRequired(jwtSecret))
	{
		coupons.POST("/spin", couponHandler.Spin)
		coupons.GET("/entitlement", couponHandler.GetEntitlement)
		coupons.GET("", couponHandler.ListCoupons)
	}
}
