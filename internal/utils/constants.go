package utils

import "time"

// Application Constants
const (
	AppName = "GoCart"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Coupon Constants
	CouponCodeLength     = 10
	CouponCodeMaxRetries = 5
	DrawLockTTL          = 10 * time.Second

	// Catalog Constants
	MaxProductImageWidth = 1200

	// File Upload
	MaxImageSize = 5 * 1024 * 1024 // 5MB
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CacheUserPrefix     = "user:"
	CacheProductPrefix  = "product:"
	CacheDrawLockPrefix = "draw_lock:"
)

// Event Types
const (
	EventUserRegistered  = "user_registered"
	EventUserLogin       = "user_login"
	EventWheelSpun       = "wheel_spun"
	EventCouponIssued    = "coupon_issued"
	EventCouponRedeemed  = "coupon_redeemed"
	EventCheckoutStarted = "checkout_started"
	EventOrderCompleted  = "order_completed"
	EventStockAdjusted   = "stock_adjusted"
)

// File Types
var (
	AllowedImageTypes = []string{"jpg", "jpeg", "png", "gif", "webp"}
)
