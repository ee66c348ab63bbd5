package models

import "errors"

// Domain errors returned by repositories and services. Handlers map these
// to HTTP status codes and stable error codes.
var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrInvalidPassword  = errors.New("invalid email or password")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")

	ErrQuotaExhausted = errors.New("daily draw quota exhausted")
	ErrDrawInProgress = errors.New("another draw is in progress")

	ErrCouponNotFound        = errors.New("coupon not found")
	ErrCouponNotOwned        = errors.New("coupon belongs to another account")
	ErrCouponAlreadyRedeemed = errors.New("coupon already redeemed")
	ErrCouponExpired         = errors.New("coupon expired")

	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCartItemLimit      = errors.New("quantity outside allowed range")
	ErrCartItemNotFound   = errors.New("item not in cart")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrInvalidImage       = errors.New("unsupported or oversized image")
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
