package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
)

type CouponRepository interface {
	// Issue inserts a freshly drawn coupon, generating a unique code. The
	// coupon's Code field is filled in on success.
	Issue(ctx context.Context, coupon *models.Coupon) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)

	// ListByOwner returns the user's coupons newest first, optionally
	// narrowed to redeemed or unredeemed ones.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, redeemed *bool) ([]*models.Coupon, error)

	// Redeem atomically flips an unredeemed, unexpired coupon owned by
	// ownerID to redeemed, recording the order it was applied to. Failure
	// is classified as ErrCouponNotFound, ErrCouponNotOwned,
	// ErrCouponAlreadyRedeemed or ErrCouponExpired.
	Redeem(ctx context.Context, code string, ownerID, orderID primitive.ObjectID, now time.Time) (*models.Coupon, error)
}

type EntitlementRepository interface {
	// Get returns the user's draw entitlement, materializing a fresh
	// full-quota record when the user has never spun.
	Get(ctx context.Context, userID primitive.ObjectID) (*models.DrawEntitlement, error)

	// Consume atomically spends one attempt, resetting the counter first
	// when the last draw fell on an earlier UTC day. Returns the remaining
	// attempts after the spend, or ErrQuotaExhausted without writing when
	// no attempt is left today.
	Consume(ctx context.Context, userID primitive.ObjectID, now time.Time) (int, error)
}
