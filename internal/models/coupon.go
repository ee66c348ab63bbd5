package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DailyDrawQuota is the number of wheel spins an account gets per UTC
	// calendar day.
	DailyDrawQuota = 3

	// CouponValidity is how long an issued coupon stays redeemable.
	CouponValidity = 30 * 24 * time.Hour
)

// Coupon is one issued reward. Redeemed is monotonic: it flips false->true
// exactly once and is never reversed.
type Coupon struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID         primitive.ObjectID `json:"owner_id" bson:"owner_id" validate:"required"`
	Code            string             `json:"code" bson:"code" validate:"required"`
	DiscountPercent int                `json:"discount_percent" bson:"discount_percent" validate:"required"`
	Redeemed        bool               `json:"redeemed" bson:"redeemed"`
	RedeemedOrderID *primitive.ObjectID `json:"redeemed_order_id,omitempty" bson:"redeemed_order_id,omitempty"`
	IssuedAt        time.Time          `json:"issued_at" bson:"issued_at"`
	RedeemedAt      *time.Time         `json:"redeemed_at,omitempty" bson:"redeemed_at,omitempty"`
	ExpiresAt       time.Time          `json:"expires_at" bson:"expires_at"`
}

func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// DrawEntitlement is the per-account record that gates wheel spins. One
// document per user, keyed by user ID. RemainingAttempts resets to
// DailyDrawQuota when LastDrawAt falls on an earlier UTC day than now.
type DrawEntitlement struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID            primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	RemainingAttempts int                `json:"remaining_attempts" bson:"remaining_attempts"`
	LastDrawAt        *time.Time         `json:"last_draw_at,omitempty" bson:"last_draw_at,omitempty"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// SameUTCDay reports whether a and b fall on the same UTC calendar day.
func SameUTCDay(a, b time.Time) bool {
	ya, ma, da := a.UTC().Date()
	yb, mb, db := b.UTC().Date()
	return ya == yb && ma == mb && da == db
}

// NextUTCMidnight returns the instant the daily quota resets after t.
func NextUTCMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
