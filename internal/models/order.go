package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Items           []CartItem         `json:"items" bson:"items" validate:"required,min=1"`
	Subtotal        float64            `json:"subtotal" bson:"subtotal"`
	DiscountPercent int                `json:"discount_percent" bson:"discount_percent"`
	DiscountAmount  float64            `json:"discount_amount" bson:"discount_amount"`
	Total           float64            `json:"total" bson:"total"`
	CouponCode      string             `json:"coupon_code,omitempty" bson:"coupon_code,omitempty"`
	PaymentRef      string             `json:"payment_ref" bson:"payment_ref"`
	Status          OrderStatus        `json:"status" bson:"status" default:"completed"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}
