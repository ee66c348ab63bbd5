package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category" validate:"required"`
	Price       float64            `json:"price" bson:"price" validate:"required,gt=0"`
	Image       string             `json:"image" bson:"image"`
	Stock       int                `json:"stock" bson:"stock" validate:"gte=0"`
	Featured    bool               `json:"featured" bson:"featured" default:"false"`
	OnSale      bool               `json:"on_sale" bson:"on_sale" default:"false"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}
