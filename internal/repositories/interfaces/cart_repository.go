package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
)

type CartRepository interface {
	// GetByUserID returns the user's cart, creating an empty one in memory
	// (not persisted) when none exists.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)

	// Save upserts the whole cart document keyed by user ID.
	Save(ctx context.Context, cart *models.Cart) error

	// Clear removes the user's cart document.
	Clear(ctx context.Context, userID primitive.ObjectID) error
}
