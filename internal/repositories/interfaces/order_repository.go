package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/utils"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)

	// ListByUser returns the user's orders newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Order, int64, error)

	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
}
