package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/utils"
)

// ProductFilter narrows catalog listings. Nil pointer fields are ignored.
type ProductFilter struct {
	Category string
	Featured *bool
	OnSale   *bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, filter *ProductFilter, params *utils.PaginationParams) ([]*models.Product, int64, error)
	ListCategories(ctx context.Context) ([]string, error)

	// AdjustStock applies a signed delta, failing with ErrInsufficientStock
	// when the result would go negative.
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) (*models.Product, error)

	// DecrementStock atomically reserves quantity units, failing with
	// ErrInsufficientStock when fewer are available.
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}
