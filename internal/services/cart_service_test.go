package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
)

func newCartFixture(t *testing.T, products ...*models.Product) (CartService, *fakeProductRepo) {
	t.Helper()
	productRepo := newFakeProductRepo(products...)
	return NewCartService(newFakeCartRepo(), productRepo), productRepo
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	product := &models.Product{Title: "Headphones", Price: 59.99, Stock: 5}
	service, productRepo := newCartFixture(t, product)
	userID := primitive.NewObjectID()

	cart, err := service.AddItem(context.Background(), userID, product.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 59.99, cart.Items[0].UnitPrice)

	// A later price change must not reprice the open cart.
	require.NoError(t, productRepo.Update(context.Background(), product.ID, map[string]interface{}{"price": 99.99}))

	cart, err = service.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 59.99, cart.Items[0].UnitPrice)
}

func TestAddItemQuantityBounds(t *testing.T) {
	product := &models.Product{Title: "Cable", Price: 4.99, Stock: 50}
	service, _ := newCartFixture(t, product)
	userID := primitive.NewObjectID()

	_, err := service.AddItem(context.Background(), userID, product.ID, 0)
	assert.ErrorIs(t, err, models.ErrCartItemLimit)

	_, err = service.AddItem(context.Background(), userID, product.ID, models.MaxLineQuantity+1)
	assert.ErrorIs(t, err, models.ErrCartItemLimit)

	cart, err := service.AddItem(context.Background(), userID, product.ID, models.MaxLineQuantity)
	require.NoError(t, err)
	assert.Equal(t, models.MaxLineQuantity, cart.Items[0].Quantity)
}

func TestAddItemMergesExistingLineUpToCap(t *testing.T) {
	product := &models.Product{Title: "Cable", Price: 4.99, Stock: 50}
	service, _ := newCartFixture(t, product)
	userID := primitive.NewObjectID()

	_, err := service.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	cart, err := service.AddItem(context.Background(), userID, product.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// One more would exceed the per-line cap.
	_, err = service.AddItem(context.Background(), userID, product.ID, 1)
	assert.ErrorIs(t, err, models.ErrCartItemLimit)
}

func TestAddItemChecksStock(t *testing.T) {
	product := &models.Product{Title: "Limited", Price: 10.00, Stock: 1}
	service, _ := newCartFixture(t, product)
	userID := primitive.NewObjectID()

	_, err := service.AddItem(context.Background(), userID, product.ID, 2)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
}

func TestAddItemUnknownProduct(t *testing.T) {
	service, _ := newCartFixture(t)
	userID := primitive.NewObjectID()

	_, err := service.AddItem(context.Background(), userID, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestUpdateItemQuantity(t *testing.T) {
	product := &models.Product{Title: "Cable", Price: 4.99, Stock: 50}
	service, _ := newCartFixture(t, product)
	userID := primitive.NewObjectID()

	_, err := service.AddItem(context.Background(), userID, product.ID, 1)
	require.NoError(t, err)

	cart, err := service.UpdateItem(context.Background(), userID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	_, err = service.UpdateItem(context.Background(), userID, primitive.NewObjectID(), 2)
	assert.ErrorIs(t, err, models.ErrCartItemNotFound)
}

func TestRemoveItemAndClear(t *testing.T) {
	first := &models.Product{Title: "A", Price: 1.00, Stock: 10}
	second := &models.Product{Title: "B", Price: 2.00, Stock: 10}
	service, _ := newCartFixture(t, first, second)
	userID := primitive.NewObjectID()

	_, err := service.AddItem(context.Background(), userID, first.ID, 1)
	require.NoError(t, err)
	_, err = service.AddItem(context.Background(), userID, second.ID, 1)
	require.NoError(t, err)

	cart, err := service.RemoveItem(context.Background(), userID, first.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, second.ID, cart.Items[0].ProductID)

	require.NoError(t, service.ClearCart(context.Background(), userID))

	cart, err = service.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestSubtotal(t *testing.T) {
	first := &models.Product{Title: "A", Price: 19.99, Stock: 10}
	second := &models.Product{Title: "B", Price: 5.00, Stock: 10}
	service, _ := newCartFixture(t, first, second)
	userID := primitive.NewObjectID()

	_, err := service.AddItem(context.Background(), userID, first.ID, 2)
	require.NoError(t, err)
	cart, err := service.AddItem(context.Background(), userID, second.ID, 3)
	require.NoError(t, err)

	assert.InDelta(t, 54.98, cart.Subtotal(), 0.001)
}
