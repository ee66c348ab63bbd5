package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/utils"
)

type checkoutFixture struct {
	service    *checkoutService
	carts      *fakeCartRepo
	orders     *fakeOrderRepo
	products   *fakeProductRepo
	couponRepo *fakeCouponRepo
	payments   *fakePaymentProvider
}

func newCheckoutFixture(t *testing.T, products ...*models.Product) *checkoutFixture {
	t.Helper()

	fixture := &checkoutFixture{
		carts:      newFakeCartRepo(),
		orders:     &fakeOrderRepo{},
		products:   newFakeProductRepo(products...),
		couponRepo: &fakeCouponRepo{},
		payments:   &fakePaymentProvider{},
	}

	service := NewCheckoutService(
		fixture.carts,
		fixture.orders,
		fixture.products,
		fixture.couponRepo,
		fixture.payments,
		"USD",
		testLogger(t),
	)
	fixture.service = service.(*checkoutService)

	return fixture
}

func (f *checkoutFixture) fillCart(t *testing.T, userID primitive.ObjectID, product *models.Product, quantity int) {
	t.Helper()
	cart, err := f.carts.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	cart.Items = append(cart.Items, models.CartItem{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
	require.NoError(t, f.carts.Save(context.Background(), cart))
}

func (f *checkoutFixture) issueCoupon(t *testing.T, ownerID primitive.ObjectID, percent int, issuedAt time.Time) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		OwnerID:         ownerID,
		DiscountPercent: percent,
		IssuedAt:        issuedAt,
		ExpiresAt:       issuedAt.Add(models.CouponValidity),
	}
	require.NoError(t, f.couponRepo.Issue(context.Background(), coupon))
	return coupon
}

func TestCheckoutAppliesCouponDiscount(t *testing.T) {
	product := &models.Product{Title: "Keyboard", Price: 50.00, Stock: 10}
	fixture := newCheckoutFixture(t, product)
	userID := primitive.NewObjectID()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fixture.service.now = func() time.Time { return now }

	fixture.fillCart(t, userID, product, 2)
	coupon := fixture.issueCoupon(t, userID, 20, now.Add(-time.Hour))

	order, err := fixture.service.Checkout(context.Background(), userID, coupon.Code)
	require.NoError(t, err)

	assert.Equal(t, 100.00, order.Subtotal)
	assert.Equal(t, 20, order.DiscountPercent)
	assert.Equal(t, 20.00, order.DiscountAmount)
	assert.Equal(t, 80.00, order.Total)
	assert.Equal(t, coupon.Code, order.CouponCode)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.NotEmpty(t, order.PaymentRef)

	// Payment was taken for the discounted total.
	require.Len(t, fixture.payments.payments, 1)
	assert.Equal(t, 80.00, fixture.payments.payments[0].Amount)

	// The coupon is spent and bound to the order.
	redeemed, err := fixture.couponRepo.GetByCode(context.Background(), coupon.Code)
	require.NoError(t, err)
	assert.True(t, redeemed.Redeemed)
	require.NotNil(t, redeemed.RedeemedOrderID)
	assert.Equal(t, order.ID, *redeemed.RedeemedOrderID)

	// Stock is reduced and the cart is gone.
	left, err := fixture.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, left.Stock)

	cart, err := fixture.carts.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCheckoutWithoutCoupon(t *testing.T) {
	product := &models.Product{Title: "Mug", Price: 12.50, Stock: 3}
	fixture := newCheckoutFixture(t, product)
	userID := primitive.NewObjectID()

	fixture.fillCart(t, userID, product, 3)

	order, err := fixture.service.Checkout(context.Background(), userID, "")
	require.NoError(t, err)

	assert.Equal(t, 37.50, order.Subtotal)
	assert.Equal(t, 0, order.DiscountPercent)
	assert.Equal(t, 37.50, order.Total)
}

func TestCheckoutEmptyCart(t *testing.T) {
	fixture := newCheckoutFixture(t)
	userID := primitive.NewObjectID()

	_, err := fixture.service.Checkout(context.Background(), userID, "")
	assert.ErrorIs(t, err, models.ErrEmptyCart)
	assert.Empty(t, fixture.payments.payments)
}

func TestCheckoutRejectsForeignCoupon(t *testing.T) {
	product := &models.Product{Title: "Lamp", Price: 30.00, Stock: 5}
	fixture := newCheckoutFixture(t, product)
	userID := primitive.NewObjectID()
	otherUser := primitive.NewObjectID()
	now := time.Now()

	fixture.fillCart(t, userID, product, 1)
	coupon := fixture.issueCoupon(t, otherUser, 25, now)

	_, err := fixture.service.Checkout(context.Background(), userID, coupon.Code)
	assert.ErrorIs(t, err, models.ErrCouponNotOwned)

	// Nothing was charged or recorded.
	assert.Empty(t, fixture.payments.payments)
	assert.Empty(t, fixture.orders.orders)
}

func TestCheckoutRejectsRedeemedCoupon(t *testing.T) {
	product := &models.Product{Title: "Lamp", Price: 30.00, Stock: 5}
	fixture := newCheckoutFixture(t, product)
	userID := primitive.NewObjectID()
	now := time.Now()

	fixture.fillCart(t, userID, product, 1)
	coupon := fixture.issueCoupon(t, userID, 25, now)
	_, err := fixture.couponRepo.Redeem(context.Background(), coupon.Code, userID, primitive.NewObjectID(), now)
	require.NoError(t, err)

	_, err = fixture.service.Checkout(context.Background(), userID, coupon.Code)
	assert.ErrorIs(t, err, models.ErrCouponAlreadyRedeemed)
	assert.Empty(t, fixture.orders.orders)
}

func TestCheckoutRejectsExpiredCoupon(t *testing.T) {
	product := &models.Product{Title: "Lamp", Price: 30.00, Stock: 5}
	fixture := newCheckoutFixture(t, product)
	userID := primitive.NewObjectID()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	fixture.service.now = func() time.Time { return now }

	fixture.fillCart(t, userID, product, 1)
	coupon := fixture.issueCoupon(t, userID, 25, now.Add(-models.CouponValidity-time.Hour))

	_, err := fixture.service.Checkout(context.Background(), userID, coupon.Code)
	assert.ErrorIs(t, err, models.ErrCouponExpired)
	assert.Empty(t, fixture.orders.orders)
}

func TestCheckoutInsufficientStockRestoresReservations(t *testing.T) {
	plentiful := &models.Product{Title: "Pen", Price: 2.00, Stock: 10}
	scarce := &models.Product{Title: "Notebook", Price: 5.00, Stock: 1}
	fixture := newCheckoutFixture(t, plentiful, scarce)
	userID := primitive.NewObjectID()

	fixture.fillCart(t, userID, plentiful, 2)
	fixture.fillCart(t, userID, scarce, 3)

	_, err := fixture.service.Checkout(context.Background(), userID, "")
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	// The first line's reservation was rolled back.
	left, err := fixture.products.GetByID(context.Background(), plentiful.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, left.Stock)

	assert.Empty(t, fixture.payments.payments)
	assert.Empty(t, fixture.orders.orders)
}

func TestCheckoutPaymentDeclinedRestoresStock(t *testing.T) {
	product := &models.Product{Title: "Chair", Price: 80.00, Stock: 4}
	fixture := newCheckoutFixture(t, product)
	fixture.payments.declineAll = true
	userID := primitive.NewObjectID()

	fixture.fillCart(t, userID, product, 1)

	_, err := fixture.service.Checkout(context.Background(), userID, "")
	assert.ErrorIs(t, err, models.ErrPaymentDeclined)

	left, err := fixture.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, left.Stock)
	assert.Empty(t, fixture.orders.orders)
}

func TestCheckoutOrderPersistenceFailureRefunds(t *testing.T) {
	product := &models.Product{Title: "Desk", Price: 120.00, Stock: 2}
	fixture := newCheckoutFixture(t, product)
	fixture.orders.fail = true
	userID := primitive.NewObjectID()

	fixture.fillCart(t, userID, product, 1)

	_, err := fixture.service.Checkout(context.Background(), userID, "")
	require.Error(t, err)

	// The charge was refunded and the stock restored.
	require.Len(t, fixture.payments.refunds, 1)
	assert.Equal(t, 120.00, fixture.payments.refunds[0].Amount)

	left, err := fixture.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, left.Stock)
}

func TestListOrdersNewestFirst(t *testing.T) {
	product := &models.Product{Title: "Book", Price: 10.00, Stock: 10}
	fixture := newCheckoutFixture(t, product)
	userID := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		fixture.fillCart(t, userID, product, 1)
		_, err := fixture.service.Checkout(context.Background(), userID, "")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	params := &utils.PaginationParams{Page: 1, PageSize: 10, Sort: "created_at", Order: "desc"}
	orders, total, err := fixture.service.ListOrders(context.Background(), userID, params)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, orders, 3)

	for i := 1; i < len(orders); i++ {
		assert.True(t, !orders[i-1].CreatedAt.Before(orders[i].CreatedAt))
	}
}
