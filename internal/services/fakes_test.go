package services

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/repositories/interfaces"
	"gocart/internal/utils"
	"gocart/pkg/logger"
	"gocart/pkg/payment"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stderr",
	})
	require.NoError(t, err)
	return log
}

// In-memory repository fakes. They mirror the atomic semantics of the
// MongoDB implementations closely enough to exercise the services.

type fakeEntitlementRepo struct {
	records map[primitive.ObjectID]*models.DrawEntitlement
}

func newFakeEntitlementRepo() *fakeEntitlementRepo {
	return &fakeEntitlementRepo{records: make(map[primitive.ObjectID]*models.DrawEntitlement)}
}

func (f *fakeEntitlementRepo) Get(ctx context.Context, userID primitive.ObjectID) (*models.DrawEntitlement, error) {
	record, ok := f.records[userID]
	if !ok {
		return &models.DrawEntitlement{
			UserID:            userID,
			RemainingAttempts: models.DailyDrawQuota,
		}, nil
	}

	view := *record
	if view.LastDrawAt != nil && !models.SameUTCDay(*view.LastDrawAt, time.Now()) {
		view.RemainingAttempts = models.DailyDrawQuota
	}
	return &view, nil
}

func (f *fakeEntitlementRepo) Consume(ctx context.Context, userID primitive.ObjectID, now time.Time) (int, error) {
	record, ok := f.records[userID]
	if !ok {
		record = &models.DrawEntitlement{
			UserID:            userID,
			RemainingAttempts: models.DailyDrawQuota,
		}
		f.records[userID] = record
	}

	if record.LastDrawAt != nil && !models.SameUTCDay(*record.LastDrawAt, now) {
		record.RemainingAttempts = models.DailyDrawQuota
	}

	if record.RemainingAttempts <= 0 {
		return 0, models.ErrQuotaExhausted
	}

	record.RemainingAttempts--
	at := now
	record.LastDrawAt = &at
	record.UpdatedAt = now

	return record.RemainingAttempts, nil
}

type fakeCouponRepo struct {
	coupons []*models.Coupon
}

func (f *fakeCouponRepo) Issue(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.Code = utils.GenerateCouponCode()
	stored := *coupon
	f.coupons = append(f.coupons, &stored)
	return nil
}

func (f *fakeCouponRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	for _, coupon := range f.coupons {
		if coupon.ID == id {
			view := *coupon
			return &view, nil
		}
	}
	return nil, models.ErrCouponNotFound
}

func (f *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	for _, coupon := range f.coupons {
		if coupon.Code == code {
			view := *coupon
			return &view, nil
		}
	}
	return nil, models.ErrCouponNotFound
}

func (f *fakeCouponRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, redeemed *bool) ([]*models.Coupon, error) {
	var owned []*models.Coupon
	for _, coupon := range f.coupons {
		if coupon.OwnerID != ownerID {
			continue
		}
		if redeemed != nil && coupon.Redeemed != *redeemed {
			continue
		}
		view := *coupon
		owned = append(owned, &view)
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].IssuedAt.After(owned[j].IssuedAt)
	})
	return owned, nil
}

func (f *fakeCouponRepo) Redeem(ctx context.Context, code string, ownerID, orderID primitive.ObjectID, now time.Time) (*models.Coupon, error) {
	for _, coupon := range f.coupons {
		if coupon.Code != code {
			continue
		}
		switch {
		case coupon.OwnerID != ownerID:
			return nil, models.ErrCouponNotOwned
		case coupon.Redeemed:
			return nil, models.ErrCouponAlreadyRedeemed
		case coupon.Expired(now):
			return nil, models.ErrCouponExpired
		}
		coupon.Redeemed = true
		coupon.RedeemedAt = &now
		coupon.RedeemedOrderID = &orderID
		view := *coupon
		return &view, nil
	}
	return nil, models.ErrCouponNotFound
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return models.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	view := *user
	return &view, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			view := *user
			return &view, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	user, ok := f.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	if password, ok := updates["password"].(string); ok {
		user.Password = password
	}
	if token, ok := updates["device_token"].(string); ok {
		user.DeviceToken = token
	}
	if name, ok := updates["display_name"].(string); ok {
		user.DisplayName = name
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	user.LastLoginAt = &at
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	var users []*models.User
	for _, user := range f.users {
		view := *user
		users = append(users, &view)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return models.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeLockService struct {
	contended bool
	acquired  int
	released  int
}

func (f *fakeLockService) Acquire(ctx context.Context, name string, ttl time.Duration) (ReleaseFunc, bool, error) {
	if f.contended {
		return nil, false, nil
	}
	f.acquired++
	return func(ctx context.Context) error {
		f.released++
		return nil
	}, true, nil
}

type fakeProductRepo struct {
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
	for _, product := range products {
		if product.ID.IsZero() {
			product.ID = primitive.NewObjectID()
		}
		stored := *product
		repo.products[product.ID] = &stored
	}
	return repo
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	stored := *product
	f.products[product.ID] = &stored
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	view := *product
	return &view, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Product, error) {
	var found []*models.Product
	for _, id := range ids {
		if product, ok := f.products[id]; ok {
			view := *product
			found = append(found, &view)
		}
	}
	return found, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	product, ok := f.products[id]
	if !ok {
		return models.ErrProductNotFound
	}
	if image, ok := updates["image"].(string); ok {
		product.Image = image
	}
	if price, ok := updates["price"].(float64); ok {
		product.Price = price
	}
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(ctx context.Context, filter *interfaces.ProductFilter, params *utils.PaginationParams) ([]*models.Product, int64, error) {
	var products []*models.Product
	for _, product := range f.products {
		view := *product
		products = append(products, &view)
	}
	return products, int64(len(products)), nil
}

func (f *fakeProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var categories []string
	for _, product := range f.products {
		if !seen[product.Category] {
			seen[product.Category] = true
			categories = append(categories, product.Category)
		}
	}
	return categories, nil
}

func (f *fakeProductRepo) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	if product.Stock+delta < 0 {
		return nil, models.ErrInsufficientStock
	}
	product.Stock += delta
	view := *product
	return &view, nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	product, ok := f.products[id]
	if !ok {
		return models.ErrProductNotFound
	}
	if product.Stock < quantity {
		return models.ErrInsufficientStock
	}
	product.Stock -= quantity
	return nil
}

type fakeCartRepo struct {
	carts map[primitive.ObjectID]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (f *fakeCartRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	view := *cart
	view.Items = append([]models.CartItem(nil), cart.Items...)
	return &view, nil
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *models.Cart) error {
	stored := *cart
	stored.Items = append([]models.CartItem(nil), cart.Items...)
	f.carts[cart.UserID] = &stored
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID primitive.ObjectID) error {
	delete(f.carts, userID)
	return nil
}

type fakeOrderRepo struct {
	orders []*models.Order
	fail   bool
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if f.fail {
		return fmt.Errorf("insert failed")
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	stored := *order
	f.orders = append(f.orders, &stored)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	for _, order := range f.orders {
		if order.ID == id {
			view := *order
			return &view, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	var orders []*models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			view := *order
			orders = append(orders, &view)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, int64(len(orders)), nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	for _, order := range f.orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return models.ErrOrderNotFound
}

type fakePaymentProvider struct {
	declineAll bool
	payments   []*payment.PaymentRequest
	refunds    []*payment.RefundRequest
}

func (f *fakePaymentProvider) ProcessPayment(ctx context.Context, request *payment.PaymentRequest) (*payment.PaymentResponse, error) {
	f.payments = append(f.payments, request)
	status := payment.StatusSucceeded
	if f.declineAll {
		status = payment.StatusFailed
	}
	return &payment.PaymentResponse{
		TransactionID: fmt.Sprintf("test_%d", len(f.payments)),
		Status:        status,
		Amount:        request.Amount,
		Currency:      request.Currency,
	}, nil
}

func (f *fakePaymentProvider) RefundPayment(ctx context.Context, request *payment.RefundRequest) (*payment.RefundResponse, error) {
	f.refunds = append(f.refunds, request)
	return &payment.RefundResponse{
		RefundID: fmt.Sprintf("refund_%d", len(f.refunds)),
		Status:   payment.StatusSucceeded,
		Amount:   request.Amount,
	}, nil
}
