package services

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/repositories/interfaces"
	"gocart/internal/utils"
	"gocart/pkg/logger"
	"gocart/pkg/payment"
)

type CheckoutService interface {
	// Checkout turns the user's cart into a completed order, optionally
	// applying one coupon. The coupon is redeemed before the order is
	// recorded; a failed redemption aborts the whole checkout.
	Checkout(ctx context.Context, userID primitive.ObjectID, couponCode string) (*models.Order, error)

	GetOrder(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error)
	ListOrders(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Order, int64, error)
}

type checkoutService struct {
	cartRepo    interfaces.CartRepository
	orderRepo   interfaces.OrderRepository
	productRepo interfaces.ProductRepository
	couponRepo  interfaces.CouponRepository
	payments    payment.PaymentProvider
	currency    string
	logger      *logger.Logger
	now         func() time.Time
}

func NewCheckoutService(
	cartRepo interfaces.CartRepository,
	orderRepo interfaces.OrderRepository,
	productRepo interfaces.ProductRepository,
	couponRepo interfaces.CouponRepository,
	payments payment.PaymentProvider,
	currency string,
	log *logger.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		payments:    payments,
		currency:    currency,
		logger:      log,
		now:         time.Now,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, userID primitive.ObjectID, couponCode string) (*models.Order, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	now := s.now()
	subtotal := roundCents(cart.Subtotal())
	discountPercent := 0

	s.logger.LogUserAction(userID, utils.EventCheckoutStarted, map[string]interface{}{
		"items":    len(cart.Items),
		"subtotal": subtotal,
	})

	// Validate the coupon up front so the payment is taken for the
	// discounted amount. The authoritative redemption happens later and
	// can still fail under a race.
	if couponCode != "" {
		coupon, err := s.couponRepo.GetByCode(ctx, couponCode)
		if err != nil {
			return nil, err
		}
		switch {
		case coupon.OwnerID != userID:
			return nil, models.ErrCouponNotOwned
		case coupon.Redeemed:
			return nil, models.ErrCouponAlreadyRedeemed
		case coupon.Expired(now):
			return nil, models.ErrCouponExpired
		}
		discountPercent = coupon.DiscountPercent
	}

	discountAmount := roundCents(subtotal * float64(discountPercent) / 100)
	total := roundCents(subtotal - discountAmount)

	// Reserve stock line by line, uncommitting on any shortfall.
	reserved := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.restoreStock(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, item)
	}

	paid, err := s.payments.ProcessPayment(ctx, &payment.PaymentRequest{
		Amount:      total,
		Currency:    s.currency,
		Description: "GoCart order",
		CustomerID:  userID.Hex(),
	})
	if err != nil || paid.Status != payment.StatusSucceeded {
		s.restoreStock(ctx, reserved)
		if err != nil {
			return nil, err
		}
		return nil, models.ErrPaymentDeclined
	}

	orderID := primitive.NewObjectID()

	if couponCode != "" {
		redeemed, err := s.couponRepo.Redeem(ctx, couponCode, userID, orderID, now)
		if err != nil {
			s.restoreStock(ctx, reserved)
			s.refund(ctx, paid, "coupon redemption failed")
			return nil, err
		}
		s.logger.WithCouponID(redeemed.ID).WithOrderID(orderID).
			LogUserAction(userID, utils.EventCouponRedeemed, map[string]interface{}{
				"discount_percent": redeemed.DiscountPercent,
			})
	}

	order := &models.Order{
		ID:              orderID,
		UserID:          userID,
		Items:           cart.Items,
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		Total:           total,
		CouponCode:      couponCode,
		PaymentRef:      paid.TransactionID,
		Status:          models.OrderStatusCompleted,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		// The coupon, if any, is already bound to this order ID and
		// stays spent. Refund the charge and free the stock.
		s.restoreStock(ctx, reserved)
		s.refund(ctx, paid, "order persistence failed")
		return nil, err
	}

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.logger.WithError(err).WithUserID(userID).Warn("failed to clear cart after checkout")
	}

	s.logger.LogCheckoutEvent(order.ID, utils.EventOrderCompleted, order.Total, s.currency)

	return order, nil
}

func (s *checkoutService) GetOrder(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func (s *checkoutService) ListOrders(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	return s.orderRepo.ListByUser(ctx, userID, params)
}

func (s *checkoutService) restoreStock(ctx context.Context, items []models.CartItem) {
	for _, item := range items {
		if _, err := s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.WithError(err).WithField("product_id", item.ProductID.Hex()).Error("failed to restore reserved stock")
		}
	}
}

func (s *checkoutService) refund(ctx context.Context, paid *payment.PaymentResponse, reason string) {
	_, err := s.payments.RefundPayment(ctx, &payment.RefundRequest{
		TransactionID: paid.TransactionID,
		Amount:        paid.Amount,
		Reason:        reason,
	})
	if err != nil {
		s.logger.WithError(err).WithField("transaction_id", paid.TransactionID).Error("refund failed")
	}
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
