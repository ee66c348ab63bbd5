package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/repositories/interfaces"
	"gocart/internal/utils"
	"gocart/pkg/logger"
	"gocart/pkg/push"
	"gocart/pkg/wheel"
)

type CouponService interface {
	// Spin runs one wheel draw for the user: it spends a daily attempt,
	// picks a discount and issues the coupon. ErrQuotaExhausted is
	// returned, with nothing written, when no attempt is left today.
	Spin(ctx context.Context, userID primitive.ObjectID) (*SpinResult, error)

	GetEntitlement(ctx context.Context, userID primitive.ObjectID) (*EntitlementStatus, error)

	// ListCoupons returns the user's coupon history newest first.
	// redeemed narrows the list when non-nil.
	ListCoupons(ctx context.Context, userID primitive.ObjectID, redeemed *bool) ([]*models.Coupon, error)
}

type SpinResult struct {
	Coupon            *models.Coupon `json:"coupon"`
	SegmentIndex      int            `json:"segment_index"`
	RemainingAttempts int            `json:"remaining_attempts"`
}

type EntitlementStatus struct {
	RemainingAttempts int       `json:"remaining_attempts"`
	DailyQuota        int       `json:"daily_quota"`
	ResetsAt          time.Time `json:"resets_at"`
}

type couponService struct {
	couponRepo      interfaces.CouponRepository
	entitlementRepo interfaces.EntitlementRepository
	userRepo        interfaces.UserRepository
	locks           LockService
	wheel           *wheel.Wheel
	pusher          push.PushProvider
	logger          *logger.Logger
	now             func() time.Time
}

func NewCouponService(
	couponRepo interfaces.CouponRepository,
	entitlementRepo interfaces.EntitlementRepository,
	userRepo interfaces.UserRepository,
	locks LockService,
	drawWheel *wheel.Wheel,
	pusher push.PushProvider,
	log *logger.Logger,
) CouponService {
	return &couponService{
		couponRepo:      couponRepo,
		entitlementRepo: entitlementRepo,
		userRepo:        userRepo,
		locks:           locks,
		wheel:           drawWheel,
		pusher:          pusher,
		logger:          log,
		now:             time.Now,
	}
}

func (s *couponService) Spin(ctx context.Context, userID primitive.ObjectID) (*SpinResult, error) {
	if userID.IsZero() {
		return nil, models.ErrNotAuthenticated
	}

	release, held, err := s.locks.Acquire(ctx, utils.CacheDrawLockPrefix+userID.Hex(), utils.DrawLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize draw: %w", err)
	}
	if !held {
		return nil, models.ErrDrawInProgress
	}
	defer func() {
		if releaseErr := release(ctx); releaseErr != nil {
			s.logger.WithError(releaseErr).WithUserID(userID).Warn("failed to release draw lock")
		}
	}()

	now := s.now()

	remaining, err := s.entitlementRepo.Consume(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	percent, index := s.wheel.Spin()

	coupon := &models.Coupon{
		OwnerID:         userID,
		DiscountPercent: percent,
		Redeemed:        false,
		IssuedAt:        now,
		ExpiresAt:       now.Add(models.CouponValidity),
	}
	if err := s.couponRepo.Issue(ctx, coupon); err != nil {
		// The attempt was spent but no coupon materialized. Surface the
		// failure; the spent attempt is the price of the broken insert.
		s.logger.WithError(err).WithUserID(userID).Error("coupon issue failed after attempt spent")
		return nil, err
	}

	s.logger.LogDrawEvent(userID, utils.EventWheelSpun, map[string]interface{}{
		"discount_percent":   percent,
		"segment_index":      index,
		"remaining_attempts": remaining,
		"coupon_code":        coupon.Code,
	})

	s.notifyWin(ctx, userID, coupon)

	return &SpinResult{
		Coupon:            coupon,
		SegmentIndex:      index,
		RemainingAttempts: remaining,
	}, nil
}

func (s *couponService) GetEntitlement(ctx context.Context, userID primitive.ObjectID) (*EntitlementStatus, error) {
	entitlement, err := s.entitlementRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &EntitlementStatus{
		RemainingAttempts: entitlement.RemainingAttempts,
		DailyQuota:        models.DailyDrawQuota,
		ResetsAt:          models.NextUTCMidnight(s.now()),
	}, nil
}

func (s *couponService) ListCoupons(ctx context.Context, userID primitive.ObjectID, redeemed *bool) ([]*models.Coupon, error) {
	return s.couponRepo.ListByOwner(ctx, userID, redeemed)
}

// notifyWin sends a best-effort push when the user has a registered device.
func (s *couponService) notifyWin(ctx context.Context, userID primitive.ObjectID, coupon *models.Coupon) {
	if s.pusher == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user.DeviceToken == "" {
		return
	}

	_, err = s.pusher.SendNotification(ctx, &push.NotificationRequest{
		Token: user.DeviceToken,
		Title: "You won a coupon!",
		Body:  fmt.Sprintf("%d%% off your next order with code %s", coupon.DiscountPercent, coupon.Code),
		Data: map[string]string{
			"type":        utils.EventCouponIssued,
			"coupon_code": coupon.Code,
		},
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(userID).Warn("coupon push notification failed")
	}
}
