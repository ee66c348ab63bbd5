package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gocart/internal/models"
	"gocart/internal/repositories/interfaces"
	"gocart/internal/utils"
)

type couponRepository struct {
	collection *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) interfaces.CouponRepository {
	return &couponRepository{
		collection: db.Collection("coupons"),
	}
}

func (r *couponRepository) Issue(ctx context.Context, coupon *models.Coupon) error {
	// The unique index on code turns a collision into a duplicate key
	// error, so a fresh code is drawn and the insert retried.
	for attempt := 0; attempt < utils.CouponCodeMaxRetries; attempt++ {
		coupon.ID = primitive.NewObjectID()
		coupon.Code = utils.GenerateCouponCode()

		_, err := r.collection.InsertOne(ctx, coupon)
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to issue coupon: %w", err)
		}
	}

	return fmt.Errorf("failed to issue coupon: code space exhausted after %d attempts", utils.CouponCodeMaxRetries)
}

func (r *couponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, redeemed *bool) ([]*models.Coupon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "issued_at", Value: -1}})

	filter := bson.M{"owner_id": ownerID}
	if redeemed != nil {
		filter["redeemed"] = *redeemed
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, nil
}

func (r *couponRepository) Redeem(ctx context.Context, code string, ownerID, orderID primitive.ObjectID, now time.Time) (*models.Coupon, error) {
	filter := bson.M{
		"code":       code,
		"owner_id":   ownerID,
		"redeemed":   false,
		"expires_at": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"redeemed":          true,
		"redeemed_at":       now,
		"redeemed_order_id": orderID,
	}}

	var coupon models.Coupon
	err := r.collection.FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&coupon)
	if err == nil {
		return &coupon, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to redeem coupon: %w", err)
	}

	// The atomic update matched nothing. Re-read to report which
	// precondition failed.
	existing, lookupErr := r.GetByCode(ctx, code)
	if lookupErr != nil {
		return nil, lookupErr
	}

	switch {
	case existing.OwnerID != ownerID:
		return nil, models.ErrCouponNotOwned
	case existing.Redeemed:
		return nil, models.ErrCouponAlreadyRedeemed
	case existing.Expired(now):
		return nil, models.ErrCouponExpired
	default:
		// Redeemed between the update and the re-read.
		return nil, models.ErrCouponAlreadyRedeemed
	}
}
