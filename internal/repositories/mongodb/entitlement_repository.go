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

type entitlementRepository struct {
	collection *mongo.Collection
}

func NewEntitlementRepository(db *mongo.Database) interfaces.EntitlementRepository {
	return &entitlementRepository{
		collection: db.Collection("draw_entitlements"),
	}
}

func (r *entitlementRepository) Get(ctx context.Context, userID primitive.ObjectID) (*models.DrawEntitlement, error) {
	var entitlement models.DrawEntitlement
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&entitlement)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.DrawEntitlement{
				UserID:            userID,
				RemainingAttempts: models.DailyDrawQuota,
				UpdatedAt:         time.Now(),
			}, nil
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	// A record last touched on an earlier UTC day shows the full quota
	// again. The stored counter is reset lazily by Consume.
	if entitlement.LastDrawAt != nil && !models.SameUTCDay(*entitlement.LastDrawAt, time.Now()) {
		entitlement.RemainingAttempts = models.DailyDrawQuota
	}

	return &entitlement, nil
}

func (r *entitlementRepository) Consume(ctx context.Context, userID primitive.ObjectID, now time.Time) (int, error) {
	if err := r.ensureExists(ctx, userID, now); err != nil {
		return 0, err
	}

	if err := r.resetIfStale(ctx, userID, now); err != nil {
		return 0, err
	}

	var entitlement models.DrawEntitlement
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"user_id": userID, "remaining_attempts": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"remaining_attempts": -1},
			"$set": bson.M{"last_draw_at": now, "updated_at": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&entitlement)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, models.ErrQuotaExhausted
		}
		return 0, fmt.Errorf("failed to consume attempt: %w", err)
	}

	return entitlement.RemainingAttempts, nil
}

func (r *entitlementRepository) ensureExists(ctx context.Context, userID primitive.ObjectID, now time.Time) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$setOnInsert": bson.M{
			"user_id":            userID,
			"remaining_attempts": models.DailyDrawQuota,
			"updated_at":         now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to initialize entitlement: %w", err)
	}
	return nil
}

// resetIfStale restores the full quota when the last draw happened on an
// earlier UTC day. The date filter makes the reset idempotent under
// concurrent spins.
func (r *entitlementRepository) resetIfStale(ctx context.Context, userID primitive.ObjectID, now time.Time) error {
	startOfDay := utils.StartOfDay(now.UTC())

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"user_id": userID, "last_draw_at": bson.M{"$lt": startOfDay}},
		bson.M{"$set": bson.M{
			"remaining_attempts": models.DailyDrawQuota,
			"updated_at":         now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to reset entitlement: %w", err)
	}
	return nil
}
