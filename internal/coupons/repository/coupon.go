package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	couponserrors "slotbook/internal/coupons/errors"
	"slotbook/pkg/config"
	mongotx "slotbook/pkg/db/mongo"
	"slotbook/pkg/model"
)

const (
	CollectionName           = "Coupons"
	RedemptionCollectionName = "CouponRedemptions"
)

type mongoCouponRepository struct {
	cfg         *config.Config
	db          *mongo.Database
	collection  *mongo.Collection
	redemptions *mongo.Collection
	txManager   mongotx.TransactionManager
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByID(ctx context.Context, id string) (*model.Coupon, error)
	FindByCode(ctx context.Context, ownerCode, code string) (*model.Coupon, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Coupon, error)
	Count(ctx context.Context) (int64, error)
	IncrementUsage(ctx context.Context, id string, uses int) error
	HasRedemption(ctx context.Context, couponID, phone string) (bool, error)
	RecordRedemption(ctx context.Context, redemption *model.CouponRedemption) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoCouponRepository(cfg *config.Config) CouponRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCouponRepository{
		cfg:         cfg,
		db:          db,
		collection:  db.Collection(CollectionName),
		redemptions: db.Collection(RedemptionCollectionName),
		txManager:   mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoCouponRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	existing := r.collection.FindOne(ctx, bson.M{
		"owner_code": coupon.OwnerCode,
		"code":       coupon.Code,
	})
	if existing.Err() == nil {
		return couponserrors.ErrDuplicateCode
	}
	if !errors.Is(existing.Err(), mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check for duplicate coupon: %w", existing.Err())
	}

	coupon.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCouponRepository) FindByID(ctx context.Context, id string) (*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", couponserrors.ErrInvalidID, id)
	}

	var coupon model.Coupon
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, couponserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}

	return &coupon, nil
}

func (r *mongoCouponRepository) FindByCode(ctx context.Context, ownerCode, code string) (*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var coupon model.Coupon
	err := r.collection.FindOne(ctx, bson.M{
		"owner_code": ownerCode,
		"code":       code,
	}).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, couponserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find coupon by code: %w", err)
	}

	return &coupon, nil
}

func (r *mongoCouponRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Coupon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*model.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}

	return coupons, nil
}

func (r *mongoCouponRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count coupons: %w", err)
	}
	return count, nil
}

func (r *mongoCouponRepository) IncrementUsage(ctx context.Context, id string, uses int) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", couponserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"used_count": int64(uses)}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}
	if result.MatchedCount == 0 {
		return couponserrors.ErrNotFound
	}

	return nil
}

func (r *mongoCouponRepository) HasRedemption(ctx context.Context, couponID, phone string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.redemptions.CountDocuments(ctx, bson.M{
		"coupon_id": couponID,
		"phone":     phone,
	})
	if err != nil {
		return false, fmt.Errorf("failed to look up redemptions: %w", err)
	}
	return count > 0, nil
}

func (r *mongoCouponRepository) RecordRedemption(ctx context.Context, redemption *model.CouponRedemption) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	redemption.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.redemptions.InsertOne(ctx, redemption)
	if err != nil {
		return fmt.Errorf("failed to record redemption: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		redemption.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCouponRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
