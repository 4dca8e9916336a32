package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketcore/marketplace-api/internal/api/metrics"
	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

const collectionCarts = "carts"

// CartRepository stores one cart document per user, keyed by the user id.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Cart
	err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save writes the full cart snapshot, conditional on the stored version
// matching cart.Version. A cart at version 0 is inserted; losing either race
// yields domain.ErrVersionConflict so the caller can reload and retry.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	next := *cart
	next.ID = cart.UserID
	next.Version = cart.Version + 1

	if cart.Version == 0 {
		if _, err := r.col.InsertOne(ctx, next); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				metrics.CartVersionConflictsTotal.Inc()
				return domain.ErrVersionConflict
			}
			return err
		}
		cart.Version = next.Version
		return nil
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": cart.UserID, "version": cart.Version}, next)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		metrics.CartVersionConflictsTotal.Inc()
		return domain.ErrVersionConflict
	}
	cart.Version = next.Version
	return nil
}

// Clear resets the cart to an empty snapshot in place. The document is kept
// so watchers keep their stream and the version history continues.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"items":       []domain.CartItem{},
			"total_items": 0,
			"subtotal":    0.0,
			"shipping":    0.0,
			"tax":         0.0,
			"total":       0.0,
			"updated_at":  time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

func (r *CartRepository) Watch(ctx context.Context, userID string) (<-chan *domain.Cart, ports.Subscription, error) {
	return watchByID[domain.Cart](ctx, r.col, userID)
}
