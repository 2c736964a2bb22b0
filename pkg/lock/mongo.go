package lock

import (
	"context"
	"fmt"
	"pediacenter/pkg/model"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "Booking_locks"

// Mongo is an advisory lock backed by a unique _id. A duplicate key on
// insert means another holder owns the lock.
type Mongo struct {
	collection    *mongo.Collection
	key           string
	ttl           time.Duration
	retryInterval time.Duration
}

func NewMongo(db *mongo.Database, key string, ttl time.Duration) *Mongo {
	return &Mongo{
		collection:    db.Collection(CollectionName),
		key:           key,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
	}
}

func (m *Mongo) Acquire(ctx context.Context) (Release, error) {
	owner := uuid.NewString()

	err := retry(ctx, m.retryInterval, func() (bool, error) {
		now := time.Now()

		// the TTL monitor runs about once a minute, so clear stale holders here
		if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": m.key, "expires_at": bson.M{"$lt": now}}); err != nil {
			return false, fmt.Errorf("clear expired lock: %w", err)
		}

		_, err := m.collection.InsertOne(ctx, &model.BookingLock{
			ID:        m.key,
			Owner:     owner,
			ExpiresAt: now.Add(m.ttl),
			CreatedAt: now,
		})
		if err == nil {
			return true, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert lock: %w", err)
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		_, err := m.collection.DeleteOne(ctx, bson.M{"_id": m.key, "owner": owner})
		return err
	}, nil
}
