package store

import (
	"context"
	"fmt"
	mongotx "pediacenter/pkg/db/mongo"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Bookings"

type bookingDocument struct {
	Seq           int `bson:"seq"`
	model.Booking `bson:",inline"`
}

// MongoStore keeps one document per booking; seq preserves list order.
type MongoStore struct {
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
	timeout    time.Duration
	log        *logger.Logger
}

func NewMongoStore(client *mongo.Client, database string, timeout time.Duration, log *logger.Logger) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(client),
		timeout:    timeout,
		log:        log,
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext cannot be wrapped without breaking transaction semantics.
func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *MongoStore) Load(ctx context.Context) ([]*model.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings, err := decodeBookings(ctx, cursor, s.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return prepare(bookings), nil
}

// decodeBookings skips and logs documents that do not decode.
func decodeBookings(ctx context.Context, cursor *mongo.Cursor, log *logger.Logger) ([]*model.Booking, error) {
	bookings := make([]*model.Booking, 0)
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Warn("Skipping undecodable booking document", "error", err, "id", cursor.Current.Lookup("_id").String())
			continue
		}
		b := doc.Booking
		bookings = append(bookings, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *MongoStore) Save(ctx context.Context, bookings []*model.Booking) error {
	docs := make([]any, 0, len(bookings))
	for i, b := range bookings {
		docs = append(docs, bookingDocument{Seq: i, Booking: *b})
	}

	return s.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.collection.DeleteMany(sessCtx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear bookings: %w", err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := s.collection.InsertMany(sessCtx, docs); err != nil {
			return fmt.Errorf("failed to insert bookings: %w", err)
		}
		return nil
	})
}
