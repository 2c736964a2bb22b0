package catalog

import (
	"context"
	"fmt"
	"pediacenter/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Provider_templates"

type MongoCatalog struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoCatalog(db *mongo.Database, timeout time.Duration) *MongoCatalog {
	return &MongoCatalog{
		collection: db.Collection(CollectionName),
		timeout:    timeout,
	}
}

func (c *MongoCatalog) RecurringSlotsFor(ctx context.Context, provider string) ([]model.ProviderTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	filter := bson.M{}
	if provider != "" {
		filter["name"] = provider
	}
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := c.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	defer cursor.Close(ctx)

	templates := make([]model.ProviderTemplate, 0)
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("%w: decode templates: %w", ErrCatalogUnavailable, err)
	}
	return templates, nil
}

// Seed replaces the collection with templates, numbering them in order.
func (c *MongoCatalog) Seed(ctx context.Context, templates []model.ProviderTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear templates: %w", err)
	}
	if len(templates) == 0 {
		return nil
	}

	docs := make([]any, 0, len(templates))
	for i, t := range templates {
		t.Position = i
		docs = append(docs, t)
	}
	if _, err := c.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert templates: %w", err)
	}
	return nil
}
