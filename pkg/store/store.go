package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	reminderCollection     = "reminders"
	counterCollection      = "counters"
	offTopicNameCollection = "offTopicNames"
)

// Store represents the store.
type Store struct {
	client        *mongo.Client
	database      string
	reminders     *mongo.Collection
	counters      *mongo.Collection
	offTopicNames *mongo.Collection
}

// New creates a new Store using the given database.
func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)

	return &Store{
		client:        client,
		database:      database,
		reminders:     db.Collection(reminderCollection),
		counters:      db.Collection(counterCollection),
		offTopicNames: db.Collection(offTopicNameCollection),
	}
}

// Bootstrap bootstraps the database.
func (s *Store) Bootstrap(ctx context.Context) error {
	offTopicIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: 1},
			},
			Options: options.Index().
				SetName("_uniq_name").
				SetUnique(true),
		},
	}

	if _, err := s.offTopicNames.Indexes().CreateMany(ctx, offTopicIndexes); err != nil {
		return fmt.Errorf("create off-topic name indexes: %w", err)
	}

	reminderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "endTime", Value: 1},
			},
			Options: options.Index().SetName("_end_time"),
		},
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
			},
			Options: options.Index().SetName("_user_id"),
		},
	}

	if _, err := s.reminders.Indexes().CreateMany(ctx, reminderIndexes); err != nil {
		return fmt.Errorf("create reminder indexes: %w", err)
	}

	return nil
}

// nextSequence atomically increments and returns the counter with the given name.
func (s *Store) nextSequence(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}

	err := s.counters.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("increment counter %q: %w", name, err)
	}

	return counter.Seq, nil
}
