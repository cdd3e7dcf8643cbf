package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OffTopicName represents a name the off-topic channel can take.
type OffTopicName struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
	Uses int                `bson:"uses"`
}

// ListOffTopicNames lists all off-topic names sorted by name.
func (s *Store) ListOffTopicNames(ctx context.Context) ([]OffTopicName, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	res, err := s.offTopicNames.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find off-topic names: %w", err)
	}

	names := make([]OffTopicName, 0)
	if err = res.All(ctx, &names); err != nil {
		return nil, fmt.Errorf("decode off-topic names: %w", err)
	}

	return names, nil
}

// AddOffTopicName adds a new off-topic name.
func (s *Store) AddOffTopicName(ctx context.Context, name string) error {
	doc := OffTopicName{
		ID:   primitive.NewObjectID(),
		Name: name,
	}

	if _, err := s.offTopicNames.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert off-topic name: %w", duplicate("off-topic name", name, err))
	}

	return nil
}

// RemoveOffTopicName removes the given off-topic name.
func (s *Store) RemoveOffTopicName(ctx context.Context, name string) error {
	res, err := s.offTopicNames.DeleteOne(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return fmt.Errorf("delete off-topic name: %w", err)
	}

	if res.DeletedCount == 0 {
		return NotFoundError{Resource: "off-topic name", Key: name}
	}

	return nil
}

// IncrementOffTopicNameUses records one more use of the given name.
func (s *Store) IncrementOffTopicNameUses(ctx context.Context, name string) error {
	res, err := s.offTopicNames.UpdateOne(
		ctx,
		bson.D{{Key: "name", Value: name}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "uses", Value: 1}}}},
	)
	if err != nil {
		return fmt.Errorf("increment off-topic name uses: %w", err)
	}

	if res.MatchedCount == 0 {
		return NotFoundError{Resource: "off-topic name", Key: name}
	}

	return nil
}
