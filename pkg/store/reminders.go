package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reminder represents a pending reminder.
type Reminder struct {
	ID              int64     `bson:"_id"`
	OriginReference string    `bson:"originReference"`
	UserID          string    `bson:"userId"`
	ChannelID       string    `bson:"channelId"`
	EndTime         time.Time `bson:"endTime"`
	Content         string    `bson:"content"`
}

// CreateReminder stores the given reminder and returns it with its newly assigned ID.
func (s *Store) CreateReminder(ctx context.Context, reminder Reminder) (Reminder, error) {
	id, err := s.nextSequence(ctx, reminderCollection)
	if err != nil {
		return Reminder{}, fmt.Errorf("next reminder id: %w", err)
	}

	reminder.ID = id
	reminder.EndTime = reminder.EndTime.UTC()

	if _, err = s.reminders.InsertOne(ctx, reminder); err != nil {
		return Reminder{}, fmt.Errorf("create reminder: %w", err)
	}

	return reminder, nil
}

// ListReminders lists all the reminders ordered by end time.
func (s *Store) ListReminders(ctx context.Context) ([]Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "endTime", Value: 1}, {Key: "_id", Value: 1}})

	res, err := s.reminders.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find reminders: %w", err)
	}

	reminders := make([]Reminder, 0)
	if err = res.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("decode reminders: %w", err)
	}

	return reminders, nil
}

// RemoveReminder removes the reminder with the given ID.
func (s *Store) RemoveReminder(ctx context.Context, id int64) error {
	res, err := s.reminders.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}

	if res.DeletedCount == 0 {
		return NotFoundError{Resource: "reminder", Key: id}
	}

	return nil
}
