package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gurkult/gurkbot/pkg/store"
	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony/discord"
	"go.uber.org/atomic"
)

const (
	deliveryTimeout = 10 * time.Second

	// PreviewLength bounds the content shown in listings and confirmations.
	PreviewLength = 50
	// maxMessageContent keeps delivered reminders under the Discord message limit.
	maxMessageContent = 1800
)

// Discord is capable of sending messages to Discord channels.
type Discord interface {
	SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error)
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock and the timer factory used by the Service.
func WithClock(now func() time.Time, afterFunc AfterFunc) Option {
	return func(s *Service) {
		s.now = now
		s.scheduler = NewScheduler(afterFunc, now)
	}
}

// Service delivers reminders when they are due. It keeps a single timer
// armed for the reminder due the soonest.
type Service struct {
	cache   *Cache
	discord Discord
	now     func() time.Time

	available *atomic.Bool

	mu        sync.Mutex
	scheduler *Scheduler
	// delivering holds the reminders sent but not yet removed. They are
	// never scheduled again, even when a restart reads them back from storage.
	delivering map[int64]struct{}
}

// New creates a new Service. It must be started before use.
func New(s Storer, d Discord, opts ...Option) *Service {
	svc := &Service{
		cache:     NewCache(s),
		discord:   d,
		now:       time.Now,
		available: atomic.NewBool(false),
		scheduler: NewScheduler(nil, nil),

		delivering: make(map[int64]struct{}),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Start loads the pending reminders and arms the timer. On failure the
// Service stays unavailable.
func (s *Service) Start(ctx context.Context) error {
	if err := s.cache.Sync(ctx); err != nil {
		s.available.Store(false)

		return fmt.Errorf("sync reminders: %w", err)
	}

	s.available.Store(true)

	s.mu.Lock()
	s.reschedule()
	s.mu.Unlock()

	log.Info().Int("pending", s.cache.Len()).Msg("Reminders started")

	return nil
}

// Stop disarms the timer.
func (s *Service) Stop() {
	s.available.Store(false)

	s.mu.Lock()
	s.scheduler.Cancel()
	s.mu.Unlock()
}

// Available reports whether the Service was started successfully.
func (s *Service) Available() bool {
	return s.available.Load()
}

// Add creates a reminder due after d.
func (s *Service) Add(ctx context.Context, userID, channelID, origin string, d time.Duration, content string) (store.Reminder, error) {
	if !s.Available() {
		return store.Reminder{}, ErrUnavailable
	}

	if d <= 0 {
		return store.Reminder{}, &InvalidDurationError{Input: d.String(), Reason: "must be in the future"}
	}

	if d > MaxOffset {
		return store.Reminder{}, &InvalidDurationError{Input: d.String(), Reason: "must be less than 366 days"}
	}

	reminder, err := s.cache.Insert(ctx, store.Reminder{
		OriginReference: origin,
		UserID:          userID,
		ChannelID:       channelID,
		EndTime:         s.now().Add(d).UTC(),
		Content:         content,
	})
	if err != nil {
		return store.Reminder{}, err
	}

	s.mu.Lock()
	s.reschedule()
	s.mu.Unlock()

	return reminder, nil
}

// Delete deletes the reminder with the given ID on behalf of the given user.
func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if !s.Available() {
		return ErrUnavailable
	}

	reminder, ok := s.cache.Get(id)
	if !ok {
		return &NotFoundError{ID: id}
	}

	if reminder.UserID != userID {
		return &ForbiddenError{ID: id}
	}

	if err := s.cache.Remove(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.reschedule()
	s.mu.Unlock()

	return nil
}

// List returns the pending reminders of the given user, the soonest first.
func (s *Service) List(userID string) ([]store.Reminder, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	return s.cache.ListByUser(userID), nil
}

// reschedule must be called with s.mu held.
func (s *Service) reschedule() {
	recent, ok := s.cache.NextDue(s.isDelivering)
	if !ok || !s.Available() {
		s.scheduler.Cancel()
		return
	}

	if target, scheduled := s.scheduler.Target(); scheduled && target == recent.ID {
		return
	}

	s.scheduler.Schedule(recent.ID, recent.EndTime, s.fire)
}

// isDelivering must be called with s.mu held.
func (s *Service) isDelivering(id int64) bool {
	_, ok := s.delivering[id]

	return ok
}

func (s *Service) fire(token Token) {
	s.mu.Lock()

	if !s.scheduler.IsCurrent(token) {
		s.mu.Unlock()
		return
	}

	target, _ := s.scheduler.Target()
	reminder, ok := s.cache.Get(target)

	if !ok || s.isDelivering(target) {
		s.reschedule()
		s.mu.Unlock()

		return
	}

	s.delivering[target] = struct{}{}
	s.mu.Unlock()

	s.deliver(reminder)
}

func (s *Service) deliver(reminder store.Reminder) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	logger := log.With().Int64("reminder_id", reminder.ID).Str("user_id", reminder.UserID).Logger()

	if _, err := s.discord.SendMessage(ctx, reminder.ChannelID, Notification(reminder)); err != nil {
		logger.Error().Err(err).Msg("Unable to send reminder message")
	}

	if err := s.cache.Remove(ctx, reminder.ID); err != nil {
		logger.Error().Err(err).Msg("Unable to remove delivered reminder")
		s.cache.Forget(reminder.ID)
	}

	s.mu.Lock()
	delete(s.delivering, reminder.ID)
	s.reschedule()
	s.mu.Unlock()
}

// Notification renders the message sent when the reminder is due.
func Notification(reminder store.Reminder) string {
	return fmt.Sprintf("<@%s> :alarm_clock: Reminder: %s\nID: %d",
		reminder.UserID, Truncate(reminder.Content, maxMessageContent), reminder.ID)
}

// Confirmation renders the message sent when the reminder is created.
func Confirmation(reminder store.Reminder) string {
	return fmt.Sprintf(":white_check_mark: Your reminder will arrive on %s: %s\nID: %d",
		reminder.EndTime.UTC().Format(time.RFC1123), Truncate(reminder.Content, PreviewLength), reminder.ID)
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)

	return string(runes[:max-3]) + "..."
}
