package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/gurkult/gurkbot/pkg/store"
)

// Storer is capable of persisting reminders.
type Storer interface {
	CreateReminder(ctx context.Context, reminder store.Reminder) (store.Reminder, error)
	ListReminders(ctx context.Context) ([]store.Reminder, error)
	RemoveReminder(ctx context.Context, id int64) error
}

// Cache mirrors the pending reminders of the storage in memory.
// Every mutation is persisted before it is applied to the cache.
type Cache struct {
	store Storer

	mu        sync.RWMutex
	reminders map[int64]store.Reminder
}

// NewCache creates an empty Cache backed by the given storage.
func NewCache(s Storer) *Cache {
	return &Cache{
		store:     s,
		reminders: make(map[int64]store.Reminder),
	}
}

// Sync replaces the content of the cache with the reminders of the storage.
// The cache stays locked during the fetch so that an Insert or a Remove
// running concurrently is applied after the replacement, never before.
func (c *Cache) Sync(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	reminders, err := c.store.ListReminders(ctx)
	if err != nil {
		return &StorageError{Op: "list reminders", Err: err}
	}

	m := make(map[int64]store.Reminder, len(reminders))
	for _, r := range reminders {
		m[r.ID] = r
	}

	c.reminders = m

	return nil
}

// Insert persists the reminder and adds it to the cache. The returned
// reminder carries the ID assigned by the storage.
func (c *Cache) Insert(ctx context.Context, reminder store.Reminder) (store.Reminder, error) {
	created, err := c.store.CreateReminder(ctx, reminder)
	if err != nil {
		return store.Reminder{}, &StorageError{Op: "create reminder", Err: err}
	}

	c.mu.Lock()
	c.reminders[created.ID] = created
	c.mu.Unlock()

	return created, nil
}

// Remove deletes the reminder from the storage and from the cache. Removing a
// reminder the storage does not know about is not an error.
func (c *Cache) Remove(ctx context.Context, id int64) error {
	if err := c.store.RemoveReminder(ctx, id); err != nil {
		var notFound store.NotFoundError
		if !errors.As(err, &notFound) {
			return &StorageError{Op: "remove reminder", Err: err}
		}
	}

	c.Forget(id)

	return nil
}

// Forget drops the reminder from the cache only.
func (c *Cache) Forget(id int64) {
	c.mu.Lock()
	delete(c.reminders, id)
	c.mu.Unlock()
}

// Get returns the cached reminder with the given ID.
func (c *Cache) Get(id int64) (store.Reminder, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.reminders[id]

	return r, ok
}

// RecentDue returns the reminder due the soonest. Reminders due at the same
// time are ordered by ID.
func (c *Cache) RecentDue() (store.Reminder, bool) {
	return c.NextDue(nil)
}

// NextDue is RecentDue ignoring the reminders for which skip returns true.
func (c *Cache) NextDue(skip func(id int64) bool) (store.Reminder, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		recent store.Reminder
		found  bool
	)

	for id, r := range c.reminders {
		if skip != nil && skip(id) {
			continue
		}

		if !found || before(r, recent) {
			recent = r
			found = true
		}
	}

	return recent, found
}

// ListByUser returns the reminders of the given user, the soonest first.
func (c *Cache) ListByUser(userID string) []store.Reminder {
	c.mu.RLock()

	var reminders []store.Reminder

	for _, r := range c.reminders {
		if r.UserID == userID {
			reminders = append(reminders, r)
		}
	}

	c.mu.RUnlock()

	sort.Slice(reminders, func(i, j int) bool { return before(reminders[i], reminders[j]) })

	return reminders
}

// Len returns the number of cached reminders.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.reminders)
}

func before(a, b store.Reminder) bool {
	if a.EndTime.Equal(b.EndTime) {
		return a.ID < b.ID
	}

	return a.EndTime.Before(b.EndTime)
}
