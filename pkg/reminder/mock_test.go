package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/gurkult/gurkbot/pkg/store"
	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/mock"
)

type storerMock struct {
	mock.Mock
}

func (s *storerMock) CreateReminder(_ context.Context, reminder store.Reminder) (store.Reminder, error) {
	ret := s.Called(reminder)

	return ret.Get(0).(store.Reminder), ret.Error(1)
}

func (s *storerMock) ListReminders(_ context.Context) ([]store.Reminder, error) {
	ret := s.Called()

	return ret.Get(0).([]store.Reminder), ret.Error(1)
}

func (s *storerMock) RemoveReminder(_ context.Context, id int64) error {
	return s.Called(id).Error(0)
}

type discordMock struct {
	mock.Mock
}

func (d *discordMock) SendMessage(_ context.Context, channelID, text string) (*discord.Message, error) {
	ret := d.Called(channelID, text)

	return ret.Get(0).(*discord.Message), ret.Error(1)
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true

	return active
}

// fakeClock hands out timers that only fire when told to.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)

	return t
}

// Active returns the timers neither stopped nor fired.
func (c *fakeClock) Active() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var active []*fakeTimer

	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			active = append(active, t)
		}
	}

	return active
}

// Fire runs the timer callback synchronously.
func (c *fakeClock) Fire(t *fakeTimer) {
	c.mu.Lock()
	t.fired = true
	c.mu.Unlock()

	t.f()
}
