package reminder

import "time"

// Timer is a pending call created by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc calls f in its own goroutine after d has elapsed.
type AfterFunc func(d time.Duration, f func()) Timer

func timeAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Token identifies a scheduled wake.
type Token uint64

type wake struct {
	token  Token
	target int64
	timer  Timer
}

// Scheduler holds at most one outstanding wake. It is not safe for concurrent
// use: callers serialize access.
type Scheduler struct {
	afterFunc AfterFunc
	now       func() time.Time

	last    Token
	current *wake
}

// NewScheduler creates a Scheduler. Nil arguments default to the time package.
func NewScheduler(afterFunc AfterFunc, now func() time.Time) *Scheduler {
	if afterFunc == nil {
		afterFunc = timeAfterFunc
	}

	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		afterFunc: afterFunc,
		now:       now,
	}
}

// Schedule replaces the outstanding wake by one calling fn at the given time
// for the given reminder. A time in the past fires immediately.
func (s *Scheduler) Schedule(target int64, at time.Time, fn func(Token)) Token {
	s.Cancel()

	s.last++
	token := s.last

	d := at.Sub(s.now())
	if d < 0 {
		d = 0
	}

	s.current = &wake{
		token:  token,
		target: target,
		timer:  s.afterFunc(d, func() { fn(token) }),
	}

	return token
}

// Cancel stops the outstanding wake, if any.
func (s *Scheduler) Cancel() {
	if s.current == nil {
		return
	}

	s.current.timer.Stop()
	s.current = nil
}

// Target returns the reminder targeted by the outstanding wake.
func (s *Scheduler) Target() (int64, bool) {
	if s.current == nil {
		return 0, false
	}

	return s.current.target, true
}

// IsCurrent reports whether token identifies the outstanding wake.
func (s *Scheduler) IsCurrent(token Token) bool {
	return s.current != nil && s.current.token == token
}
