// Package sched provides the delayed-callback mechanism behind every
// timed moderation effect: mute expiry, lockdown expiry, nap wake-up,
// reminder delivery and poll closing. Callbacks re-check the
// authoritative state when they fire; cancelling a pending effect is
// done by mutating that state, never by stopping the timer.
package sched

import "time"

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

type realTimer struct{ t *time.Timer }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return realTimer{t: time.AfterFunc(d, f)}
}

func (t realTimer) Stop() bool { return t.t.Stop() }

// Scheduler runs callbacks after a fixed delay. The delay is set at
// schedule time and is not renewable; scheduling a replacement effect
// simply leaves the old timer to fire and find its state gone.
type Scheduler struct {
	clock Clock
}

func New() *Scheduler {
	return &Scheduler{clock: realClock{}}
}

func (s *Scheduler) WithClock(clock Clock) {
	s.clock = clock
}

func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Schedule runs fn once after delay. A non-positive delay runs nothing:
// callers use that for "permanent until manually reversed" effects.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	if delay <= 0 {
		return
	}
	s.clock.AfterFunc(delay, fn)
}
