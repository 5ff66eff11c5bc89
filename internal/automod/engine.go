// Package automod decides which escalation action, if any, follows a
// new warning. A guild maps warning-count thresholds to actions; the
// highest satisfied threshold wins, and a threshold fires only once
// per crossing.
package automod

import (
	"sync"

	"modwarden/internal/state"
)

const (
	// MinThreshold and MaxThreshold bound configurable thresholds.
	MinThreshold = 1
	MaxThreshold = 20

	// MuteMinutes is the fixed duration of an automod-issued mute.
	MuteMinutes = 60
)

type Engine struct {
	mu        sync.Mutex
	lastFired map[string]int
}

func NewEngine() *Engine {
	return &Engine{lastFired: make(map[string]int)}
}

// Evaluate is called right after a warning is added, never on a timer.
// It picks the highest threshold that the current count satisfies and
// has not already fired for this user; lower satisfied thresholds are
// intentionally skipped. Removing warnings below a fired threshold
// re-arms it.
func (e *Engine) Evaluate(guildID, userID string, rules map[int]state.Action, count int) (state.Action, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := guildID + ":" + userID
	if e.lastFired[key] > count {
		e.lastFired[key] = count
	}

	best := 0
	var action state.Action
	for threshold, act := range rules {
		if threshold <= count && threshold > best {
			best = threshold
			action = act
		}
	}
	if best == 0 || best <= e.lastFired[key] {
		return "", 0, false
	}

	e.lastFired[key] = best
	return action, best, true
}

// Forget drops the firing history for a user, used when their ledger
// entry is removed entirely.
func (e *Engine) Forget(guildID, userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.lastFired, guildID+":"+userID)
}
