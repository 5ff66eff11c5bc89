// Package dedupe suppresses double execution of a command triggered
// twice for the same inbound message. Memory is bounded; eviction
// order is deliberately unspecified beyond "old entries go first".
package dedupe

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity matches the historical bound on tracked invocations.
const DefaultCapacity = 1000

type Guard struct {
	mu   sync.Mutex
	seen *lru.Cache[string, struct{}]
}

func NewGuard(capacity int) (*Guard, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[string, struct{}](capacity)
	if err != nil {
		return nil, err
	}
	return &Guard{seen: cache}, nil
}

// Admit reports whether the (message, command, user) tuple is seen for
// the first time. The check and the insert happen under one lock so
// two near-simultaneous duplicates cannot both pass.
func (g *Guard) Admit(messageID, command, userID string) bool {
	key := messageID + ":" + command + ":" + userID

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen.Get(key); ok {
		return false
	}
	g.seen.Add(key, struct{}{})
	return true
}

// Len returns the number of tracked invocation keys.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seen.Len()
}
