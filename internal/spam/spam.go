// Package spam detects message bursts per (guild, user) with a
// sliding window; the bot answers a burst with a short automatic mute.
package spam

import (
	"sync"
	"time"

	"modwarden/internal/utils"
)

type Module struct {
	mu        sync.Mutex
	windows   map[string]*utils.SlidingWindow
	threshold int
	window    time.Duration
}

func New(threshold int, window time.Duration) *Module {
	return &Module{
		windows:   make(map[string]*utils.SlidingWindow),
		threshold: threshold,
		window:    window,
	}
}

// Record adds one message and reports whether the user just crossed
// the burst threshold. Exactly one trigger per crossing: messages
// beyond threshold+1 while the window stays saturated do not
// re-trigger.
func (m *Module) Record(guildID, userID string, now time.Time) bool {
	key := guildID + ":" + userID
	m.mu.Lock()
	w := m.windows[key]
	if w == nil {
		w = utils.NewSlidingWindow(m.window)
		m.windows[key] = w
	}
	m.mu.Unlock()

	return w.Add(now) == m.threshold+1
}
