// Package reminders tracks pending reminders between scheduling and
// delivery. Delivery re-checks the registry at fire time, so dropping
// an id is enough to cancel a reminder.
package reminders

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Bounds accepted for a reminder delay.
const (
	MinDelay = 10 * time.Second
	MaxDelay = 90 * 24 * time.Hour
)

type Reminder struct {
	UserID    string
	ChannelID string
	Message   string
	DueAt     time.Time
}

type Registry struct {
	mu      sync.Mutex
	pending map[string]Reminder
}

func NewRegistry() *Registry {
	return &Registry{pending: make(map[string]Reminder)}
}

// Add registers a pending reminder and returns its id.
func (r *Registry) Add(rem Reminder) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[id] = rem
	return id
}

// Take removes and returns the reminder for id. The delivery timer
// calls this at fire time; a false return means the reminder was
// cancelled and nothing should be sent.
func (r *Registry) Take(id string) (Reminder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.pending[id]
	if ok {
		delete(r.pending, id)
	}
	return rem, ok
}

// Cancel removes a pending reminder; the timer will later fire and
// find nothing.
func (r *Registry) Cancel(id string) bool {
	_, ok := r.Take(id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
