// Package polls tracks open polls between creation and the timed
// close that tallies reactions.
package polls

import (
	"sync"
	"time"
)

// Window is how long a poll accepts votes.
const Window = 60 * time.Second

// MaxQuestionLen bounds the poll question.
const MaxQuestionLen = 200

type Poll struct {
	Question  string
	AuthorID  string
	ChannelID string
	OpenedAt  time.Time
}

type Registry struct {
	mu   sync.Mutex
	open map[string]Poll
}

func NewRegistry() *Registry {
	return &Registry{open: make(map[string]Poll)}
}

// Open records a poll under its announcement message id.
func (r *Registry) Open(messageID string, p Poll) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open[messageID] = p
}

// Take removes and returns the poll for messageID. The close timer
// calls this at fire time; false means the poll is already gone
// (message deleted, poll discarded) and no results are posted.
func (r *Registry) Take(messageID string) (Poll, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.open[messageID]
	if ok {
		delete(r.open, messageID)
	}
	return p, ok
}

// Discard drops a poll without tallying, used when the announcement
// message turns out to be unreachable.
func (r *Registry) Discard(messageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, messageID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}
