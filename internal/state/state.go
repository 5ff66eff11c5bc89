// Package state owns every piece of volatile per-guild moderation
// state: the warning ledger, active mutes, automod rules, locked
// channels, prefix overrides and the welcome system settings. Nothing
// here survives a restart; that is a design decision, not an
// oversight.
package state

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a lookup targets a warning, mute or
// setting that does not exist.
var ErrNotFound = errors.New("not found")

// Action is an automod escalation action kind.
type Action string

const (
	ActionKick Action = "kick"
	ActionBan  Action = "ban"
	ActionMute Action = "mute"
)

// ParseAction validates a user-supplied action name.
func ParseAction(value string) (Action, bool) {
	switch Action(value) {
	case ActionKick, ActionBan, ActionMute:
		return Action(value), true
	default:
		return "", false
	}
}

// Warning is one ledger entry. IDs are per-user and strictly
// increasing while any warnings exist; they restart at 1 only after
// the user's ledger entry has been removed entirely.
type Warning struct {
	ID          int
	Reason      string
	ModeratorID string
	CreatedAt   time.Time
}

// MuteRecord tracks one active mute. A user has at most one; muting
// again replaces the record wholesale.
type MuteRecord struct {
	RoleID string
	Until  time.Time
}

// ChannelMessage holds a welcome or goodbye configuration.
type ChannelMessage struct {
	ChannelID string
	Message   string
}

type userWarnings struct {
	nextID   int
	warnings []Warning
}

type guildState struct {
	warnings   map[string]*userWarnings
	mutes      map[string]MuteRecord
	rules      map[int]Action
	locked     map[string]struct{}
	prefix     string
	muteRoleID string
	muteRoleMu sync.Mutex
	napping    bool
	welcome    *ChannelMessage
	goodbye    *ChannelMessage
	autoroleID string
}

// Store is the single owner of all per-guild state.
type Store struct {
	mu     sync.Mutex
	guilds map[string]*guildState
}

func NewStore() *Store {
	return &Store{guilds: make(map[string]*guildState)}
}

// guild returns the state for guildID, creating it on first touch.
// Callers must hold s.mu.
func (s *Store) guild(guildID string) *guildState {
	g := s.guilds[guildID]
	if g == nil {
		g = &guildState{
			warnings: make(map[string]*userWarnings),
			mutes:    make(map[string]MuteRecord),
			rules:    make(map[int]Action),
			locked:   make(map[string]struct{}),
		}
		s.guilds[guildID] = g
	}
	return g
}
