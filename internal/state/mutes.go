package state

import (
	"sync"
	"time"
)

// SetMute records an active mute, replacing any existing record for
// the user. The previous unmute timer, if one is pending, will find
// its record gone or changed and back off.
func (s *Store) SetMute(guildID, userID, roleID string, until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).mutes[userID] = MuteRecord{RoleID: roleID, Until: until}
}

// Mute returns the active mute record for a user, if any.
func (s *Store) Mute(guildID, userID string) (MuteRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return MuteRecord{}, false
	}
	rec, ok := g.mutes[userID]
	return rec, ok
}

// ClearMute removes a user's mute record and reports whether one
// existed. This is how a mute is "cancelled": the expiry timer checks
// the record at fire time and does nothing when it is gone.
func (s *Store) ClearMute(guildID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return false
	}
	if _, ok := g.mutes[userID]; !ok {
		return false
	}
	delete(g.mutes, userID)
	return true
}

// ClearMuteIfExpired removes the record only if it still matches the
// expiry the timer was scheduled for. A replacement mute (new Until)
// stays put and the stale timer becomes a no-op.
func (s *Store) ClearMuteIfExpired(guildID, userID string, now time.Time) (MuteRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return MuteRecord{}, false
	}
	rec, ok := g.mutes[userID]
	if !ok || rec.Until.After(now) {
		return MuteRecord{}, false
	}
	delete(g.mutes, userID)
	return rec, true
}

// MuteRoleID returns the cached mute role for a guild, or "".
func (s *Store) MuteRoleID(guildID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.guilds[guildID]
	if g == nil {
		return ""
	}
	return g.muteRoleID
}

func (s *Store) SetMuteRoleID(guildID, roleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).muteRoleID = roleID
}

// MuteRoleLock returns the per-guild lock held across the
// check-then-create of the mute role, so two concurrent first mutes
// cannot create two roles.
func (s *Store) MuteRoleLock(guildID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &s.guild(guildID).muteRoleMu
}
