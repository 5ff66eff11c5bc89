package state

import "time"

// AddWarning appends a warning for (guildID, userID) and returns it
// along with the user's new warning count.
func (s *Store) AddWarning(guildID, userID, reason, moderatorID string, now time.Time) (Warning, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guild(guildID)
	u := g.warnings[userID]
	if u == nil {
		u = &userWarnings{}
		g.warnings[userID] = u
	}

	u.nextID++
	w := Warning{
		ID:          u.nextID,
		Reason:      reason,
		ModeratorID: moderatorID,
		CreatedAt:   now,
	}
	u.warnings = append(u.warnings, w)
	return w, len(u.warnings)
}

// RemoveWarning deletes the warning with the given id. When the last
// warning goes, the whole (guild, user) entry goes with it, so an
// emptied ledger is indistinguishable from one that never existed.
func (s *Store) RemoveWarning(guildID, userID string, id int) (Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return Warning{}, ErrNotFound
	}
	u := g.warnings[userID]
	if u == nil {
		return Warning{}, ErrNotFound
	}

	for i, w := range u.warnings {
		if w.ID == id {
			u.warnings = append(u.warnings[:i], u.warnings[i+1:]...)
			if len(u.warnings) == 0 {
				delete(g.warnings, userID)
			}
			return w, nil
		}
	}
	return Warning{}, ErrNotFound
}

// Warnings lists a user's warnings in insertion order.
func (s *Store) Warnings(guildID, userID string) []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return nil
	}
	u := g.warnings[userID]
	if u == nil {
		return nil
	}
	out := make([]Warning, len(u.warnings))
	copy(out, u.warnings)
	return out
}

// WarningCount returns the user's current warning count.
func (s *Store) WarningCount(guildID, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return 0
	}
	u := g.warnings[userID]
	if u == nil {
		return 0
	}
	return len(u.warnings)
}
