package state

// SetRule maps a warning-count threshold to an action for a guild.
// Setting the same threshold again overwrites the action.
func (s *Store) SetRule(guildID string, threshold int, action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).rules[threshold] = action
}

// RemoveRule deletes a threshold and reports whether it existed.
func (s *Store) RemoveRule(guildID string, threshold int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return false
	}
	if _, ok := g.rules[threshold]; !ok {
		return false
	}
	delete(g.rules, threshold)
	return true
}

// Rules returns a copy of a guild's threshold table.
func (s *Store) Rules(guildID string) map[int]Action {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return nil
	}
	out := make(map[int]Action, len(g.rules))
	for threshold, action := range g.rules {
		out[threshold] = action
	}
	return out
}
