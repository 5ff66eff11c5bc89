package state

// LockChannel adds a channel to the guild's locked set; false means it
// was already locked.
func (s *Store) LockChannel(guildID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guild(guildID)
	if _, ok := g.locked[channelID]; ok {
		return false
	}
	g.locked[channelID] = struct{}{}
	return true
}

// UnlockChannel removes a channel from the locked set; false means it
// was not locked. Timed unlocks call this at fire time, so a manual
// unlock in the meantime turns the timer into a no-op.
func (s *Store) UnlockChannel(guildID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return false
	}
	if _, ok := g.locked[channelID]; !ok {
		return false
	}
	delete(g.locked, channelID)
	return true
}

// ChannelLocked reports whether a channel is in the locked set.
func (s *Store) ChannelLocked(guildID, channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil {
		return false
	}
	_, ok := g.locked[channelID]
	return ok
}
