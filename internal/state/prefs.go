package state

// Prefix returns the guild's command prefix, or fallback when no
// override is set.
func (s *Store) Prefix(guildID, fallback string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil || g.prefix == "" {
		return fallback
	}
	return g.prefix
}

func (s *Store) SetPrefix(guildID, prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).prefix = prefix
}

// StartNap marks the guild's assistant as napping; false means a nap
// is already in progress.
func (s *Store) StartNap(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guild(guildID)
	if g.napping {
		return false
	}
	g.napping = true
	return true
}

// EndNap clears the napping flag and reports whether it was set. The
// wake-up timer uses the return value to decide whether to announce.
func (s *Store) EndNap(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil || !g.napping {
		return false
	}
	g.napping = false
	return true
}

func (s *Store) Napping(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	return g != nil && g.napping
}

func (s *Store) SetWelcome(guildID string, cfg ChannelMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).welcome = &cfg
}

func (s *Store) Welcome(guildID string) (ChannelMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil || g.welcome == nil {
		return ChannelMessage{}, false
	}
	return *g.welcome, true
}

func (s *Store) DisableWelcome(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil || g.welcome == nil {
		return false
	}
	g.welcome = nil
	return true
}

func (s *Store) SetGoodbye(guildID string, cfg ChannelMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).goodbye = &cfg
}

func (s *Store) Goodbye(guildID string) (ChannelMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil || g.goodbye == nil {
		return ChannelMessage{}, false
	}
	return *g.goodbye, true
}

func (s *Store) DisableGoodbye(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil || g.goodbye == nil {
		return false
	}
	g.goodbye = nil
	return true
}

func (s *Store) SetAutorole(guildID, roleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guild(guildID).autoroleID = roleID
}

func (s *Store) Autorole(guildID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil || g.autoroleID == "" {
		return "", false
	}
	return g.autoroleID, true
}

func (s *Store) DisableAutorole(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.guilds[guildID]
	if g == nil || g.autoroleID == "" {
		return false
	}
	g.autoroleID = ""
	return true
}
