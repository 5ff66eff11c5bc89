// Package filter screens message content against the banned word list
// and the link allowlist.
package filter

import (
	"fmt"
	"strings"

	"modwarden/internal/utils"
)

type Config struct {
	BannedWords   []string
	AllowLinks    bool
	LinkAllowlist []string
}

type Module struct {
	cfg Config
}

func New(cfg Config) *Module {
	return &Module{cfg: cfg}
}

// Check returns a short reason when the message violates the content
// rules. The caller deletes the message and posts the notice.
func (m *Module) Check(content string) (string, bool) {
	lower := strings.ToLower(content)
	for _, word := range m.cfg.BannedWords {
		if strings.Contains(lower, strings.ToLower(word)) {
			return fmt.Sprintf("banned word %q", word), true
		}
	}

	if m.cfg.AllowLinks {
		return "", false
	}
	for _, raw := range utils.ExtractURLs(content) {
		host, err := utils.URLHost(raw)
		if err != nil {
			continue
		}
		if !utils.HostAllowed(host, m.cfg.LinkAllowlist) {
			return fmt.Sprintf("link to %s", host), true
		}
	}
	return "", false
}
