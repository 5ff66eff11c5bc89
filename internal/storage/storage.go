// Package storage persists the moderation action log. Only history
// lives here; all live moderation state is in-memory by design.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

// ModAction is one recorded moderation action. ModeratorID is empty
// for automated actions (automod, spam mute, timed expiries).
type ModAction struct {
	ID          int64
	GuildID     string
	ModeratorID string
	TargetID    string
	Action      string
	Reason      string
	CreatedAt   time.Time
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *Store) Migrate() error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := migrations.ReadFile(path.Join("migrations", file))
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			if isIgnorableMigrationError(err) {
				continue
			}
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
	}
	return nil
}

func (s *Store) AddModAction(ctx context.Context, action ModAction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mod_actions (guild_id, moderator_id, target_id, action, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, action.GuildID, action.ModeratorID, action.TargetID, action.Action, action.Reason, action.CreatedAt.Unix())
	return err
}

// ListModActions returns a guild's most recent actions, newest first.
func (s *Store) ListModActions(ctx context.Context, guildID string, limit int) ([]ModAction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, moderator_id, target_id, action, reason, created_at
		FROM mod_actions
		WHERE guild_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []ModAction
	for rows.Next() {
		var a ModAction
		var created int64
		if err := rows.Scan(&a.ID, &a.GuildID, &a.ModeratorID, &a.TargetID, &a.Action, &a.Reason, &created); err != nil {
			return nil, err
		}
		a.CreatedAt = time.Unix(created, 0)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// ListUserModActions returns recent actions targeting one user.
func (s *Store) ListUserModActions(ctx context.Context, guildID, targetID string, limit int) ([]ModAction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, moderator_id, target_id, action, reason, created_at
		FROM mod_actions
		WHERE guild_id = ? AND target_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, guildID, targetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []ModAction
	for rows.Next() {
		var a ModAction
		var created int64
		if err := rows.Scan(&a.ID, &a.GuildID, &a.ModeratorID, &a.TargetID, &a.Action, &a.Reason, &created); err != nil {
			return nil, err
		}
		a.CreatedAt = time.Unix(created, 0)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (s *Store) CleanupModActions(ctx context.Context, retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	_, err := s.db.ExecContext(ctx, `DELETE FROM mod_actions WHERE created_at < ?`, cutoff.Unix())
	return err
}

func isIgnorableMigrationError(err error) bool {
	if err == nil {
		return false
	}
	message := err.Error()
	return strings.Contains(message, "duplicate column name") || strings.Contains(message, "already exists")
}
