// Package modlog records moderation actions to the store and the
// structured log.
package modlog

import (
	"context"
	"time"

	"modwarden/internal/storage"

	"go.uber.org/zap"
)

// Action kinds recorded in the log.
const (
	ActionWarn       = "WARN"
	ActionRemoveWarn = "REMOVE_WARN"
	ActionKick       = "KICK"
	ActionBan        = "BAN"
	ActionUnban      = "UNBAN"
	ActionMute       = "MUTE"
	ActionUnmute     = "UNMUTE"
	ActionAutoKick   = "AUTO_KICK"
	ActionAutoBan    = "AUTO_BAN"
	ActionAutoMute   = "AUTO_MUTE"
	ActionSpamMute   = "SPAM_MUTE"
	ActionLockdown   = "LOCKDOWN"
	ActionUnlock     = "UNLOCK"
	ActionSlowmode   = "SLOWMODE"
	ActionNickname   = "NICKNAME"
	ActionRole       = "ROLE"
	ActionClear      = "CLEAR"
	ActionAutomodSet = "AUTOMOD_SET"
	ActionFilter     = "FILTER_DELETE"
)

type Logger struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewLogger(store *storage.Store, logger *zap.Logger) *Logger {
	return &Logger{store: store, logger: logger}
}

// Record writes one action. Storage failures are logged and dropped;
// the action itself already happened.
func (l *Logger) Record(ctx context.Context, guildID, moderatorID, targetID, action, reason string) {
	entry := storage.ModAction{
		GuildID:     guildID,
		ModeratorID: moderatorID,
		TargetID:    targetID,
		Action:      action,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
	if l.store != nil {
		if err := l.store.AddModAction(ctx, entry); err != nil {
			l.logger.Warn("mod log write failed", zap.Error(err))
		}
	}
	l.logger.Info("mod action",
		zap.String("guild_id", guildID),
		zap.String("moderator_id", moderatorID),
		zap.String("target_id", targetID),
		zap.String("action", action),
		zap.String("reason", reason),
	)
}

// Recent returns a guild's latest entries, newest first.
func (l *Logger) Recent(ctx context.Context, guildID string, limit int) ([]storage.ModAction, error) {
	if l.store == nil {
		return nil, nil
	}
	return l.store.ListModActions(ctx, guildID, limit)
}

// RecentFor returns the latest entries targeting one user, newest first.
func (l *Logger) RecentFor(ctx context.Context, guildID, targetID string, limit int) ([]storage.ModAction, error) {
	if l.store == nil {
		return nil, nil
	}
	return l.store.ListUserModActions(ctx, guildID, targetID, limit)
}
