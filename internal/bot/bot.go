package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"modwarden/internal/automod"
	"modwarden/internal/config"
	"modwarden/internal/dedupe"
	"modwarden/internal/filter"
	"modwarden/internal/modlog"
	"modwarden/internal/polls"
	"modwarden/internal/reminders"
	"modwarden/internal/sched"
	"modwarden/internal/spam"
	"modwarden/internal/state"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Bot struct {
	cfg       config.Config
	logger    *zap.Logger
	session   *discordgo.Session
	platform  Platform
	state     *state.Store
	automod   *automod.Engine
	guard     *dedupe.Guard
	scheduler *sched.Scheduler
	reminders *reminders.Registry
	polls     *polls.Registry
	filter    *filter.Module
	spam      *spam.Module
	actions   *modlog.Logger
}

func New(cfg config.Config, logger *zap.Logger, actions *modlog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildBans |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMessageReactions

	guard, err := dedupe.NewGuard(cfg.Moderation.DedupeCapacity)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		cfg:       cfg,
		logger:    logger,
		session:   session,
		platform:  NewDiscordPlatform(session),
		state:     state.NewStore(),
		automod:   automod.NewEngine(),
		guard:     guard,
		scheduler: sched.New(),
		reminders: reminders.NewRegistry(),
		polls:     polls.NewRegistry(),
		actions:   actions,
	}

	b.filter = filter.New(filter.Config{
		BannedWords:   cfg.Filter.BannedWords,
		AllowLinks:    cfg.Filter.AllowLinks,
		LinkAllowlist: cfg.Filter.LinkAllowlist,
	})
	b.spam = spam.New(cfg.Moderation.SpamThreshold, time.Duration(cfg.Moderation.SpamWindowSeconds)*time.Second)

	return b, nil
}

func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onGuildMemberAdd)
	b.session.AddHandler(b.onGuildMemberRemove)

	return b.session.Open()
}

func (b *Bot) Close(ctx context.Context) {
	_ = ctx
	if b.session != nil {
		_ = b.session.Close()
	}
}

func (b *Bot) onReady(session *discordgo.Session, event *discordgo.Ready) {
	b.logger.Info("discord ready", zap.String("user", session.State.User.Username))
}

func (b *Bot) onMessageCreate(session *discordgo.Session, msg *discordgo.MessageCreate) {
	_ = session
	if msg.Author == nil || msg.Author.Bot || msg.GuildID == "" {
		return
	}
	b.handleMessage(msg.GuildID, msg.ChannelID, msg.ID, msg.Author.ID, msg.Content)
}

// handleMessage runs the moderation pipeline and then command dispatch.
func (b *Bot) handleMessage(guildID, channelID, messageID, authorID, content string) {
	if b.state.Napping(guildID) {
		return
	}

	exempt := b.requireModerator(guildID, channelID, authorID) == nil

	if reason, flagged := b.filter.Check(content); flagged && !exempt {
		ctx := context.Background()
		_ = b.platform.DeleteMessage(channelID, messageID)
		b.actions.Record(ctx, guildID, "", authorID, modlog.ActionFilter, reason)
		b.reply(channelID, fmt.Sprintf("<@%s> your message was removed: %s", authorID, reason))
		return
	}

	if !exempt && b.spam.Record(guildID, authorID, b.scheduler.Now()) {
		ctx := context.Background()
		duration := time.Duration(b.cfg.Moderation.SpamMuteMinutes) * time.Minute
		if err := b.applyMute(ctx, guildID, authorID, "", duration, modlog.ActionSpamMute, "message burst"); err != nil {
			b.logger.Warn("spam mute failed", zap.String("guild", guildID), zap.String("user", authorID), zap.Error(err))
		} else {
			b.reply(channelID, fmt.Sprintf("<@%s> muted for %d minutes: slow down.", authorID, b.cfg.Moderation.SpamMuteMinutes))
		}
		return
	}

	prefix := b.state.Prefix(guildID, b.cfg.Prefix)
	if !strings.HasPrefix(content, prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return
	}

	b.dispatch(commandContext{
		guildID:   guildID,
		channelID: channelID,
		messageID: messageID,
		authorID:  authorID,
		name:      strings.ToLower(fields[0]),
		args:      fields[1:],
	})
}

func (b *Bot) onGuildMemberAdd(session *discordgo.Session, event *discordgo.GuildMemberAdd) {
	_ = session
	if event.GuildID == "" || event.User == nil {
		return
	}
	if cfg, ok := b.state.Welcome(event.GuildID); ok {
		b.reply(cfg.ChannelID, strings.ReplaceAll(cfg.Message, "{user}", "<@"+event.User.ID+">"))
	}
	if roleID, ok := b.state.Autorole(event.GuildID); ok {
		if err := b.platform.AddRole(event.GuildID, event.User.ID, roleID); err != nil {
			b.logger.Warn("autorole failed", zap.String("guild", event.GuildID), zap.String("user", event.User.ID), zap.Error(err))
		}
	}
}

func (b *Bot) onGuildMemberRemove(session *discordgo.Session, event *discordgo.GuildMemberRemove) {
	_ = session
	if event.GuildID == "" || event.User == nil {
		return
	}
	if cfg, ok := b.state.Goodbye(event.GuildID); ok {
		name := event.User.Username
		b.reply(cfg.ChannelID, strings.ReplaceAll(cfg.Message, "{user}", name))
	}
}

func (b *Bot) reply(channelID, content string) {
	if channelID == "" || content == "" {
		return
	}
	if _, err := b.platform.SendMessage(channelID, content); err != nil {
		b.logger.Warn("send failed", zap.String("channel", channelID), zap.Error(err))
	}
}

// ensureMuteRole resolves or lazily creates the guild's mute role. The
// per-guild lock keeps concurrent mutes from creating duplicate roles.
func (b *Bot) ensureMuteRole(guildID string) (string, error) {
	mu := b.state.MuteRoleLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	if roleID := b.state.MuteRoleID(guildID); roleID != "" {
		return roleID, nil
	}
	roles, err := b.platform.Roles(guildID)
	if err != nil {
		return "", err
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, b.cfg.Moderation.MuteRoleName) {
			b.state.SetMuteRoleID(guildID, role.ID)
			return role.ID, nil
		}
	}
	roleID, err := b.platform.CreateRole(guildID, b.cfg.Moderation.MuteRoleName)
	if err != nil {
		return "", err
	}
	b.denyMuteRoleEverywhere(guildID, roleID)
	b.state.SetMuteRoleID(guildID, roleID)
	return roleID, nil
}

// denyMuteRoleEverywhere blocks sending and speaking for the mute role
// in every channel of the guild. Per-channel failures are logged and
// skipped; the role is still usable in the channels that succeeded.
func (b *Bot) denyMuteRoleEverywhere(guildID, roleID string) {
	channels, err := b.platform.GuildChannelIDs(guildID)
	if err != nil {
		b.logger.Warn("mute role channel listing failed", zap.String("guild", guildID), zap.Error(err))
		return
	}
	deny := int64(discordgo.PermissionSendMessages | discordgo.PermissionVoiceSpeak)
	for _, channelID := range channels {
		if err := b.platform.SetRolePermission(channelID, roleID, 0, deny); err != nil {
			b.logger.Warn("mute role override failed",
				zap.String("guild", guildID),
				zap.String("channel", channelID),
				zap.Error(err))
		}
	}
}

// applyMute assigns the mute role, upserts the ledger record, and schedules
// expiry. A newer mute replacing this one makes the expiry a no-op.
func (b *Bot) applyMute(ctx context.Context, guildID, userID, moderatorID string, duration time.Duration, action, reason string) error {
	if duration <= 0 {
		return ErrOutOfRange
	}
	roleID, err := b.ensureMuteRole(guildID)
	if err != nil {
		return err
	}
	if err := b.platform.AddRole(guildID, userID, roleID); err != nil {
		return err
	}

	until := b.scheduler.Now().Add(duration)
	b.state.SetMute(guildID, userID, roleID, until)
	b.actions.Record(ctx, guildID, moderatorID, userID, action, reason)

	b.scheduler.Schedule(duration, func() {
		rec, cleared := b.state.ClearMuteIfExpired(guildID, userID, b.scheduler.Now())
		if !cleared {
			return
		}
		if err := b.platform.RemoveRole(guildID, userID, rec.RoleID); err != nil {
			b.logger.Warn("unmute failed", zap.String("guild", guildID), zap.String("user", userID), zap.Error(err))
			return
		}
		b.actions.Record(context.Background(), guildID, "", userID, modlog.ActionUnmute, "mute expired")
	})
	return nil
}

// executeAutomod carries out an escalation decided by the rule engine.
func (b *Bot) executeAutomod(ctx context.Context, guildID, channelID, userID string, action state.Action, threshold int) {
	reason := fmt.Sprintf("warning threshold %d reached", threshold)
	switch action {
	case state.ActionKick:
		if err := b.platform.KickMember(guildID, userID, reason); err != nil {
			b.logger.Warn("automod kick failed", zap.String("guild", guildID), zap.String("user", userID), zap.Error(err))
			return
		}
		b.actions.Record(ctx, guildID, "", userID, modlog.ActionAutoKick, reason)
		b.reply(channelID, fmt.Sprintf("<@%s> was kicked: %s.", userID, reason))
	case state.ActionBan:
		if err := b.platform.BanMember(guildID, userID, reason); err != nil {
			b.logger.Warn("automod ban failed", zap.String("guild", guildID), zap.String("user", userID), zap.Error(err))
			return
		}
		b.actions.Record(ctx, guildID, "", userID, modlog.ActionAutoBan, reason)
		b.reply(channelID, fmt.Sprintf("<@%s> was banned: %s.", userID, reason))
	case state.ActionMute:
		duration := time.Duration(b.cfg.Moderation.AutomodMuteMinutes) * time.Minute
		if err := b.applyMute(ctx, guildID, userID, "", duration, modlog.ActionAutoMute, reason); err != nil {
			b.logger.Warn("automod mute failed", zap.String("guild", guildID), zap.String("user", userID), zap.Error(err))
			return
		}
		b.reply(channelID, fmt.Sprintf("<@%s> was muted for %d minutes: %s.", userID, b.cfg.Moderation.AutomodMuteMinutes, reason))
	}
}
