package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"modwarden/internal/automod"
	"modwarden/internal/modlog"
	"modwarden/internal/polls"
	"modwarden/internal/reminders"
	"modwarden/internal/state"
	"modwarden/internal/storage"
	"modwarden/internal/utils"

	"go.uber.org/zap"
)

const (
	slowmodeMaxSeconds = 21600
	clearMaxMessages   = 100
	warningsShown      = 5
	modlogsShown       = 10

	thumbsUp   = "\U0001F44D"
	thumbsDown = "\U0001F44E"
)

var (
	userMentionPattern    = regexp.MustCompile(`^<@!?(\d+)>$`)
	channelMentionPattern = regexp.MustCompile(`^<#(\d+)>$`)
	roleMentionPattern    = regexp.MustCompile(`^<@&(\d+)>$`)
	snowflakePattern      = regexp.MustCompile(`^\d+$`)
)

type commandContext struct {
	guildID   string
	channelID string
	messageID string
	authorID  string
	name      string
	args      []string
}

func (b *Bot) dispatch(cmd commandContext) {
	var reply string
	var err error
	if b.guard.Admit(cmd.messageID, cmd.name, cmd.authorID) {
		reply, err = b.runCommand(context.Background(), cmd)
	} else {
		b.logger.Debug("duplicate command suppressed",
			zap.String("guild", cmd.guildID),
			zap.String("command", cmd.name),
			zap.String("message", cmd.messageID))
		err = ErrDuplicateSuppressed
	}
	if err != nil {
		reply = b.errorReply(cmd, err)
	}
	if reply != "" {
		b.reply(cmd.channelID, reply)
	}
}

func (b *Bot) runCommand(ctx context.Context, cmd commandContext) (string, error) {
	switch cmd.name {
	case "warn":
		return b.cmdWarn(ctx, cmd)
	case "removewarn":
		return b.cmdRemoveWarn(ctx, cmd)
	case "warnings":
		return b.cmdWarnings(ctx, cmd)
	case "automod":
		return b.cmdAutomod(ctx, cmd)
	case "kick":
		return b.cmdKick(ctx, cmd)
	case "ban":
		return b.cmdBan(ctx, cmd)
	case "unban":
		return b.cmdUnban(ctx, cmd)
	case "mute":
		return b.cmdMute(ctx, cmd)
	case "unmute":
		return b.cmdUnmute(ctx, cmd)
	case "slowmode":
		return b.cmdSlowmode(ctx, cmd)
	case "lockdown":
		return b.cmdLockdown(ctx, cmd)
	case "unlock":
		return b.cmdUnlock(ctx, cmd)
	case "nickname":
		return b.cmdNickname(ctx, cmd)
	case "role":
		return b.cmdRole(ctx, cmd)
	case "clear":
		return b.cmdClear(ctx, cmd)
	case "userinfo":
		return b.cmdUserinfo(ctx, cmd)
	case "remind":
		return b.cmdRemind(ctx, cmd)
	case "poll":
		return b.cmdPoll(ctx, cmd)
	case "nap":
		return b.cmdNap(ctx, cmd)
	case "prefix":
		return b.cmdPrefix(ctx, cmd)
	case "modlogs":
		return b.cmdModlogs(ctx, cmd)
	case "welcome":
		return b.cmdWelcome(ctx, cmd)
	case "goodbye":
		return b.cmdGoodbye(ctx, cmd)
	case "autorole":
		return b.cmdAutorole(ctx, cmd)
	case "help":
		return b.cmdHelp(ctx, cmd)
	default:
		return "", nil
	}
}

func (b *Bot) errorReply(cmd commandContext, err error) string {
	switch {
	case errors.Is(err, ErrDuplicateSuppressed):
		return ""
	case errors.Is(err, utils.ErrInvalidFormat):
		return "I could not parse that. Check the command arguments."
	case errors.Is(err, ErrOutOfRange):
		return "That value is out of range."
	case errors.Is(err, ErrInsufficientRank):
		return "You do not have the rank to do that."
	case errors.Is(err, ErrBotRankTooLow):
		return "My role is not high enough to do that."
	case errors.Is(err, ErrPermissionDenied):
		return "I am missing the permission to do that."
	case errors.Is(err, state.ErrNotFound):
		return "I could not find that."
	default:
		b.logger.Error("command failed",
			zap.String("guild", cmd.guildID),
			zap.String("command", cmd.name),
			zap.Error(err))
		return "Something went wrong."
	}
}

func (b *Bot) cmdWarn(ctx context.Context, cmd commandContext) (string, error) {
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireHigherRank(cmd.guildID, cmd.authorID, targetID); err != nil {
		return "", err
	}
	reason := strings.Join(cmd.args[1:], " ")
	if reason == "" {
		reason = "no reason given"
	}

	warning, count := b.state.AddWarning(cmd.guildID, targetID, reason, cmd.authorID, b.scheduler.Now())
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionWarn, reason)

	if action, threshold, fired := b.automod.Evaluate(cmd.guildID, targetID, b.state.Rules(cmd.guildID), count); fired {
		b.executeAutomod(ctx, cmd.guildID, cmd.channelID, targetID, action, threshold)
	}
	return fmt.Sprintf("<@%s> warned (#%d, %d total): %s", targetID, warning.ID, count, reason), nil
}

func (b *Bot) cmdRemoveWarn(ctx context.Context, cmd commandContext) (string, error) {
	if len(cmd.args) < 2 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	id, err := strconv.Atoi(cmd.args[1])
	if err != nil {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireHigherRank(cmd.guildID, cmd.authorID, targetID); err != nil {
		return "", err
	}

	warning, err := b.state.RemoveWarning(cmd.guildID, targetID, id)
	if err != nil {
		return "", err
	}
	if b.state.WarningCount(cmd.guildID, targetID) == 0 {
		b.automod.Forget(cmd.guildID, targetID)
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionRemoveWarn, warning.Reason)
	return fmt.Sprintf("Removed warning #%d from <@%s>.", id, targetID), nil
}

func (b *Bot) cmdWarnings(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}

	warns := b.state.Warnings(cmd.guildID, targetID)
	if len(warns) == 0 {
		return fmt.Sprintf("<@%s> has no warnings.", targetID), nil
	}
	shown := warns
	if len(shown) > warningsShown {
		shown = shown[len(shown)-warningsShown:]
	}
	lines := make([]string, 0, len(shown)+1)
	lines = append(lines, fmt.Sprintf("<@%s> has %d warning(s):", targetID, len(warns)))
	for _, w := range shown {
		lines = append(lines, fmt.Sprintf("#%d - %s (by <@%s>)", w.ID, w.Reason, w.ModeratorID))
	}
	return strings.Join(lines, "\n"), nil
}

func (b *Bot) cmdAutomod(ctx context.Context, cmd commandContext) (string, error) {
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}

	switch strings.ToLower(cmd.args[0]) {
	case "set":
		if len(cmd.args) < 3 {
			return "", utils.ErrInvalidFormat
		}
		threshold, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return "", utils.ErrInvalidFormat
		}
		if threshold < automod.MinThreshold || threshold > automod.MaxThreshold {
			return "", ErrOutOfRange
		}
		action, ok := state.ParseAction(strings.ToLower(cmd.args[2]))
		if !ok {
			return "", utils.ErrInvalidFormat
		}
		b.state.SetRule(cmd.guildID, threshold, action)
		b.actions.Record(ctx, cmd.guildID, cmd.authorID, "", modlog.ActionAutomodSet,
			fmt.Sprintf("threshold=%d action=%s", threshold, action))
		return fmt.Sprintf("Automod: %s at %d warnings.", action, threshold), nil
	case "remove":
		if len(cmd.args) < 2 {
			return "", utils.ErrInvalidFormat
		}
		threshold, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return "", utils.ErrInvalidFormat
		}
		if !b.state.RemoveRule(cmd.guildID, threshold) {
			return "", state.ErrNotFound
		}
		return fmt.Sprintf("Automod rule at %d warnings removed.", threshold), nil
	case "list":
		rules := b.state.Rules(cmd.guildID)
		if len(rules) == 0 {
			return "No automod rules configured.", nil
		}
		lines := make([]string, 0, len(rules)+1)
		lines = append(lines, "Automod rules:")
		for threshold := automod.MinThreshold; threshold <= automod.MaxThreshold; threshold++ {
			if action, ok := rules[threshold]; ok {
				lines = append(lines, fmt.Sprintf("%d warnings: %s", threshold, action))
			}
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "", utils.ErrInvalidFormat
	}
}

func (b *Bot) cmdKick(ctx context.Context, cmd commandContext) (string, error) {
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireHigherRank(cmd.guildID, cmd.authorID, targetID); err != nil {
		return "", err
	}
	reason := strings.Join(cmd.args[1:], " ")
	if err := b.platform.KickMember(cmd.guildID, targetID, reason); err != nil {
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionKick, reason)
	return fmt.Sprintf("<@%s> was kicked.", targetID), nil
}

func (b *Bot) cmdBan(ctx context.Context, cmd commandContext) (string, error) {
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireHigherRank(cmd.guildID, cmd.authorID, targetID); err != nil {
		return "", err
	}
	reason := strings.Join(cmd.args[1:], " ")
	if err := b.platform.BanMember(cmd.guildID, targetID, reason); err != nil {
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionBan, reason)
	return fmt.Sprintf("<@%s> was banned.", targetID), nil
}

func (b *Bot) cmdUnban(ctx context.Context, cmd commandContext) (string, error) {
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.platform.UnbanMember(cmd.guildID, targetID); err != nil {
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionUnban, "")
	return fmt.Sprintf("<@%s> was unbanned.", targetID), nil
}

func (b *Bot) cmdMute(ctx context.Context, cmd commandContext) (string, error) {
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireHigherRank(cmd.guildID, cmd.authorID, targetID); err != nil {
		return "", err
	}

	duration := time.Duration(b.cfg.Moderation.DefaultMuteMinutes) * time.Minute
	reasonArgs := cmd.args[1:]
	if len(cmd.args) > 1 {
		if parsed, err := utils.ParseDuration(cmd.args[1]); err == nil {
			duration = parsed
			reasonArgs = cmd.args[2:]
		}
	}
	reason := strings.Join(reasonArgs, " ")

	if err := b.applyMute(ctx, cmd.guildID, targetID, cmd.authorID, duration, modlog.ActionMute, reason); err != nil {
		return "", err
	}
	return fmt.Sprintf("<@%s> muted for %s.", targetID, duration), nil
}

func (b *Bot) cmdUnmute(ctx context.Context, cmd commandContext) (string, error) {
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireHigherRank(cmd.guildID, cmd.authorID, targetID); err != nil {
		return "", err
	}

	rec, found := b.state.Mute(cmd.guildID, targetID)
	if !found {
		return "", state.ErrNotFound
	}
	if err := b.platform.RemoveRole(cmd.guildID, targetID, rec.RoleID); err != nil {
		return "", err
	}
	b.state.ClearMute(cmd.guildID, targetID)
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionUnmute, "")
	return fmt.Sprintf("<@%s> unmuted.", targetID), nil
}

func (b *Bot) cmdSlowmode(ctx context.Context, cmd commandContext) (string, error) {
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	seconds, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return "", utils.ErrInvalidFormat
	}
	if seconds < 0 || seconds > slowmodeMaxSeconds {
		return "", ErrOutOfRange
	}
	if err := b.platform.SetSlowmode(cmd.channelID, seconds); err != nil {
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, "", modlog.ActionSlowmode, fmt.Sprintf("seconds=%d", seconds))
	if seconds == 0 {
		return "Slowmode disabled.", nil
	}
	return fmt.Sprintf("Slowmode set to %d seconds.", seconds), nil
}

func (b *Bot) cmdLockdown(ctx context.Context, cmd commandContext) (string, error) {
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	var duration time.Duration
	if len(cmd.args) > 0 {
		parsed, err := utils.ParseDuration(cmd.args[0])
		if err != nil {
			return "", err
		}
		duration = parsed
	}

	if !b.state.LockChannel(cmd.guildID, cmd.channelID) {
		return "This channel is already locked.", nil
	}
	if err := b.platform.DenySendMessages(cmd.guildID, cmd.channelID); err != nil {
		b.state.UnlockChannel(cmd.guildID, cmd.channelID)
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, "", modlog.ActionLockdown, fmt.Sprintf("duration=%s", duration))

	if duration > 0 {
		guildID, channelID := cmd.guildID, cmd.channelID
		b.scheduler.Schedule(duration, func() {
			if !b.state.UnlockChannel(guildID, channelID) {
				return
			}
			if err := b.platform.RestoreSendMessages(guildID, channelID); err != nil {
				b.logger.Warn("lockdown expiry failed", zap.String("channel", channelID), zap.Error(err))
				return
			}
			b.actions.Record(context.Background(), guildID, "", "", modlog.ActionUnlock, "lockdown expired")
			b.reply(channelID, "Channel unlocked.")
		})
		return fmt.Sprintf("Channel locked for %s.", duration), nil
	}
	return "Channel locked.", nil
}

func (b *Bot) cmdUnlock(ctx context.Context, cmd commandContext) (string, error) {
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if !b.state.UnlockChannel(cmd.guildID, cmd.channelID) {
		return "This channel is not locked.", nil
	}
	if err := b.platform.RestoreSendMessages(cmd.guildID, cmd.channelID); err != nil {
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, "", modlog.ActionUnlock, "")
	return "Channel unlocked.", nil
}

func (b *Bot) cmdNickname(ctx context.Context, cmd commandContext) (string, error) {
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireHigherRank(cmd.guildID, cmd.authorID, targetID); err != nil {
		return "", err
	}
	nick := strings.Join(cmd.args[1:], " ")
	if err := b.platform.SetNickname(cmd.guildID, targetID, nick); err != nil {
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionNickname, nick)
	if nick == "" {
		return fmt.Sprintf("Nickname cleared for <@%s>.", targetID), nil
	}
	return fmt.Sprintf("Nickname for <@%s> set to %q.", targetID, nick), nil
}

// cmdRole toggles a role on a member.
func (b *Bot) cmdRole(ctx context.Context, cmd commandContext) (string, error) {
	if len(cmd.args) < 2 {
		return "", utils.ErrInvalidFormat
	}
	targetID, ok := parseUser(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	roleID, ok := parseRole(cmd.args[1])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireHigherRank(cmd.guildID, cmd.authorID, targetID); err != nil {
		return "", err
	}
	if err := b.requireBotAboveRole(cmd.guildID, roleID); err != nil {
		return "", err
	}

	member, err := b.platform.Member(cmd.guildID, targetID)
	if err != nil {
		return "", err
	}
	has := false
	for _, id := range member.RoleIDs {
		if id == roleID {
			has = true
			break
		}
	}
	if has {
		if err := b.platform.RemoveRole(cmd.guildID, targetID, roleID); err != nil {
			return "", err
		}
		b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionRole, "removed "+roleID)
		return fmt.Sprintf("Role removed from <@%s>.", targetID), nil
	}
	if err := b.platform.AddRole(cmd.guildID, targetID, roleID); err != nil {
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, targetID, modlog.ActionRole, "added "+roleID)
	return fmt.Sprintf("Role added to <@%s>.", targetID), nil
}

func (b *Bot) cmdClear(ctx context.Context, cmd commandContext) (string, error) {
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	count, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return "", utils.ErrInvalidFormat
	}
	if count < 1 || count > clearMaxMessages {
		return "", ErrOutOfRange
	}

	ids, err := b.platform.RecentMessageIDs(cmd.channelID, count)
	if err != nil {
		return "", err
	}
	if err := b.platform.DeleteMessages(cmd.channelID, ids); err != nil {
		return "", err
	}
	b.actions.Record(ctx, cmd.guildID, cmd.authorID, "", modlog.ActionClear, fmt.Sprintf("count=%d", len(ids)))
	return fmt.Sprintf("Deleted %d message(s).", len(ids)), nil
}

func (b *Bot) cmdUserinfo(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	targetID := cmd.authorID
	if len(cmd.args) > 0 {
		parsed, ok := parseUser(cmd.args[0])
		if !ok {
			return "", utils.ErrInvalidFormat
		}
		targetID = parsed
	}
	member, err := b.platform.Member(cmd.guildID, targetID)
	if err != nil {
		return "", err
	}

	lines := []string{
		fmt.Sprintf("User: %s (<@%s>)", member.Username, targetID),
		fmt.Sprintf("ID: %s", targetID),
	}
	if member.Nick != "" {
		lines = append(lines, fmt.Sprintf("Nickname: %s", member.Nick))
	}
	if !member.JoinedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("Joined: %s", member.JoinedAt.Format("2006-01-02 15:04 UTC")))
	}
	lines = append(lines, fmt.Sprintf("Roles: %d", len(member.RoleIDs)))
	if count := b.state.WarningCount(cmd.guildID, targetID); count > 0 {
		lines = append(lines, fmt.Sprintf("Warnings: %d", count))
	}
	return strings.Join(lines, "\n"), nil
}

func (b *Bot) cmdRemind(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	if len(cmd.args) < 2 {
		return "", utils.ErrInvalidFormat
	}
	delay, err := utils.ParseDuration(cmd.args[0])
	if err != nil {
		return "", err
	}
	minDelay := time.Duration(b.cfg.Moderation.ReminderMinSeconds) * time.Second
	maxDelay := time.Duration(b.cfg.Moderation.ReminderMaxDays) * 24 * time.Hour
	if delay < minDelay || delay > maxDelay {
		return "", ErrOutOfRange
	}
	message := strings.Join(cmd.args[1:], " ")

	id := b.reminders.Add(reminders.Reminder{
		UserID:    cmd.authorID,
		ChannelID: cmd.channelID,
		Message:   message,
		DueAt:     b.scheduler.Now().Add(delay),
	})
	b.scheduler.Schedule(delay, func() {
		rem, ok := b.reminders.Take(id)
		if !ok {
			return
		}
		b.reply(rem.ChannelID, fmt.Sprintf("⏰ <@%s> %s", rem.UserID, rem.Message))
	})
	return fmt.Sprintf("I will remind you in %s.", delay), nil
}

func (b *Bot) cmdPoll(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	question := strings.Join(cmd.args, " ")
	if question == "" {
		return "", utils.ErrInvalidFormat
	}
	if utf8.RuneCountInString(question) > polls.MaxQuestionLen {
		return "", ErrOutOfRange
	}

	messageID, err := b.platform.SendMessage(cmd.channelID, fmt.Sprintf("\U0001F4CA **Poll:** %s", question))
	if err != nil {
		return "", err
	}
	_ = b.platform.AddReaction(cmd.channelID, messageID, thumbsUp)
	_ = b.platform.AddReaction(cmd.channelID, messageID, thumbsDown)

	b.polls.Open(messageID, polls.Poll{
		Question:  question,
		AuthorID:  cmd.authorID,
		ChannelID: cmd.channelID,
		OpenedAt:  b.scheduler.Now(),
	})
	b.scheduler.Schedule(time.Duration(b.cfg.Moderation.PollWindowSeconds)*time.Second, func() {
		b.closePoll(messageID)
	})
	return "", nil
}

func (b *Bot) closePoll(messageID string) {
	poll, ok := b.polls.Take(messageID)
	if !ok {
		return
	}
	yes := b.countVotes(poll.ChannelID, messageID, thumbsUp)
	no := b.countVotes(poll.ChannelID, messageID, thumbsDown)

	verdict := "It's a tie"
	switch {
	case yes > no:
		verdict = "Yes wins"
	case no > yes:
		verdict = "No wins"
	}
	b.reply(poll.ChannelID, fmt.Sprintf("\U0001F4CA **Poll closed:** %s\n%s %d / %s %d. %s.",
		poll.Question, thumbsUp, yes, thumbsDown, no, verdict))
}

// countVotes tallies a reaction, excluding the bot's own seed reaction.
func (b *Bot) countVotes(channelID, messageID, emoji string) int {
	users, err := b.platform.ReactionUserIDs(channelID, messageID, emoji)
	if err != nil {
		return 0
	}
	botID := b.platform.BotUserID()
	count := 0
	for _, id := range users {
		if id != botID {
			count++
		}
	}
	return count
}

func (b *Bot) cmdNap(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if !b.state.StartNap(cmd.guildID) {
		return "Already napping.", nil
	}
	guildID, channelID := cmd.guildID, cmd.channelID
	b.scheduler.Schedule(time.Duration(b.cfg.Moderation.NapMinutes)*time.Minute, func() {
		if b.state.EndNap(guildID) {
			b.reply(channelID, "\U0001F63A I'm awake again.")
		}
	})
	return fmt.Sprintf("\U0001F4A4 Taking a nap for %d minutes.", b.cfg.Moderation.NapMinutes), nil
}

func (b *Bot) cmdPrefix(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if len(cmd.args) < 1 || cmd.args[0] == "" {
		return "", utils.ErrInvalidFormat
	}
	prefix := cmd.args[0]
	if len(prefix) > 3 {
		return "", ErrOutOfRange
	}
	b.state.SetPrefix(cmd.guildID, prefix)
	return fmt.Sprintf("Prefix set to %q.", prefix), nil
}

func (b *Bot) cmdModlogs(ctx context.Context, cmd commandContext) (string, error) {
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	var entries []storage.ModAction
	var err error
	if len(cmd.args) > 0 {
		targetID, ok := parseUser(cmd.args[0])
		if !ok {
			return "", utils.ErrInvalidFormat
		}
		entries, err = b.actions.RecentFor(ctx, cmd.guildID, targetID, modlogsShown)
	} else {
		entries, err = b.actions.Recent(ctx, cmd.guildID, modlogsShown)
	}
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "No moderation actions recorded.", nil
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Recent moderation actions:")
	for _, entry := range entries {
		by := "automod"
		if entry.ModeratorID != "" {
			by = "<@" + entry.ModeratorID + ">"
		}
		line := fmt.Sprintf("%s %s by %s", entry.CreatedAt.Format("01-02 15:04"), entry.Action, by)
		if entry.TargetID != "" {
			line += " on <@" + entry.TargetID + ">"
		}
		if entry.Reason != "" {
			line += ": " + entry.Reason
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (b *Bot) cmdWelcome(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	if strings.EqualFold(cmd.args[0], "off") {
		if !b.state.DisableWelcome(cmd.guildID) {
			return "Welcome messages were not enabled.", nil
		}
		return "Welcome messages disabled.", nil
	}
	if strings.EqualFold(cmd.args[0], "test") {
		cfg, ok := b.state.Welcome(cmd.guildID)
		if !ok {
			return "Welcome messages are not enabled.", nil
		}
		b.reply(cfg.ChannelID, strings.ReplaceAll(cfg.Message, "{user}", "<@"+cmd.authorID+">"))
		return "", nil
	}

	channelID, message, err := parseChannelMessage(cmd.channelID, cmd.args)
	if err != nil {
		return "", err
	}
	b.state.SetWelcome(cmd.guildID, state.ChannelMessage{ChannelID: channelID, Message: message})
	return fmt.Sprintf("Welcome message set for <#%s>.", channelID), nil
}

func (b *Bot) cmdGoodbye(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	if strings.EqualFold(cmd.args[0], "off") {
		if !b.state.DisableGoodbye(cmd.guildID) {
			return "Goodbye messages were not enabled.", nil
		}
		return "Goodbye messages disabled.", nil
	}
	if strings.EqualFold(cmd.args[0], "test") {
		cfg, ok := b.state.Goodbye(cmd.guildID)
		if !ok {
			return "Goodbye messages are not enabled.", nil
		}
		b.reply(cfg.ChannelID, strings.ReplaceAll(cfg.Message, "{user}", cmd.authorID))
		return "", nil
	}

	channelID, message, err := parseChannelMessage(cmd.channelID, cmd.args)
	if err != nil {
		return "", err
	}
	b.state.SetGoodbye(cmd.guildID, state.ChannelMessage{ChannelID: channelID, Message: message})
	return fmt.Sprintf("Goodbye message set for <#%s>.", channelID), nil
}

func (b *Bot) cmdAutorole(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	if err := b.requireModerator(cmd.guildID, cmd.channelID, cmd.authorID); err != nil {
		return "", err
	}
	if len(cmd.args) < 1 {
		return "", utils.ErrInvalidFormat
	}
	if strings.EqualFold(cmd.args[0], "off") {
		if !b.state.DisableAutorole(cmd.guildID) {
			return "Autorole was not enabled.", nil
		}
		return "Autorole disabled.", nil
	}
	roleID, ok := parseRole(cmd.args[0])
	if !ok {
		return "", utils.ErrInvalidFormat
	}
	if err := b.requireBotAboveRole(cmd.guildID, roleID); err != nil {
		return "", err
	}
	b.state.SetAutorole(cmd.guildID, roleID)
	return "Autorole enabled for new members.", nil
}

func (b *Bot) cmdHelp(ctx context.Context, cmd commandContext) (string, error) {
	_ = ctx
	prefix := b.state.Prefix(cmd.guildID, b.cfg.Prefix)
	lines := []string{
		"**Moderation**",
		prefix + "warn @user [reason] / " + prefix + "removewarn @user <id> / " + prefix + "warnings @user",
		prefix + "automod set <warnings> <kick|ban|mute> / remove <warnings> / list",
		prefix + "kick @user [reason] / " + prefix + "ban @user [reason] / " + prefix + "unban <id>",
		prefix + "mute @user [duration] [reason] / " + prefix + "unmute @user",
		prefix + "slowmode <seconds> / " + prefix + "lockdown [duration] / " + prefix + "unlock",
		prefix + "nickname @user [name] / " + prefix + "role @user @role / " + prefix + "clear <count>",
		prefix + "modlogs / " + prefix + "userinfo [@user]",
		"**Utility**",
		prefix + "remind <duration> <message> / " + prefix + "poll <question> / " + prefix + "nap",
		prefix + "prefix <new> / " + prefix + "welcome #channel <message> / " + prefix + "goodbye #channel <message> / " + prefix + "autorole @role",
	}
	return strings.Join(lines, "\n"), nil
}

func parseUser(arg string) (string, bool) {
	if match := userMentionPattern.FindStringSubmatch(arg); match != nil {
		return match[1], true
	}
	if snowflakePattern.MatchString(arg) {
		return arg, true
	}
	return "", false
}

func parseRole(arg string) (string, bool) {
	if match := roleMentionPattern.FindStringSubmatch(arg); match != nil {
		return match[1], true
	}
	if snowflakePattern.MatchString(arg) {
		return arg, true
	}
	return "", false
}

// parseChannelMessage reads an optional leading channel mention and the
// message body, defaulting to the invoking channel.
func parseChannelMessage(currentChannelID string, args []string) (string, string, error) {
	channelID := currentChannelID
	rest := args
	if match := channelMentionPattern.FindStringSubmatch(args[0]); match != nil {
		channelID = match[1]
		rest = args[1:]
	}
	message := strings.Join(rest, " ")
	if message == "" {
		return "", "", utils.ErrInvalidFormat
	}
	return channelID, message, nil
}
