package bot

import (
	"errors"
	"net/http"
	"time"

	"modwarden/internal/state"

	"github.com/bwmarrin/discordgo"
)

// Member is the slice of guild member data the command handlers need.
type Member struct {
	UserID   string
	Username string
	Nick     string
	RoleIDs  []string
	JoinedAt time.Time
}

// Role carries the position used for rank comparisons.
type Role struct {
	ID       string
	Name     string
	Position int
}

// Platform abstracts the chat backend so command handlers can be tested
// without a live gateway session.
type Platform interface {
	BotUserID() string
	GuildOwnerID(guildID string) (string, error)
	Member(guildID, userID string) (Member, error)
	Roles(guildID string) ([]Role, error)
	GuildChannelIDs(guildID string) ([]string, error)
	MemberPermissions(guildID, channelID, userID string) (int64, error)

	SendMessage(channelID, content string) (string, error)
	DeleteMessage(channelID, messageID string) error
	DeleteMessages(channelID string, messageIDs []string) error
	RecentMessageIDs(channelID string, limit int) ([]string, error)
	AddReaction(channelID, messageID, emoji string) error
	ReactionUserIDs(channelID, messageID, emoji string) ([]string, error)

	KickMember(guildID, userID, reason string) error
	BanMember(guildID, userID, reason string) error
	UnbanMember(guildID, userID string) error
	AddRole(guildID, userID, roleID string) error
	RemoveRole(guildID, userID, roleID string) error
	CreateRole(guildID, name string) (string, error)
	SetNickname(guildID, userID, nick string) error
	SetSlowmode(channelID string, seconds int) error
	SetRolePermission(channelID, roleID string, allow, deny int64) error
	DenySendMessages(guildID, channelID string) error
	RestoreSendMessages(guildID, channelID string) error
}

type discordPlatform struct {
	session *discordgo.Session
}

// NewDiscordPlatform wraps a discordgo session as a Platform.
func NewDiscordPlatform(session *discordgo.Session) Platform {
	return &discordPlatform{session: session}
}

func (p *discordPlatform) BotUserID() string {
	if p.session.State == nil || p.session.State.User == nil {
		return ""
	}
	return p.session.State.User.ID
}

func (p *discordPlatform) GuildOwnerID(guildID string) (string, error) {
	guild, err := p.session.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = p.session.Guild(guildID)
		if err != nil {
			return "", mapError(err)
		}
	}
	return guild.OwnerID, nil
}

func (p *discordPlatform) Member(guildID, userID string) (Member, error) {
	member, err := p.session.State.Member(guildID, userID)
	if err != nil || member == nil {
		member, err = p.session.GuildMember(guildID, userID)
		if err != nil {
			return Member{}, mapError(err)
		}
	}
	out := Member{UserID: userID, Nick: member.Nick, RoleIDs: member.Roles, JoinedAt: member.JoinedAt}
	if member.User != nil {
		out.Username = member.User.Username
	}
	return out, nil
}

func (p *discordPlatform) Roles(guildID string) ([]Role, error) {
	roles, err := p.session.GuildRoles(guildID)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]Role, 0, len(roles))
	for _, role := range roles {
		if role == nil {
			continue
		}
		out = append(out, Role{ID: role.ID, Name: role.Name, Position: role.Position})
	}
	return out, nil
}

func (p *discordPlatform) GuildChannelIDs(guildID string) ([]string, error) {
	channels, err := p.session.GuildChannels(guildID)
	if err != nil {
		return nil, mapError(err)
	}
	ids := make([]string, 0, len(channels))
	for _, channel := range channels {
		if channel == nil {
			continue
		}
		ids = append(ids, channel.ID)
	}
	return ids, nil
}

func (p *discordPlatform) MemberPermissions(guildID, channelID, userID string) (int64, error) {
	perms, err := p.session.UserChannelPermissions(userID, channelID)
	if err != nil {
		return 0, mapError(err)
	}
	_ = guildID
	return perms, nil
}

func (p *discordPlatform) SendMessage(channelID, content string) (string, error) {
	msg, err := p.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", mapError(err)
	}
	return msg.ID, nil
}

func (p *discordPlatform) DeleteMessage(channelID, messageID string) error {
	return mapError(p.session.ChannelMessageDelete(channelID, messageID))
}

func (p *discordPlatform) DeleteMessages(channelID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	if len(messageIDs) == 1 {
		return mapError(p.session.ChannelMessageDelete(channelID, messageIDs[0]))
	}
	return mapError(p.session.ChannelMessagesBulkDelete(channelID, messageIDs))
}

func (p *discordPlatform) RecentMessageIDs(channelID string, limit int) ([]string, error) {
	messages, err := p.session.ChannelMessages(channelID, limit, "", "", "")
	if err != nil {
		return nil, mapError(err)
	}
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		ids = append(ids, msg.ID)
	}
	return ids, nil
}

func (p *discordPlatform) AddReaction(channelID, messageID, emoji string) error {
	return mapError(p.session.MessageReactionAdd(channelID, messageID, emoji))
}

func (p *discordPlatform) ReactionUserIDs(channelID, messageID, emoji string) ([]string, error) {
	users, err := p.session.MessageReactions(channelID, messageID, emoji, 100, "", "")
	if err != nil {
		return nil, mapError(err)
	}
	ids := make([]string, 0, len(users))
	for _, user := range users {
		if user == nil {
			continue
		}
		ids = append(ids, user.ID)
	}
	return ids, nil
}

func (p *discordPlatform) KickMember(guildID, userID, reason string) error {
	return mapError(p.session.GuildMemberDeleteWithReason(guildID, userID, reason))
}

func (p *discordPlatform) BanMember(guildID, userID, reason string) error {
	return mapError(p.session.GuildBanCreateWithReason(guildID, userID, reason, 0))
}

func (p *discordPlatform) UnbanMember(guildID, userID string) error {
	return mapError(p.session.GuildBanDelete(guildID, userID))
}

func (p *discordPlatform) AddRole(guildID, userID, roleID string) error {
	return mapError(p.session.GuildMemberRoleAdd(guildID, userID, roleID))
}

func (p *discordPlatform) RemoveRole(guildID, userID, roleID string) error {
	return mapError(p.session.GuildMemberRoleRemove(guildID, userID, roleID))
}

func (p *discordPlatform) CreateRole(guildID, name string) (string, error) {
	perms := int64(0)
	role, err := p.session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: name, Permissions: &perms})
	if err != nil {
		return "", mapError(err)
	}
	return role.ID, nil
}

func (p *discordPlatform) SetNickname(guildID, userID, nick string) error {
	return mapError(p.session.GuildMemberNickname(guildID, userID, nick))
}

func (p *discordPlatform) SetSlowmode(channelID string, seconds int) error {
	_, err := p.session.ChannelEditComplex(channelID, &discordgo.ChannelEdit{RateLimitPerUser: &seconds})
	return mapError(err)
}

func (p *discordPlatform) SetRolePermission(channelID, roleID string, allow, deny int64) error {
	return mapError(p.session.ChannelPermissionSet(channelID, roleID, discordgo.PermissionOverwriteTypeRole, allow, deny))
}

func (p *discordPlatform) DenySendMessages(guildID, channelID string) error {
	allow, deny := p.everyoneOverwrite(guildID, channelID)
	deny |= discordgo.PermissionSendMessages
	allow &^= discordgo.PermissionSendMessages
	return mapError(p.session.ChannelPermissionSet(channelID, guildID, discordgo.PermissionOverwriteTypeRole, allow, deny))
}

func (p *discordPlatform) RestoreSendMessages(guildID, channelID string) error {
	allow, deny := p.everyoneOverwrite(guildID, channelID)
	deny &^= discordgo.PermissionSendMessages
	return mapError(p.session.ChannelPermissionSet(channelID, guildID, discordgo.PermissionOverwriteTypeRole, allow, deny))
}

func (p *discordPlatform) everyoneOverwrite(guildID, channelID string) (int64, int64) {
	channel, err := p.session.Channel(channelID)
	if err != nil || channel == nil {
		return 0, 0
	}
	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeRole && overwrite.ID == guildID {
			return overwrite.Allow, overwrite.Deny
		}
	}
	return 0, 0
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		switch rest.Response.StatusCode {
		case http.StatusForbidden:
			return ErrPermissionDenied
		case http.StatusNotFound:
			return state.ErrNotFound
		}
	}
	return err
}
