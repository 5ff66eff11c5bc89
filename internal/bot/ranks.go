package bot

import "github.com/bwmarrin/discordgo"

const moderatorPermissions = discordgo.PermissionAdministrator |
	discordgo.PermissionKickMembers |
	discordgo.PermissionBanMembers |
	discordgo.PermissionManageMessages |
	discordgo.PermissionManageRoles

// requireModerator gates commands that have no single target member.
func (b *Bot) requireModerator(guildID, channelID, userID string) error {
	ownerID, err := b.platform.GuildOwnerID(guildID)
	if err == nil && ownerID == userID {
		return nil
	}
	perms, err := b.platform.MemberPermissions(guildID, channelID, userID)
	if err != nil {
		return err
	}
	if perms&moderatorPermissions == 0 {
		return ErrInsufficientRank
	}
	return nil
}

// requireHigherRank enforces that the actor strictly outranks the target.
// The guild owner outranks everyone; self-targeting always fails.
func (b *Bot) requireHigherRank(guildID, actorID, targetID string) error {
	if actorID == targetID {
		return ErrInsufficientRank
	}
	ownerID, err := b.platform.GuildOwnerID(guildID)
	if err != nil {
		return err
	}
	if actorID == ownerID {
		return nil
	}
	if targetID == ownerID {
		return ErrInsufficientRank
	}
	positions, err := b.rolePositions(guildID)
	if err != nil {
		return err
	}
	actorTop, err := b.topRolePosition(guildID, actorID, positions)
	if err != nil {
		return err
	}
	targetTop, err := b.topRolePosition(guildID, targetID, positions)
	if err != nil {
		return err
	}
	if actorTop <= targetTop {
		return ErrInsufficientRank
	}
	return nil
}

// requireBotAboveRole enforces that the bot's top role sits above the role
// it is about to grant, revoke, or create members under.
func (b *Bot) requireBotAboveRole(guildID, roleID string) error {
	positions, err := b.rolePositions(guildID)
	if err != nil {
		return err
	}
	botTop, err := b.topRolePosition(guildID, b.platform.BotUserID(), positions)
	if err != nil {
		return err
	}
	if botTop <= positions[roleID] {
		return ErrBotRankTooLow
	}
	return nil
}

func (b *Bot) rolePositions(guildID string) (map[string]int, error) {
	roles, err := b.platform.Roles(guildID)
	if err != nil {
		return nil, err
	}
	positions := make(map[string]int, len(roles))
	for _, role := range roles {
		positions[role.ID] = role.Position
	}
	return positions, nil
}

func (b *Bot) topRolePosition(guildID, userID string, positions map[string]int) (int, error) {
	member, err := b.platform.Member(guildID, userID)
	if err != nil {
		return 0, err
	}
	top := 0
	for _, roleID := range member.RoleIDs {
		if pos, ok := positions[roleID]; ok && pos > top {
			top = pos
		}
	}
	return top, nil
}
