package bot

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
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

const (
	ownerID = "100"
	modID   = "101"
	mod2ID  = "102"
	botID   = "103"
	user1ID = "110"
	user2ID = "111"

	modRole    = "900"
	botRole    = "800"
	memberRole = "700"
)

type fakeTimer struct {
	due     time.Time
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) sched.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{due: c.now.Add(d), fn: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()
	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, timer := range c.timers {
			if timer.stopped || timer.fn == nil {
				continue
			}
			if !timer.due.After(target) && (next == nil || timer.due.Before(next.due)) {
				next = timer
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.due.After(c.now) {
			c.now = next.due
		}
		fn := next.fn
		next.fn = nil
		c.mu.Unlock()
		fn()
	}
}

type sentMessage struct {
	channelID string
	content   string
}

type fakePlatform struct {
	mu         sync.Mutex
	botID      string
	ownerID    string
	members    map[string]*Member
	roles      []Role
	channels   []string
	perms      map[string]int64
	sent       []sentMessage
	deleted    []string
	reactions  map[string][]string
	kicked     []string
	banned     []string
	unbanned   []string
	nicknames  map[string]string
	slowmode   map[string]int
	denied     map[string]bool
	overwrites map[string]int64
	failUnban  error
	nextMsg    int
	nextRole   int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		botID:      botID,
		ownerID:    ownerID,
		members:    make(map[string]*Member),
		channels:   []string{"c1", "c2"},
		perms:      make(map[string]int64),
		reactions:  make(map[string][]string),
		nicknames:  make(map[string]string),
		slowmode:   make(map[string]int),
		denied:     make(map[string]bool),
		overwrites: make(map[string]int64),
	}
}

func (p *fakePlatform) addMember(userID string, roleIDs ...string) {
	p.members[userID] = &Member{UserID: userID, Username: "user" + userID, RoleIDs: roleIDs}
}

func (p *fakePlatform) hasRole(userID, roleID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	member, ok := p.members[userID]
	if !ok {
		return false
	}
	for _, id := range member.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

func (p *fakePlatform) lastSent() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sent) == 0 {
		return ""
	}
	return p.sent[len(p.sent)-1].content
}

func (p *fakePlatform) sentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

func (p *fakePlatform) react(messageID, emoji string, userIDs ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := messageID + "|" + emoji
	p.reactions[key] = append(p.reactions[key], userIDs...)
}

func (p *fakePlatform) BotUserID() string { return p.botID }

func (p *fakePlatform) GuildOwnerID(guildID string) (string, error) {
	_ = guildID
	return p.ownerID, nil
}

func (p *fakePlatform) Member(guildID, userID string) (Member, error) {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	member, ok := p.members[userID]
	if !ok {
		return Member{}, fmt.Errorf("no such member %s", userID)
	}
	out := *member
	out.RoleIDs = append([]string(nil), member.RoleIDs...)
	return out, nil
}

func (p *fakePlatform) Roles(guildID string) ([]Role, error) {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Role(nil), p.roles...), nil
}

func (p *fakePlatform) GuildChannelIDs(guildID string) ([]string, error) {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.channels...), nil
}

func (p *fakePlatform) MemberPermissions(guildID, channelID, userID string) (int64, error) {
	_, _ = guildID, channelID
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.perms[userID], nil
}

func (p *fakePlatform) SendMessage(channelID, content string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextMsg++
	p.sent = append(p.sent, sentMessage{channelID: channelID, content: content})
	return fmt.Sprintf("m%d", p.nextMsg), nil
}

func (p *fakePlatform) DeleteMessage(channelID, messageID string) error {
	_ = channelID
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, messageID)
	return nil
}

func (p *fakePlatform) DeleteMessages(channelID string, messageIDs []string) error {
	_ = channelID
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, messageIDs...)
	return nil
}

func (p *fakePlatform) RecentMessageIDs(channelID string, limit int) ([]string, error) {
	_ = channelID
	ids := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		ids = append(ids, fmt.Sprintf("h%d", i))
	}
	return ids, nil
}

func (p *fakePlatform) AddReaction(channelID, messageID, emoji string) error {
	_ = channelID
	p.react(messageID, emoji, p.botID)
	return nil
}

func (p *fakePlatform) ReactionUserIDs(channelID, messageID, emoji string) ([]string, error) {
	_ = channelID
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.reactions[messageID+"|"+emoji]...), nil
}

func (p *fakePlatform) KickMember(guildID, userID, reason string) error {
	_, _ = guildID, reason
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kicked = append(p.kicked, userID)
	return nil
}

func (p *fakePlatform) BanMember(guildID, userID, reason string) error {
	_, _ = guildID, reason
	p.mu.Lock()
	defer p.mu.Unlock()
	p.banned = append(p.banned, userID)
	return nil
}

func (p *fakePlatform) UnbanMember(guildID, userID string) error {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failUnban != nil {
		return p.failUnban
	}
	p.unbanned = append(p.unbanned, userID)
	return nil
}

func (p *fakePlatform) AddRole(guildID, userID, roleID string) error {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	member, ok := p.members[userID]
	if !ok {
		return fmt.Errorf("no such member %s", userID)
	}
	for _, id := range member.RoleIDs {
		if id == roleID {
			return nil
		}
	}
	member.RoleIDs = append(member.RoleIDs, roleID)
	return nil
}

func (p *fakePlatform) RemoveRole(guildID, userID, roleID string) error {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	member, ok := p.members[userID]
	if !ok {
		return fmt.Errorf("no such member %s", userID)
	}
	kept := member.RoleIDs[:0]
	for _, id := range member.RoleIDs {
		if id != roleID {
			kept = append(kept, id)
		}
	}
	member.RoleIDs = kept
	return nil
}

func (p *fakePlatform) CreateRole(guildID, name string) (string, error) {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextRole++
	id := fmt.Sprintf("99%d", p.nextRole)
	p.roles = append(p.roles, Role{ID: id, Name: name, Position: 1})
	return id, nil
}

func (p *fakePlatform) SetNickname(guildID, userID, nick string) error {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nicknames[userID] = nick
	return nil
}

func (p *fakePlatform) SetSlowmode(channelID string, seconds int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slowmode[channelID] = seconds
	return nil
}

func (p *fakePlatform) SetRolePermission(channelID, roleID string, allow, deny int64) error {
	_ = allow
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overwrites[channelID+"|"+roleID] = deny
	return nil
}

func (p *fakePlatform) DenySendMessages(guildID, channelID string) error {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	p.denied[channelID] = true
	return nil
}

func (p *fakePlatform) RestoreSendMessages(guildID, channelID string) error {
	_ = guildID
	p.mu.Lock()
	defer p.mu.Unlock()
	p.denied[channelID] = false
	return nil
}

func newTestBot(t *testing.T) (*Bot, *fakePlatform, *fakeClock) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DiscordToken = "test"

	platform := newFakePlatform()
	platform.roles = []Role{
		{ID: modRole, Name: "Mods", Position: 5},
		{ID: botRole, Name: "Warden", Position: 4},
		{ID: memberRole, Name: "Members", Position: 1},
	}
	platform.addMember(ownerID)
	platform.addMember(modID, modRole)
	platform.addMember(botID, botRole)
	platform.addMember(user1ID, memberRole)
	platform.addMember(user2ID, memberRole)
	platform.perms[modID] = discordgo.PermissionAdministrator

	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	scheduler := sched.New()
	scheduler.WithClock(clock)

	guard, err := dedupe.NewGuard(cfg.Moderation.DedupeCapacity)
	if err != nil {
		t.Fatalf("NewGuard: %v", err)
	}

	b := &Bot{
		cfg:       cfg,
		logger:    zap.NewNop(),
		platform:  platform,
		state:     state.NewStore(),
		automod:   automod.NewEngine(),
		guard:     guard,
		scheduler: scheduler,
		reminders: reminders.NewRegistry(),
		polls:     polls.NewRegistry(),
		actions:   modlog.NewLogger(nil, zap.NewNop()),
		filter: filter.New(filter.Config{
			BannedWords:   cfg.Filter.BannedWords,
			AllowLinks:    cfg.Filter.AllowLinks,
			LinkAllowlist: cfg.Filter.LinkAllowlist,
		}),
		spam: spam.New(cfg.Moderation.SpamThreshold, time.Duration(cfg.Moderation.SpamWindowSeconds)*time.Second),
	}
	return b, platform, clock
}

var testMsg int

func send(b *Bot, authorID, content string) {
	testMsg++
	b.handleMessage("g1", "c1", fmt.Sprintf("t%d", testMsg), authorID, content)
}

func mention(userID string) string { return "<@" + userID + ">" }

func TestDuplicateCommandSuppressed(t *testing.T) {
	b, platform, _ := newTestBot(t)

	b.handleMessage("g1", "c1", "dup", modID, "!warnings "+mention(user1ID))
	b.handleMessage("g1", "c1", "dup", modID, "!warnings "+mention(user1ID))

	if got := platform.sentCount(); got != 1 {
		t.Fatalf("sent %d replies, want 1", got)
	}
}

func TestRankGuardBlocksEqualRank(t *testing.T) {
	b, platform, _ := newTestBot(t)
	platform.addMember(mod2ID, modRole)

	send(b, modID, "!warn "+mention(mod2ID)+" being loud")
	if !strings.Contains(platform.lastSent(), "rank") {
		t.Fatalf("expected rank refusal, got %q", platform.lastSent())
	}
	if b.state.WarningCount("g1", mod2ID) != 0 {
		t.Fatalf("warning recorded despite rank guard")
	}

	send(b, ownerID, "!warn "+mention(mod2ID)+" being loud")
	if b.state.WarningCount("g1", mod2ID) != 1 {
		t.Fatalf("owner warn not recorded")
	}
}

func TestWarnEscalation(t *testing.T) {
	b, platform, _ := newTestBot(t)

	send(b, modID, "!automod set 3 mute")
	send(b, modID, "!automod set 5 ban")

	for i := 0; i < 3; i++ {
		send(b, modID, "!warn "+mention(user1ID)+" spamming")
	}
	if _, muted := b.state.Mute("g1", user1ID); !muted {
		t.Fatalf("third warning should have muted")
	}
	muteRoleID := b.state.MuteRoleID("g1")
	if muteRoleID == "" || !platform.hasRole(user1ID, muteRoleID) {
		t.Fatalf("mute role not assigned")
	}

	send(b, modID, "!warn "+mention(user1ID)+" again")
	if len(platform.banned) != 0 {
		t.Fatalf("fourth warning should not ban")
	}

	send(b, modID, "!warn "+mention(user1ID)+" again")
	if len(platform.banned) != 1 || platform.banned[0] != user1ID {
		t.Fatalf("fifth warning should ban, got %v", platform.banned)
	}
}

func TestMuteExpiresAndReplacementSurvives(t *testing.T) {
	b, platform, clock := newTestBot(t)

	send(b, modID, "!mute "+mention(user1ID)+" 1m testing")
	muteRoleID := b.state.MuteRoleID("g1")
	if !platform.hasRole(user1ID, muteRoleID) {
		t.Fatalf("mute role not assigned")
	}

	// Replacement mute before the first expires.
	send(b, modID, "!mute "+mention(user1ID)+" 1h longer")

	clock.Advance(time.Minute)
	if !platform.hasRole(user1ID, muteRoleID) {
		t.Fatalf("stale timer removed replacement mute")
	}
	if _, muted := b.state.Mute("g1", user1ID); !muted {
		t.Fatalf("replacement mute record lost")
	}

	clock.Advance(time.Hour)
	if platform.hasRole(user1ID, muteRoleID) {
		t.Fatalf("mute role not removed after expiry")
	}
	if _, muted := b.state.Mute("g1", user1ID); muted {
		t.Fatalf("mute record not cleared after expiry")
	}
}

func TestLockdownAndTimedUnlock(t *testing.T) {
	b, platform, clock := newTestBot(t)

	send(b, modID, "!lockdown 5m")
	if !platform.denied["c1"] {
		t.Fatalf("channel not locked")
	}
	send(b, modID, "!lockdown")
	if !strings.Contains(platform.lastSent(), "already locked") {
		t.Fatalf("second lockdown should report already locked, got %q", platform.lastSent())
	}

	clock.Advance(5 * time.Minute)
	if platform.denied["c1"] {
		t.Fatalf("channel still locked after expiry")
	}
	if b.state.ChannelLocked("g1", "c1") {
		t.Fatalf("lock record not cleared")
	}
}

func TestPermanentLockdownNeedsManualUnlock(t *testing.T) {
	b, platform, clock := newTestBot(t)

	send(b, modID, "!lockdown")
	clock.Advance(24 * time.Hour)
	if !platform.denied["c1"] {
		t.Fatalf("permanent lockdown expired on its own")
	}

	send(b, modID, "!unlock")
	if platform.denied["c1"] {
		t.Fatalf("unlock did not restore the channel")
	}
}

func TestRemindBoundsAndDelivery(t *testing.T) {
	b, platform, clock := newTestBot(t)

	send(b, user1ID, "!remind 5s too soon")
	if !strings.Contains(platform.lastSent(), "out of range") {
		t.Fatalf("expected out of range, got %q", platform.lastSent())
	}

	send(b, user1ID, "!remind 10m stretch your legs")
	clock.Advance(10 * time.Minute)
	if !strings.Contains(platform.lastSent(), "stretch your legs") {
		t.Fatalf("reminder not delivered, got %q", platform.lastSent())
	}
	if b.reminders.Len() != 0 {
		t.Fatalf("reminder left in registry")
	}
}

func TestPollClosesWithTally(t *testing.T) {
	b, platform, clock := newTestBot(t)

	send(b, user1ID, "!poll pineapple on pizza")
	pollMsg := "m1"
	platform.react(pollMsg, thumbsUp, user1ID, user2ID)
	platform.react(pollMsg, thumbsDown, modID)

	clock.Advance(polls.Window)
	closed := platform.lastSent()
	if !strings.Contains(closed, "Poll closed") {
		t.Fatalf("poll did not close, got %q", closed)
	}
	// Bot's own seed reactions are excluded from the tally.
	if !strings.Contains(closed, thumbsUp+" 2") || !strings.Contains(closed, thumbsDown+" 1") {
		t.Fatalf("wrong tally: %q", closed)
	}
	if !strings.Contains(closed, "Yes wins") {
		t.Fatalf("wrong verdict: %q", closed)
	}
}

func TestNapIgnoresCommandsUntilWake(t *testing.T) {
	b, platform, clock := newTestBot(t)

	send(b, modID, "!nap")
	before := platform.sentCount()
	send(b, modID, "!warnings "+mention(user1ID))
	if platform.sentCount() != before {
		t.Fatalf("command handled while napping")
	}

	clock.Advance(2 * time.Minute)
	send(b, modID, "!warnings "+mention(user1ID))
	if platform.sentCount() != before+2 {
		t.Fatalf("commands not handled after waking")
	}
}

func TestSpamBurstMutes(t *testing.T) {
	b, platform, _ := newTestBot(t)

	for i := 0; i < 6; i++ {
		send(b, user1ID, fmt.Sprintf("hello %d", i))
	}
	rec, muted := b.state.Mute("g1", user1ID)
	if !muted {
		t.Fatalf("burst did not mute")
	}
	if !platform.hasRole(user1ID, rec.RoleID) {
		t.Fatalf("mute role not assigned")
	}
}

func TestFilterDeletesMessage(t *testing.T) {
	b, platform, _ := newTestBot(t)

	b.handleMessage("g1", "c1", "bad1", user1ID, "get free nitro here")
	if len(platform.deleted) != 1 || platform.deleted[0] != "bad1" {
		t.Fatalf("filtered message not deleted: %v", platform.deleted)
	}

	// Moderators are exempt.
	b.handleMessage("g1", "c1", "bad2", modID, "that free nitro thing is a scam")
	if len(platform.deleted) != 1 {
		t.Fatalf("moderator message deleted")
	}
}

func TestRemoveWarnRearmsAutomod(t *testing.T) {
	b, platform, _ := newTestBot(t)

	send(b, modID, "!automod set 2 kick")
	send(b, modID, "!warn "+mention(user1ID)+" one")
	send(b, modID, "!warn "+mention(user1ID)+" two")
	if len(platform.kicked) != 1 {
		t.Fatalf("threshold 2 should kick, got %v", platform.kicked)
	}

	send(b, modID, "!removewarn "+mention(user1ID)+" 1")
	send(b, modID, "!removewarn "+mention(user1ID)+" 2")
	send(b, modID, "!warn "+mention(user1ID)+" one")
	send(b, modID, "!warn "+mention(user1ID)+" two")
	if len(platform.kicked) != 2 {
		t.Fatalf("automod should re-fire after full reset, got %v", platform.kicked)
	}
}

func TestSlowmodeBounds(t *testing.T) {
	b, platform, _ := newTestBot(t)

	send(b, modID, "!slowmode 30000")
	if !strings.Contains(platform.lastSent(), "out of range") {
		t.Fatalf("expected out of range, got %q", platform.lastSent())
	}
	send(b, modID, "!slowmode 30")
	if platform.slowmode["c1"] != 30 {
		t.Fatalf("slowmode not applied: %v", platform.slowmode)
	}
}

func TestWelcomeAndAutoroleOnJoin(t *testing.T) {
	b, platform, _ := newTestBot(t)

	send(b, modID, "!welcome <#500> Hey {user}, read the rules!")
	send(b, modID, "!autorole <@&"+memberRole+">")

	platform.addMember("112")
	b.onGuildMemberAdd(nil, &discordgo.GuildMemberAdd{Member: &discordgo.Member{
		GuildID: "g1",
		User:    &discordgo.User{ID: "112"},
	}})

	if !strings.Contains(platform.lastSent(), "<@112>") {
		t.Fatalf("welcome not sent, got %q", platform.lastSent())
	}
	if !platform.hasRole("112", memberRole) {
		t.Fatalf("autorole not granted")
	}
}

func TestMuteRoleDeniesSendAndSpeak(t *testing.T) {
	b, platform, _ := newTestBot(t)

	send(b, modID, "!mute "+mention(user1ID)+" 10m quiet")
	roleID := b.state.MuteRoleID("g1")
	if roleID == "" {
		t.Fatalf("mute role not created")
	}

	wantDeny := int64(discordgo.PermissionSendMessages | discordgo.PermissionVoiceSpeak)
	for _, channelID := range platform.channels {
		deny, ok := platform.overwrites[channelID+"|"+roleID]
		if !ok {
			t.Fatalf("no overwrite for channel %s", channelID)
		}
		if deny&wantDeny != wantDeny {
			t.Fatalf("channel %s deny = %d, want send+speak denied", channelID, deny)
		}
	}
}

func TestZeroDurationMuteRejected(t *testing.T) {
	b, platform, _ := newTestBot(t)

	send(b, modID, "!mute "+mention(user1ID)+" 0m oops")
	if !strings.Contains(platform.lastSent(), "out of range") {
		t.Fatalf("expected out of range, got %q", platform.lastSent())
	}
	if _, muted := b.state.Mute("g1", user1ID); muted {
		t.Fatalf("zero-duration mute stored a record")
	}
}

func TestUnbanMissingUserNotFound(t *testing.T) {
	b, platform, _ := newTestBot(t)
	platform.failUnban = state.ErrNotFound

	send(b, modID, "!unban "+user1ID)
	if !strings.Contains(platform.lastSent(), "could not find") {
		t.Fatalf("expected not-found reply, got %q", platform.lastSent())
	}
}

func TestPlatformErrorMapping(t *testing.T) {
	restErr := func(status int) error {
		return &discordgo.RESTError{Response: &http.Response{StatusCode: status}}
	}
	if got := mapError(restErr(http.StatusForbidden)); !errors.Is(got, ErrPermissionDenied) {
		t.Fatalf("403 mapped to %v", got)
	}
	if got := mapError(restErr(http.StatusNotFound)); !errors.Is(got, state.ErrNotFound) {
		t.Fatalf("404 mapped to %v", got)
	}
	if got := mapError(restErr(http.StatusInternalServerError)); errors.Is(got, ErrPermissionDenied) || errors.Is(got, state.ErrNotFound) {
		t.Fatalf("500 should pass through, got %v", got)
	}
	if got := mapError(nil); got != nil {
		t.Fatalf("nil mapped to %v", got)
	}
}

func TestPollQuestionLimitCountsRunes(t *testing.T) {
	b, platform, _ := newTestBot(t)

	// 150 two-byte runes: over 200 bytes, under 200 characters.
	send(b, user1ID, "!poll "+strings.Repeat("é", 150))
	if !strings.Contains(platform.lastSent(), "Poll") {
		t.Fatalf("multibyte question rejected, got %q", platform.lastSent())
	}

	send(b, user1ID, "!poll "+strings.Repeat("é", 201))
	if !strings.Contains(platform.lastSent(), "out of range") {
		t.Fatalf("overlong question accepted, got %q", platform.lastSent())
	}
}

func TestManageRolesCountsAsModerator(t *testing.T) {
	b, platform, _ := newTestBot(t)
	platform.addMember("120", memberRole)
	platform.perms["120"] = discordgo.PermissionManageRoles

	send(b, "120", "!slowmode 15")
	if platform.slowmode["c1"] != 15 {
		t.Fatalf("manage-roles moderator locked out: %v", platform.slowmode)
	}
}

func TestPrefixOverride(t *testing.T) {
	b, platform, _ := newTestBot(t)

	send(b, modID, "!prefix ?")
	before := platform.sentCount()
	send(b, modID, "!warnings "+mention(user1ID))
	if platform.sentCount() != before {
		t.Fatalf("old prefix still dispatches")
	}
	send(b, modID, "?warnings "+mention(user1ID))
	if platform.sentCount() != before+1 {
		t.Fatalf("new prefix not dispatching")
	}
}
