package filter

import (
	"notifwhitelist/internal/app/domain/preferences"
	"notifwhitelist/internal/app/ports"
	"slices"
)

type Decision int

const (
	Allow Decision = iota
	Block
)

func (d Decision) String() string {
	if d == Block {
		return "block"
	}
	return "allow"
}

// Rule names the step that produced a decision.
type Rule string

const (
	RuleMalformed        Rule = "malformed"
	RuleDisabled         Rule = "disabled"
	RuleNonMessage       Rule = "non_message"
	RulePrivateUnfilter  Rule = "private_unfiltered"
	RuleBlacklisted      Rule = "blacklisted"
	RuleChannelWhitelist Rule = "channel_whitelist"
	RuleServerWhitelist  Rule = "server_whitelist"
	RuleFolderWhitelist  Rule = "folder_whitelist"
	RuleNoMatch          Rule = "no_match"
)

// Event carries the identifiers of one notification. Empty means absent.
type Event struct {
	ChannelID string
	GuildID   string
}

type Result struct {
	Decision Decision
	Rule     Rule
}

func (r Result) Allowed() bool {
	return r.Decision == Allow
}

type Engine struct {
	folders  ports.FolderResolverPort
	channels ports.ConversationClassifierPort
}

func New(folders ports.FolderResolverPort, channels ports.ConversationClassifierPort) *Engine {
	return &Engine{folders: folders, channels: channels}
}

// Decide evaluates the rules in order and stops at the first one that matches.
// A nil event could not be classified and is let through.
func (e *Engine) Decide(ev *Event, prefs *preferences.Record) Result {
	if ev == nil {
		return Result{Allow, RuleMalformed}
	}

	if !prefs.EnableWhitelisting {
		return Result{Allow, RuleDisabled}
	}

	if ev.ChannelID == "" && ev.GuildID == "" && prefs.AllowNonMessageNotifications {
		return Result{Allow, RuleNonMessage}
	}

	if !prefs.FilterDMs && e.isPrivate(ev.ChannelID) {
		return Result{Allow, RulePrivateUnfilter}
	}

	// blacklist skips every whitelist check
	if prefs.Contains(preferences.ChannelBlacklist, ev.ChannelID) || prefs.Contains(preferences.ServerBlacklist, ev.GuildID) {
		return Result{Block, RuleBlacklisted}
	}

	if prefs.Contains(preferences.ChannelWhitelist, ev.ChannelID) {
		return Result{Allow, RuleChannelWhitelist}
	}
	if prefs.Contains(preferences.ServerWhitelist, ev.GuildID) {
		return Result{Allow, RuleServerWhitelist}
	}
	if ev.GuildID != "" && e.inWhitelistedFolder(ev.GuildID, prefs.FolderWhitelist) {
		return Result{Allow, RuleFolderWhitelist}
	}

	return Result{Block, RuleNoMatch}
}

func (e *Engine) isPrivate(channelID string) bool {
	if channelID == "" || e.channels == nil {
		return false
	}
	kind, err := e.channels.Classify(channelID)
	if err != nil {
		return false
	}
	return kind.IsPrivate()
}

// inWhitelistedFolder asks the resolver on every call: folder contents change behind our back.
// A folder that cannot be resolved holds no servers.
func (e *Engine) inWhitelistedFolder(guildID string, folders []string) bool {
	if e.folders == nil {
		return false
	}
	for _, folderID := range folders {
		guilds, err := e.folders.GuildIDs(folderID)
		if err != nil {
			continue
		}
		if slices.Contains(guilds, guildID) {
			return true
		}
	}
	return false
}
