package changelog

import (
	"fmt"
	"github.com/Masterminds/semver/v3"
	"notifwhitelist/internal/app/ports"
)

const (
	Version    = "1.2.0"
	Namespace  = "NotificationWhitelist"
	VersionKey = "currentVersion"
)

type Section struct {
	Title string   `json:"title"`
	Type  string   `json:"type"` // added|fixed|improved
	Items []string `json:"items"`
}

// Notes holds the change notes shown once after upgrading to the keyed version.
var Notes = map[string][]Section{
	"1.2.0": {
		{
			Title: "New Features",
			Type:  "added",
			Items: []string{
				"Added the ability to blacklist channels and servers. You can now find that toggle in those context menus. Note that blacklists take priority over whitelists.",
				"Added a setting to disable filtering of DMs and group DMs. Turning this off will allow all notifications for DMs and group DMs.",
			},
		},
		{
			Title: "Bug fixes",
			Type:  "fixed",
			Items: []string{
				"Fixed the settings panel and context menu toggles breaking when using the plugin for the first time.",
			},
		},
	},
}

type Changelog struct {
	Title    string    `json:"title"`
	Version  string    `json:"version"`
	Previous string    `json:"previous,omitempty"`
	Changes  []Section `json:"changes"`
}

// Check compares the last version recorded in data with current, records current,
// and returns the notes to show, or nil when the user already saw them.
// The notes are still returned when recording the version fails.
func Check(data ports.DataStorePort, current string) (*Changelog, error) {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return nil, fmt.Errorf("parse version %q: %w", current, err)
	}

	var last string
	found, loadErr := data.Load(Namespace, VersionKey, &last)

	var out *Changelog
	if loadErr != nil || !found || newer(cur, last) {
		out = &Changelog{
			Title:    fmt.Sprintf("Notification Whitelist %s", current),
			Version:  current,
			Previous: last,
			Changes:  Notes[current],
		}
	}

	if err := data.Save(Namespace, VersionKey, current); err != nil {
		return out, fmt.Errorf("save version: %w", err)
	}
	return out, nil
}

// newer reports whether cur is ahead of last. An unparsable last version counts as older.
func newer(cur *semver.Version, last string) bool {
	prev, err := semver.NewVersion(last)
	if err != nil {
		return true
	}
	return cur.GreaterThan(prev)
}
