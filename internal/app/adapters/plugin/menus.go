package plugin

import (
	"notifwhitelist/internal/app/adapters/menu"
	"notifwhitelist/internal/app/domain/preferences"
)

const (
	labelWhitelisted = "Notifications Whitelisted"
	labelBlacklisted = "Notifications Blacklisted"
)

// The menu patches run inside MenuItems and InvokeMenu, which already hold the lock.

func (p *Plugin) guildMenu(props menu.Props) []menu.Item {
	items := []menu.Item{menu.NewSeparator()}

	switch {
	case props.GuildID != "":
		items = append(items,
			p.listToggle(preferences.ServerWhitelist, props.GuildID, labelWhitelisted),
			p.listToggle(preferences.ServerBlacklist, props.GuildID, labelBlacklisted),
		)
	case props.FolderID != "":
		items = append(items, p.listToggle(preferences.FolderWhitelist, props.FolderID, labelWhitelisted))
	}
	return items
}

func (p *Plugin) channelMenu(props menu.Props) []menu.Item {
	if props.ChannelID == "" {
		return nil
	}
	return []menu.Item{
		menu.NewSeparator(),
		p.listToggle(preferences.ChannelWhitelist, props.ChannelID, labelWhitelisted),
		p.listToggle(preferences.ChannelBlacklist, props.ChannelID, labelBlacklisted),
	}
}

// directMenu serves user-context and gdm-context: DMs only get a whitelist.
func (p *Plugin) directMenu(props menu.Props) []menu.Item {
	if props.ChannelID == "" {
		return nil
	}
	return []menu.Item{
		menu.NewSeparator(),
		p.listToggle(preferences.ChannelWhitelist, props.ChannelID, labelWhitelisted),
	}
}

func (p *Plugin) listToggle(list preferences.List, id, label string) menu.Item {
	checked := p.prefs.Get().Contains(list, id)
	return menu.NewToggle(string(list), label, checked, func() error {
		_, err := p.toggle(list, id)
		return err
	})
}
