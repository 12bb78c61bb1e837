package preferences

import "slices"

// List names a whitelist or blacklist inside the Record. Values match the persisted field names.
type List string

const (
	FolderWhitelist  List = "folderWhitelist"
	ServerWhitelist  List = "serverWhitelist"
	ServerBlacklist  List = "serverBlacklist"
	ChannelWhitelist List = "channelWhitelist"
	ChannelBlacklist List = "channelBlacklist"
)

var (
	AllLists   = []List{FolderWhitelist, ServerWhitelist, ServerBlacklist, ChannelWhitelist, ChannelBlacklist}
	Whitelists = []List{ServerWhitelist, FolderWhitelist, ChannelWhitelist}
	Blacklists = []List{ServerBlacklist, ChannelBlacklist}
)

func (l List) Valid() bool {
	return slices.Contains(AllLists, l)
}

// Option names a boolean toggle inside the Record.
type Option string

const (
	EnableWhitelisting           Option = "enableWhitelisting"
	FilterDMs                    Option = "filterDMs"
	AllowNonMessageNotifications Option = "allowNonMessageNotifications"
	UseCustomNotificationSound   Option = "useCustomNotificationSound"
	DisplayCustomToaster         Option = "displayCustomToaster"
)

var AllOptions = []Option{EnableWhitelisting, FilterDMs, AllowNonMessageNotifications, UseCustomNotificationSound, DisplayCustomToaster}

func (o Option) Valid() bool {
	return slices.Contains(AllOptions, o)
}

type Record struct {
	FolderWhitelist  []string `json:"folderWhitelist"`
	ServerWhitelist  []string `json:"serverWhitelist"`
	ServerBlacklist  []string `json:"serverBlacklist"`
	ChannelWhitelist []string `json:"channelWhitelist"`
	ChannelBlacklist []string `json:"channelBlacklist"`

	EnableWhitelisting           bool `json:"enableWhitelisting"`
	FilterDMs                    bool `json:"filterDMs"`
	AllowNonMessageNotifications bool `json:"allowNonMessageNotifications"`

	UseCustomNotificationSound   bool   `json:"useCustomNotificationSound"`
	CustomNotificationSoundBytes []byte `json:"customNotificationSoundBytes"`
	DisplayCustomToaster         bool   `json:"displayCustomToaster"`
}

func Default() *Record {
	return &Record{
		FolderWhitelist:              []string{},
		ServerWhitelist:              []string{},
		ServerBlacklist:              []string{},
		ChannelWhitelist:             []string{},
		ChannelBlacklist:             []string{},
		EnableWhitelisting:           true,
		FilterDMs:                    true,
		AllowNonMessageNotifications: false,
		UseCustomNotificationSound:   false,
		CustomNotificationSoundBytes: []byte{},
		DisplayCustomToaster:         false,
	}
}

// List returns a pointer to the named list, or nil for an unknown name.
func (r *Record) List(name List) *[]string {
	switch name {
	case FolderWhitelist:
		return &r.FolderWhitelist
	case ServerWhitelist:
		return &r.ServerWhitelist
	case ServerBlacklist:
		return &r.ServerBlacklist
	case ChannelWhitelist:
		return &r.ChannelWhitelist
	case ChannelBlacklist:
		return &r.ChannelBlacklist
	}
	return nil
}

func (r *Record) Contains(name List, id string) bool {
	if id == "" {
		return false
	}
	l := r.List(name)
	return l != nil && slices.Contains(*l, id)
}

// Option returns a pointer to the named toggle, or nil for an unknown name.
func (r *Record) Option(name Option) *bool {
	switch name {
	case EnableWhitelisting:
		return &r.EnableWhitelisting
	case FilterDMs:
		return &r.FilterDMs
	case AllowNonMessageNotifications:
		return &r.AllowNonMessageNotifications
	case UseCustomNotificationSound:
		return &r.UseCustomNotificationSound
	case DisplayCustomToaster:
		return &r.DisplayCustomToaster
	}
	return nil
}

func (r *Record) Clone() *Record {
	c := *r
	for _, name := range AllLists {
		l := c.List(name)
		*l = slices.Clone(*l)
	}
	c.CustomNotificationSoundBytes = slices.Clone(r.CustomNotificationSoundBytes)
	return &c
}

// normalize restores the invariants a hand-edited or older document may break:
// every list exists and holds each id at most once.
func (r *Record) normalize() {
	for _, name := range AllLists {
		l := r.List(name)
		seen := make(map[string]struct{}, len(*l))
		out := make([]string, 0, len(*l))
		for _, id := range *l {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		*l = out
	}
	if r.CustomNotificationSoundBytes == nil {
		r.CustomNotificationSoundBytes = []byte{}
	}
}
