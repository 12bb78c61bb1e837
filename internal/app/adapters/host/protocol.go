package host

import (
	"encoding/json"
	"notifwhitelist/internal/app/adapters/menu"
	"notifwhitelist/internal/app/ports"
)

type MessageType string

const (
	// host -> plugin
	TypeFolders      MessageType = "folders"
	TypeChannels     MessageType = "channels"
	TypeNotification MessageType = "notification"
	TypeMenu         MessageType = "menu"
	TypeMenuAction   MessageType = "menu_action"

	// plugin -> host
	TypeDeliver   MessageType = "deliver"
	TypeResolve   MessageType = "resolve"
	TypePlaySound MessageType = "play_sound"
	TypeToast     MessageType = "toast"
	TypeMenuItems MessageType = "menu_items"
	TypeMenuAck   MessageType = "menu_ack"
	TypeError     MessageType = "error"
)

// Channel kinds as the host reports them.
const (
	KindDM      = "dm"
	KindGroupDM = "group_dm"
	KindGuild   = "guild"
)

type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func NewEnvelope(t MessageType, v any) (*Envelope, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &Envelope{Type: t, Data: data}, nil
}

// FoldersMessage replaces the whole folder snapshot.
type FoldersMessage struct {
	Folders map[string][]string `json:"folders"`
}

// ChannelsMessage merges channel kinds into the snapshot. Reset drops what was known before.
type ChannelsMessage struct {
	Channels map[string]string `json:"channels"`
	Reset    bool              `json:"reset,omitempty"`
}

type MenuMessage struct {
	ID      string       `json:"id"`
	Surface menu.Surface `json:"surface"`
	Props   menu.Props   `json:"props"`
}

type MenuActionMessage struct {
	ID      string       `json:"id"`
	Surface menu.Surface `json:"surface"`
	Props   menu.Props   `json:"props"`
	ItemID  string       `json:"item_id"`
}

type MenuItemsMessage struct {
	ID    string      `json:"id"`
	Items []menu.Item `json:"items"`
}

// ResultMessage answers a notification (resolve) or a menu action (menu_ack).
type ResultMessage struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

type SoundMessage struct {
	Audio []byte `json:"audio"`
}

type ToastMessage = ports.Toast

type ErrorMessage struct {
	Message string `json:"message"`
}

func kind(s string) ports.ConversationKind {
	switch s {
	case KindDM:
		return ports.ConversationDirect
	case KindGroupDM:
		return ports.ConversationGroup
	}
	return ports.ConversationOther
}
