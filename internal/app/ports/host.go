package ports

// ConversationKind classifies a channel for the "filter DMs" rule.
type ConversationKind int

const (
	ConversationOther ConversationKind = iota
	ConversationDirect
	ConversationGroup
)

func (k ConversationKind) IsPrivate() bool {
	return k == ConversationDirect || k == ConversationGroup
}

// FolderResolverPort maps a folder to the servers the host currently keeps in it.
type FolderResolverPort interface {
	GuildIDs(folderID string) ([]string, error)
}

type ConversationClassifierPort interface {
	Classify(channelID string) (ConversationKind, error)
}

type Toast struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	URL   string `json:"url"`
}

// PresenterPort replaces default delivery when custom sound or toaster is enabled.
type PresenterPort interface {
	PlaySound(audio []byte) error
	ShowToast(t Toast) error
}
