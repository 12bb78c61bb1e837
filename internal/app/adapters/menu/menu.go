package menu

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"sync"
)

var ErrItemNotFound = errors.New("menu item not found")

type Surface string

const (
	GuildContext   Surface = "guild-context"
	ChannelContext Surface = "channel-context"
	UserContext    Surface = "user-context"
	GDMContext     Surface = "gdm-context"
)

func (s Surface) Valid() bool {
	switch s {
	case GuildContext, ChannelContext, UserContext, GDMContext:
		return true
	}
	return false
}

// Props describes what the menu was opened on. guild-context carries either GuildID or FolderID.
type Props struct {
	GuildID   string `json:"guild_id,omitempty"`
	FolderID  string `json:"folder_id,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
}

type ItemType string

const (
	Separator ItemType = "separator"
	Toggle    ItemType = "toggle"
)

type Item struct {
	ID      string   `json:"id,omitempty"`
	Type    ItemType `json:"type"`
	Label   string   `json:"label,omitempty"`
	Checked bool     `json:"checked,omitempty"`

	action func() error
}

func NewSeparator() Item {
	return Item{Type: Separator}
}

func NewToggle(id, label string, checked bool, action func() error) Item {
	return Item{ID: id, Type: Toggle, Label: label, Checked: checked, action: action}
}

// Patch appends items to a menu about to be shown.
type Patch func(props Props) []Item

type entry struct {
	id uuid.UUID
	fn Patch
}

type Registry struct {
	mu      sync.RWMutex
	patches map[Surface][]entry
}

func NewRegistry() *Registry {
	return &Registry{patches: make(map[Surface][]entry)}
}

// Patch registers fn for surface and returns its remover.
func (r *Registry) Patch(surface Surface, fn Patch) func() {
	id := uuid.New()

	r.mu.Lock()
	r.patches[surface] = append(r.patches[surface], entry{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		list := r.patches[surface]
		for i, e := range list {
			if e.id == id {
				r.patches[surface] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

func (r *Registry) Build(surface Surface, props Props) []Item {
	r.mu.RLock()
	list := append([]entry(nil), r.patches[surface]...)
	r.mu.RUnlock()

	var items []Item
	for _, e := range list {
		items = append(items, e.fn(props)...)
	}
	return items
}

// Invoke rebuilds the menu for props and runs the toggle with itemID.
func (r *Registry) Invoke(surface Surface, props Props, itemID string) error {
	for _, it := range r.Build(surface, props) {
		if it.ID == itemID && it.action != nil {
			return it.action()
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrItemNotFound, itemID, surface)
}
