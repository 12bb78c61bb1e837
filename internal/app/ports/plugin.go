package ports

import (
	"context"
	"notifwhitelist/internal/app/adapters/hook"
	"notifwhitelist/internal/app/adapters/menu"
)

// PluginPort is what the host bridge drives. Every call is serialized by the implementation.
type PluginPort interface {
	Dispatch(ctx context.Context, call *hook.Call) error
	MenuItems(surface menu.Surface, props menu.Props) []menu.Item
	InvokeMenu(surface menu.Surface, props menu.Props, itemID string) error
}

type HostStatusPort interface {
	Connected() bool
}
