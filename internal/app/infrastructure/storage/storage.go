package storage

import (
	"fmt"
	"notifwhitelist/internal/app/infrastructure/config"
	"notifwhitelist/internal/app/ports"
)

// New opens the backend selected in cfg.
func New(cfg config.Data) (ports.DataStorePort, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Path)
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.Backend)
	}
}
