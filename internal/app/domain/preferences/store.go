package preferences

import (
	"errors"
	"fmt"
	"notifwhitelist/internal/app/ports"
	"notifwhitelist/pkg/logger"
)

const (
	Namespace   = "NotificationWhitelist"
	SettingsKey = "settings"
)

var (
	ErrNotLoaded  = errors.New("preferences not loaded")
	ErrLoadFailed = errors.New("stored settings could not be read; not overwriting them")
)

// Manager owns the in-memory Record and writes it through to the data store.
// It does no locking of its own: callers serialize access.
type Manager struct {
	log  logger.Logger
	data ports.DataStorePort
	rec  *Record

	// failed is set while the stored record is unreadable. Saves are refused so
	// the defaults in memory never replace it.
	failed bool
}

func New(log logger.Logger, data ports.DataStorePort) *Manager {
	return &Manager{log: log, data: data}
}

// Load reads the persisted record, persisting defaults first when there is none,
// and keeps the persisted fields laid over the defaults.
func (m *Manager) Load() (*Record, error) {
	m.log.Debug("Loading settings")

	rec := Default()
	found, err := m.data.Load(Namespace, SettingsKey, rec)
	switch {
	case errors.Is(err, ports.ErrCorruptValue):
		// fields that decoded stay, the rest keep their defaults
		m.log.Warn("Stored settings partly unreadable", "error", err.Error())
		rec.normalize()
		m.rec, m.failed = rec, false
		return m.rec, fmt.Errorf("load settings: %w", err)
	case err != nil:
		m.rec, m.failed = Default(), true
		return m.rec, fmt.Errorf("load settings: %w", err)
	}
	m.failed = false

	if !found {
		rec = Default()
		if err := m.data.Save(Namespace, SettingsKey, rec); err != nil {
			m.rec = rec
			return m.rec, fmt.Errorf("save default settings: %w", err)
		}
	}

	rec.normalize()
	m.rec = rec
	return m.rec, nil
}

func (m *Manager) Get() *Record {
	if m.rec == nil {
		m.rec = Default()
	}
	return m.rec
}

func (m *Manager) Save() error {
	if m.rec == nil {
		return ErrNotLoaded
	}
	if m.failed {
		return ErrLoadFailed
	}

	m.log.Debug("Saving settings")
	if err := m.data.Save(Namespace, SettingsKey, m.rec); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Update applies modify to the record and saves when it reports a change.
// On a failed save the modified record stays in memory.
func (m *Manager) Update(modify func(rec *Record) bool) error {
	if !modify(m.Get()) {
		return nil
	}
	return m.Save()
}
