package lists

import (
	"errors"
	"fmt"
	"notifwhitelist/internal/app/domain/preferences"
	"notifwhitelist/pkg/logger"
	"slices"
)

var (
	ErrUnknownList = errors.New("unknown list")
	ErrEmptyID     = errors.New("empty id")
)

type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
)

// Updater is the slice of preferences.Manager the mutator needs.
type Updater interface {
	Get() *preferences.Record
	Update(modify func(rec *preferences.Record) bool) error
}

// Mutator performs idempotent edits of the record's lists. Only an edit that changes a list persists.
type Mutator struct {
	log      logger.Logger
	prefs    Updater
	onChange func(list preferences.List, op Op)
}

func New(log logger.Logger, prefs Updater) *Mutator {
	return &Mutator{log: log, prefs: prefs}
}

// OnChange registers a hook called for every list that actually changed.
func (m *Mutator) OnChange(fn func(list preferences.List, op Op)) {
	m.onChange = fn
}

// Add reports whether id was inserted. A save error is returned with changed=true:
// the id stays in memory.
func (m *Mutator) Add(list preferences.List, id string) (bool, error) {
	if err := check(list, id); err != nil {
		return false, err
	}
	m.log.Debug("Adding to list", "list", list, "id", id)

	changed := false
	err := m.prefs.Update(func(rec *preferences.Record) bool {
		l := rec.List(list)
		if slices.Contains(*l, id) {
			return false
		}
		*l = append(*l, id)
		changed = true
		return true
	})
	if changed {
		m.notify(list, OpAdd)
	}
	return changed, err
}

func (m *Mutator) Remove(list preferences.List, id string) (bool, error) {
	if err := check(list, id); err != nil {
		return false, err
	}
	m.log.Debug("Removing from list", "list", list, "id", id)

	changed := false
	err := m.prefs.Update(func(rec *preferences.Record) bool {
		l := rec.List(list)
		i := slices.Index(*l, id)
		if i < 0 {
			return false
		}
		*l = slices.Delete(*l, i, i+1)
		changed = true
		return true
	})
	if changed {
		m.notify(list, OpRemove)
	}
	return changed, err
}

// Toggle flips membership of id and returns whether it is now in the list.
func (m *Mutator) Toggle(list preferences.List, id string) (bool, error) {
	if err := check(list, id); err != nil {
		return false, err
	}

	if m.prefs.Get().Contains(list, id) {
		_, err := m.Remove(list, id)
		return false, err
	}
	_, err := m.Add(list, id)
	return true, err
}

// Clear empties every named list and saves once.
func (m *Mutator) Clear(names ...preferences.List) error {
	for _, name := range names {
		if !name.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownList, name)
		}
	}
	m.log.Info("Clearing lists", "lists", names)

	var cleared []preferences.List
	err := m.prefs.Update(func(rec *preferences.Record) bool {
		for _, name := range names {
			l := rec.List(name)
			if len(*l) > 0 {
				cleared = append(cleared, name)
			}
			*l = []string{}
		}
		return len(names) > 0
	})
	for _, name := range cleared {
		m.notify(name, OpClear)
	}
	return err
}

func (m *Mutator) notify(list preferences.List, op Op) {
	if m.onChange != nil {
		m.onChange(list, op)
	}
}

func check(list preferences.List, id string) error {
	if !list.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownList, list)
	}
	if id == "" {
		return ErrEmptyID
	}
	return nil
}
