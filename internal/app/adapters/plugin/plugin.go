package plugin

import (
	"context"
	"errors"
	"fmt"
	"notifwhitelist/internal/app/adapters/hook"
	"notifwhitelist/internal/app/adapters/interceptor"
	"notifwhitelist/internal/app/adapters/menu"
	"notifwhitelist/internal/app/adapters/metrics"
	"notifwhitelist/internal/app/domain/changelog"
	"notifwhitelist/internal/app/domain/filter"
	"notifwhitelist/internal/app/domain/lists"
	"notifwhitelist/internal/app/domain/preferences"
	"notifwhitelist/internal/app/ports"
	"notifwhitelist/pkg/logger"
	"sync"
)

const Name = "NotificationWhitelist"

var (
	ErrNotStarted    = errors.New("plugin not started")
	ErrUnknownOption = errors.New("unknown option")
	ErrSoundTooLarge = errors.New("sound too large")
)

// Host is everything the plugin needs from the client it runs in.
type Host interface {
	ports.FolderResolverPort
	ports.ConversationClassifierPort
	ports.PresenterPort
}

type Options struct {
	LinkBase      string
	MaxSoundBytes int
}

// Plugin owns the preferences and every patch installed on the host. All exported
// methods take the same lock, so decisions and edits never interleave.
type Plugin struct {
	mu   sync.Mutex
	log  logger.Logger
	data ports.DataStorePort
	opts Options

	surface *hook.Surface
	menus   *menu.Registry

	prefs       *preferences.Manager
	lists       *lists.Mutator
	interceptor *interceptor.Interceptor

	started  bool
	removers []func()
	notes    *changelog.Changelog
}

func New(log logger.Logger, data ports.DataStorePort, host Host, surface *hook.Surface, menus *menu.Registry, opts Options) *Plugin {
	prefs := preferences.New(log, data)
	engine := filter.New(host, host)

	p := &Plugin{
		log:         log,
		data:        data,
		opts:        opts,
		surface:     surface,
		menus:       menus,
		prefs:       prefs,
		lists:       lists.New(log, prefs),
		interceptor: interceptor.New(log, engine, prefs, host, opts.LinkBase),
	}
	p.lists.OnChange(func(list preferences.List, op lists.Op) {
		metrics.ListMutations.WithLabelValues(string(list), string(op)).Inc()
	})
	return p
}

func (p *Plugin) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}

	notes, err := changelog.Check(p.data, changelog.Version)
	if err != nil {
		p.log.Error("Failed to record plugin version", err)
	}
	if notes != nil {
		p.log.Info("Changelog pending", "version", notes.Version, "previous", notes.Previous)
	}
	p.notes = notes

	rec, err := p.prefs.Load()
	if err != nil {
		p.log.Error("Failed to load settings", err)
	}
	metrics.SetBool(metrics.WhitelistingEnabled, rec.EnableWhitelisting)

	p.removers = append(p.removers,
		p.menus.Patch(menu.GuildContext, p.guildMenu),
		p.menus.Patch(menu.ChannelContext, p.channelMenu),
		p.menus.Patch(menu.UserContext, p.directMenu),
		p.menus.Patch(menu.GDMContext, p.directMenu),
	)
	p.surface.Instead(Name, p.interceptor.Handle)

	p.started = true
	p.log.Info("Plugin enabled!")
	return nil
}

func (p *Plugin) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.surface.UnpatchAll(Name)
	for _, remove := range p.removers {
		remove()
	}
	p.removers = nil
	p.started = false
	p.log.Info("Plugin disabled!")
}

func (p *Plugin) Dispatch(ctx context.Context, call *hook.Call) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.surface.Dispatch(ctx, call)
}

func (p *Plugin) MenuItems(surface menu.Surface, props menu.Props) []menu.Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.menus.Build(surface, props)
}

func (p *Plugin) InvokeMenu(surface menu.Surface, props menu.Props, itemID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.menus.Invoke(surface, props, itemID)
}

// Settings returns a copy of the current record.
func (p *Plugin) Settings() *preferences.Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.prefs.Get().Clone()
}

// SetOptions applies every toggle in one save.
func (p *Plugin) SetOptions(values map[preferences.Option]bool) error {
	for name := range values {
		if !name.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownOption, name)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.prefs.Update(func(rec *preferences.Record) bool {
		changed := false
		for name, v := range values {
			opt := rec.Option(name)
			if *opt != v {
				*opt = v
				changed = true
			}
		}
		return changed
	})
	metrics.SetBool(metrics.WhitelistingEnabled, p.prefs.Get().EnableWhitelisting)
	return p.saved(err)
}

func (p *Plugin) Add(list preferences.List, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	changed, err := p.lists.Add(list, id)
	return changed, p.saved(err)
}

func (p *Plugin) Remove(list preferences.List, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	changed, err := p.lists.Remove(list, id)
	return changed, p.saved(err)
}

func (p *Plugin) Toggle(list preferences.List, id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.toggle(list, id)
}

func (p *Plugin) ClearWhitelists() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.log.Info("Clearing whitelist!")
	return p.saved(p.lists.Clear(preferences.Whitelists...))
}

func (p *Plugin) ClearBlacklists() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.log.Info("Clearing blacklist!")
	return p.saved(p.lists.Clear(preferences.Blacklists...))
}

// SetSound stores the audio played by the custom notification sound.
func (p *Plugin) SetSound(audio []byte) error {
	if p.opts.MaxSoundBytes > 0 && len(audio) > p.opts.MaxSoundBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrSoundTooLarge, len(audio), p.opts.MaxSoundBytes)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.log.Debug("Setting custom notification sound", "bytes", len(audio))
	return p.saved(p.prefs.Update(func(rec *preferences.Record) bool {
		rec.CustomNotificationSoundBytes = append([]byte(nil), audio...)
		return true
	}))
}

func (p *Plugin) ClearSound() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.saved(p.prefs.Update(func(rec *preferences.Record) bool {
		if len(rec.CustomNotificationSoundBytes) == 0 {
			return false
		}
		rec.CustomNotificationSoundBytes = []byte{}
		return true
	}))
}

// Changelog returns the notes pending since Start, or nil.
func (p *Plugin) Changelog() *changelog.Changelog {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.notes
}

func (p *Plugin) toggle(list preferences.List, id string) (bool, error) {
	in, err := p.lists.Toggle(list, id)
	return in, p.saved(err)
}

// saved records a failed save. The edit is kept in memory either way.
func (p *Plugin) saved(err error) error {
	if err == nil || errors.Is(err, lists.ErrUnknownList) || errors.Is(err, lists.ErrEmptyID) {
		return err
	}
	metrics.SaveFailures.Inc()
	p.log.Error("Failed to save settings", err)
	return err
}
