// Package interceptor is the patch the plugin installs on notification dispatch.
package interceptor

import (
	"context"
	"errors"
	"fmt"
	"notifwhitelist/internal/app/adapters/hook"
	"notifwhitelist/internal/app/adapters/metrics"
	"notifwhitelist/internal/app/domain/filter"
	"notifwhitelist/internal/app/domain/preferences"
	"notifwhitelist/internal/app/ports"
	"notifwhitelist/pkg/logger"
	"strings"
	"time"
)

type Settings interface {
	Get() *preferences.Record
}

type Interceptor struct {
	log       logger.Logger
	engine    *filter.Engine
	settings  Settings
	presenter ports.PresenterPort
	linkBase  string
}

func New(log logger.Logger, engine *filter.Engine, settings Settings, presenter ports.PresenterPort, linkBase string) *Interceptor {
	return &Interceptor{
		log:       log,
		engine:    engine,
		settings:  settings,
		presenter: presenter,
		linkBase:  strings.TrimRight(linkBase, "/"),
	}
}

// Handle matches hook.Interceptor. A blocked call resolves without delivering anything.
func (i *Interceptor) Handle(ctx context.Context, c *hook.Call, orig hook.Func) error {
	prefs := i.settings.Get()

	start := time.Now()
	res := i.engine.Decide(event(c), prefs)
	metrics.DecisionTime.Observe(time.Since(start).Seconds())
	metrics.Notifications.WithLabelValues(res.Decision.String(), string(res.Rule)).Inc()

	if !res.Allowed() {
		i.log.Debug("Notification blocked", "rule", res.Rule, "title", c.Title)
		return nil
	}
	i.log.Trace("Notification allowed", "rule", res.Rule, "title", c.Title)

	if !prefs.UseCustomNotificationSound && !prefs.DisplayCustomToaster {
		return orig(ctx, c)
	}
	return i.present(c, prefs)
}

// present replaces the default delivery, sound and toaster included.
func (i *Interceptor) present(c *hook.Call, prefs *preferences.Record) error {
	var errs []error

	if prefs.UseCustomNotificationSound && len(prefs.CustomNotificationSoundBytes) > 0 {
		if err := i.presenter.PlaySound(prefs.CustomNotificationSoundBytes); err != nil {
			errs = append(errs, fmt.Errorf("play sound: %w", err))
		}
	}

	if prefs.DisplayCustomToaster {
		t := ports.Toast{Title: c.Title, Body: c.Body, Icon: c.Icon, URL: i.Link(c.Meta)}
		if err := i.presenter.ShowToast(t); err != nil {
			errs = append(errs, fmt.Errorf("show toast: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		i.log.Warn("Custom notification failed", "error", err.Error())
	}
	return err
}

// Link points at the message the notification is about; DMs live under @me.
func (i *Interceptor) Link(m *hook.Metadata) string {
	if m == nil || m.ChannelID == "" {
		return ""
	}

	guild := m.GuildID
	if guild == "" {
		guild = "@me"
	}

	link := fmt.Sprintf("%s/channels/%s/%s", i.linkBase, guild, m.ChannelID)
	if m.MessageID != "" {
		link += "/" + m.MessageID
	}
	return link
}

func event(c *hook.Call) *filter.Event {
	if c == nil || c.Meta == nil {
		return nil
	}
	return &filter.Event{ChannelID: c.Meta.ChannelID, GuildID: c.Meta.GuildID}
}
