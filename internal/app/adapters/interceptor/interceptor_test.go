package interceptor

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"notifwhitelist/internal/app/adapters/hook"
	"notifwhitelist/internal/app/domain/filter"
	"notifwhitelist/internal/app/domain/preferences"
	"notifwhitelist/internal/app/ports"
	"notifwhitelist/pkg/logger"
	"testing"
)

type staticSettings struct{ rec *preferences.Record }

func (s staticSettings) Get() *preferences.Record { return s.rec }

type fakePresenter struct {
	sounds [][]byte
	toasts []ports.Toast
	err    error
}

func (p *fakePresenter) PlaySound(audio []byte) error {
	p.sounds = append(p.sounds, audio)
	return p.err
}

func (p *fakePresenter) ShowToast(t ports.Toast) error {
	p.toasts = append(p.toasts, t)
	return p.err
}

func setup(rec *preferences.Record) (*Interceptor, *fakePresenter) {
	p := &fakePresenter{}
	return New(logger.Nop(), filter.New(nil, nil), staticSettings{rec}, p, "https://discord.com/"), p
}

func call(channel, guild string) *hook.Call {
	return &hook.Call{
		Icon:  "icon.png",
		Title: "Title",
		Body:  "Body",
		Meta:  &hook.Metadata{ChannelID: channel, GuildID: guild, MessageID: "m1"},
	}
}

func TestHandle_Decision(t *testing.T) {
	rec := preferences.Default()
	rec.ChannelWhitelist = []string{"C1"}

	tests := []struct {
		name      string
		call      *hook.Call
		delivered bool
	}{
		{name: "whitelisted channel", call: call("C1", "G1"), delivered: true},
		{name: "unlisted channel", call: call("C2", "G1"), delivered: false},
		{name: "no metadata", call: &hook.Call{Title: "friend request"}, delivered: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ic, p := setup(rec)
			delivered := false
			orig := func(context.Context, *hook.Call) error {
				delivered = true
				return nil
			}

			require.NoError(t, ic.Handle(context.Background(), tt.call, orig))
			assert.Equal(t, tt.delivered, delivered)
			assert.Empty(t, p.sounds)
			assert.Empty(t, p.toasts)
		})
	}
}

func TestHandle_CustomPresentationReplacesDelivery(t *testing.T) {
	rec := preferences.Default()
	rec.EnableWhitelisting = false
	rec.UseCustomNotificationSound = true
	rec.CustomNotificationSoundBytes = []byte{1, 2, 3}
	rec.DisplayCustomToaster = true

	ic, p := setup(rec)
	orig := func(context.Context, *hook.Call) error {
		t.Fatal("default delivery must not run")
		return nil
	}

	require.NoError(t, ic.Handle(context.Background(), call("C1", ""), orig))
	require.Len(t, p.sounds, 1)
	assert.Equal(t, []byte{1, 2, 3}, p.sounds[0])
	require.Len(t, p.toasts, 1)
	assert.Equal(t, ports.Toast{
		Title: "Title",
		Body:  "Body",
		Icon:  "icon.png",
		URL:   "https://discord.com/channels/@me/C1/m1",
	}, p.toasts[0])
}

func TestHandle_BlockedSkipsPresentation(t *testing.T) {
	rec := preferences.Default()
	rec.DisplayCustomToaster = true

	ic, p := setup(rec)
	require.NoError(t, ic.Handle(context.Background(), call("C9", "G9"), nil))
	assert.Empty(t, p.toasts)
}

func TestHandle_PresenterError(t *testing.T) {
	rec := preferences.Default()
	rec.EnableWhitelisting = false
	rec.DisplayCustomToaster = true

	ic, p := setup(rec)
	p.err = errors.New("offline")

	err := ic.Handle(context.Background(), call("C1", "G1"), nil)
	assert.ErrorIs(t, err, p.err)
}

func TestLink(t *testing.T) {
	ic, _ := setup(preferences.Default())

	assert.Equal(t, "https://discord.com/channels/G1/C1/m1", ic.Link(&hook.Metadata{ChannelID: "C1", GuildID: "G1", MessageID: "m1"}))
	assert.Equal(t, "https://discord.com/channels/@me/C1", ic.Link(&hook.Metadata{ChannelID: "C1"}))
	assert.Empty(t, ic.Link(nil))
	assert.Empty(t, ic.Link(&hook.Metadata{GuildID: "G1"}))
}
