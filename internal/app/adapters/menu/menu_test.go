package menu

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRegistry_BuildAndInvoke(t *testing.T) {
	r := NewRegistry()
	toggled := map[string]bool{}

	r.Patch(ChannelContext, func(props Props) []Item {
		return []Item{
			NewSeparator(),
			NewToggle("whitelist", "Notifications Whitelisted", toggled[props.ChannelID], func() error {
				toggled[props.ChannelID] = !toggled[props.ChannelID]
				return nil
			}),
		}
	})

	props := Props{ChannelID: "100"}
	items := r.Build(ChannelContext, props)
	require.Len(t, items, 2)
	assert.Equal(t, Separator, items[0].Type)
	assert.False(t, items[1].Checked)

	require.NoError(t, r.Invoke(ChannelContext, props, "whitelist"))
	assert.True(t, r.Build(ChannelContext, props)[1].Checked)

	assert.Empty(t, r.Build(GuildContext, props))
	assert.ErrorIs(t, r.Invoke(ChannelContext, props, "blacklist"), ErrItemNotFound)
	assert.ErrorIs(t, r.Invoke(ChannelContext, props, ""), ErrItemNotFound, "separators are not invokable")
}

func TestRegistry_Unpatch(t *testing.T) {
	r := NewRegistry()
	remove := r.Patch(UserContext, func(Props) []Item { return []Item{NewSeparator()} })
	r.Patch(UserContext, func(Props) []Item { return []Item{NewToggle("x", "X", false, nil)} })

	remove()
	remove()

	items := r.Build(UserContext, Props{})
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0].ID)
}

func TestSurface_Valid(t *testing.T) {
	for _, s := range []Surface{GuildContext, ChannelContext, UserContext, GDMContext} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Surface("message-context").Valid())
}
