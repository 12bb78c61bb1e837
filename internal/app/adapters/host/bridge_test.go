package host

import (
	"context"
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"notifwhitelist/internal/app/adapters/hook"
	"notifwhitelist/internal/app/adapters/menu"
	"notifwhitelist/internal/app/ports"
	"notifwhitelist/pkg/logger"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakePlugin delivers notifications for channel "C1" only.
type fakePlugin struct {
	bridge *Bridge

	mu      sync.Mutex
	invoked []string
}

func (p *fakePlugin) Dispatch(ctx context.Context, call *hook.Call) error {
	if call.Meta != nil && call.Meta.ChannelID == "C1" {
		return p.bridge.Deliver(ctx, call)
	}
	return nil
}

func (p *fakePlugin) MenuItems(surface menu.Surface, props menu.Props) []menu.Item {
	return []menu.Item{menu.NewSeparator(), menu.NewToggle("channelWhitelist", "Notifications Whitelisted", props.ChannelID == "C1", nil)}
}

func (p *fakePlugin) InvokeMenu(surface menu.Surface, props menu.Props, itemID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.invoked = append(p.invoked, itemID)
	return nil
}

func setup(t *testing.T) (*Bridge, *fakePlugin, *websocket.Conn) {
	t.Helper()

	b := New(logger.Nop())
	p := &fakePlugin{bridge: b}
	b.Attach(p)

	srv := httptest.NewServer(httpHandler(b))
	t.Cleanup(srv.Close)

	return b, p, dial(t, srv.URL)
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ MessageType, v any) {
	t.Helper()

	env, err := NewEnvelope(typ, v)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(env))
}

func read(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestBridge_Notification(t *testing.T) {
	_, _, conn := setup(t)

	send(t, conn, TypeNotification, hook.Call{ID: "n1", Title: "hi", Meta: &hook.Metadata{ChannelID: "C1"}})

	env := read(t, conn)
	require.Equal(t, TypeDeliver, env.Type)
	var delivered hook.Call
	require.NoError(t, json.Unmarshal(env.Data, &delivered))
	assert.Equal(t, "n1", delivered.ID)

	env = read(t, conn)
	require.Equal(t, TypeResolve, env.Type)
	var res ResultMessage
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, ResultMessage{ID: "n1"}, res)

	send(t, conn, TypeNotification, hook.Call{ID: "n2", Meta: &hook.Metadata{ChannelID: "C2"}})
	env = read(t, conn)
	assert.Equal(t, TypeResolve, env.Type, "blocked notifications resolve without delivery")
}

func TestBridge_Snapshots(t *testing.T) {
	b, _, conn := setup(t)

	send(t, conn, TypeFolders, FoldersMessage{Folders: map[string][]string{"F1": {"G1", "G2"}}})
	send(t, conn, TypeChannels, ChannelsMessage{Channels: map[string]string{"D1": KindDM, "D2": KindGroupDM, "C1": KindGuild}})
	send(t, conn, TypeMenu, MenuMessage{ID: "sync", Surface: menu.ChannelContext})
	read(t, conn)

	guilds, err := b.GuildIDs("F1")
	require.NoError(t, err)
	assert.Equal(t, []string{"G1", "G2"}, guilds)

	_, err = b.GuildIDs("F9")
	assert.ErrorIs(t, err, ErrUnknownFolder)

	for id, want := range map[string]ports.ConversationKind{
		"D1": ports.ConversationDirect,
		"D2": ports.ConversationGroup,
		"C1": ports.ConversationOther,
		"??": ports.ConversationOther,
	} {
		got, err := b.Classify(id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}

	send(t, conn, TypeFolders, FoldersMessage{Folders: map[string][]string{}})
	send(t, conn, TypeChannels, ChannelsMessage{Reset: true})
	send(t, conn, TypeMenu, MenuMessage{ID: "sync", Surface: menu.ChannelContext})
	read(t, conn)

	_, err = b.GuildIDs("F1")
	assert.ErrorIs(t, err, ErrUnknownFolder)
	got, _ := b.Classify("D1")
	assert.Equal(t, ports.ConversationOther, got)
}

func TestBridge_Menu(t *testing.T) {
	_, p, conn := setup(t)

	send(t, conn, TypeMenu, MenuMessage{ID: "m1", Surface: menu.ChannelContext, Props: menu.Props{ChannelID: "C1"}})
	env := read(t, conn)
	require.Equal(t, TypeMenuItems, env.Type)

	var items MenuItemsMessage
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Equal(t, "m1", items.ID)
	require.Len(t, items.Items, 2)
	assert.True(t, items.Items[1].Checked)

	send(t, conn, TypeMenuAction, MenuActionMessage{ID: "a1", Surface: menu.ChannelContext, ItemID: "channelWhitelist"})
	env = read(t, conn)
	require.Equal(t, TypeMenuAck, env.Type)
	p.mu.Lock()
	assert.Equal(t, []string{"channelWhitelist"}, p.invoked)
	p.mu.Unlock()
}

func TestBridge_RejectsBadMessages(t *testing.T) {
	_, _, conn := setup(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	assert.Equal(t, TypeError, read(t, conn).Type)

	send(t, conn, "bogus", struct{}{})
	assert.Equal(t, TypeError, read(t, conn).Type)

	send(t, conn, TypeMenu, MenuMessage{Surface: "message-context"})
	assert.Equal(t, TypeError, read(t, conn).Type)
}

func TestBridge_Presenter(t *testing.T) {
	b, _, conn := setup(t)

	// a round trip guarantees the connection is registered
	send(t, conn, TypeMenu, MenuMessage{ID: "sync", Surface: menu.UserContext})
	read(t, conn)

	require.NoError(t, b.ShowToast(ports.Toast{Title: "t", URL: "https://discord.com/channels/@me/1"}))
	env := read(t, conn)
	require.Equal(t, TypeToast, env.Type)
	var toast ports.Toast
	require.NoError(t, json.Unmarshal(env.Data, &toast))
	assert.Equal(t, "t", toast.Title)

	require.NoError(t, b.PlaySound([]byte{7}))
	env = read(t, conn)
	require.Equal(t, TypePlaySound, env.Type)
	var sound SoundMessage
	require.NoError(t, json.Unmarshal(env.Data, &sound))
	assert.Equal(t, []byte{7}, sound.Audio)
}

func TestBridge_NotConnected(t *testing.T) {
	b := New(logger.Nop())

	assert.False(t, b.Connected())
	assert.ErrorIs(t, b.ShowToast(ports.Toast{}), ErrNotConnected)
	assert.ErrorIs(t, b.Deliver(context.Background(), &hook.Call{}), ErrNotConnected)
}

func TestBridge_NewConnectionReplacesOld(t *testing.T) {
	b := New(logger.Nop())
	srv := httptest.NewServer(httpHandler(b))
	t.Cleanup(srv.Close)

	first := dial(t, srv.URL)
	send(t, first, TypeMenu, MenuMessage{ID: "sync", Surface: menu.UserContext})
	read(t, first)

	second := dial(t, srv.URL)
	send(t, second, TypeMenu, MenuMessage{ID: "sync", Surface: menu.UserContext})
	read(t, second)

	require.NoError(t, first.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := first.ReadMessage()
	assert.Error(t, err)
	assert.True(t, b.Connected())
}

func httpHandler(b *Bridge) http.HandlerFunc {
	return b.Handle
}
