// Package host speaks to the chat client over a websocket. It keeps the latest
// folder and channel snapshots the client pushed and forwards everything the
// plugin wants shown back to it.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/websocket"
	"net/http"
	"notifwhitelist/internal/app/adapters/hook"
	"notifwhitelist/internal/app/adapters/menu"
	"notifwhitelist/internal/app/adapters/metrics"
	"notifwhitelist/internal/app/ports"
	"notifwhitelist/pkg/logger"
	"slices"
	"sync"
	"time"
)

var (
	ErrNotConnected  = errors.New("host not connected")
	ErrUnknownFolder = errors.New("unknown folder")
	ErrSendBuffer    = errors.New("host send buffer full")
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 1 << 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Bridge struct {
	log    logger.Logger
	plugin ports.PluginPort

	mu      sync.RWMutex
	folders map[string][]string
	kinds   map[string]ports.ConversationKind
	client  *client
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func New(log logger.Logger) *Bridge {
	return &Bridge{
		log:     log,
		folders: make(map[string][]string),
		kinds:   make(map[string]ports.ConversationKind),
	}
}

// Attach sets the plugin notifications and menu requests are handed to.
func (b *Bridge) Attach(p ports.PluginPort) {
	b.plugin = p
}

// Handle upgrades the request and serves it until the host disconnects or a newer host replaces it.
func (b *Bridge) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Error("Failed to upgrade host connection", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 256), done: make(chan struct{})}

	b.mu.Lock()
	old := b.client
	b.client = c
	b.mu.Unlock()

	if old != nil {
		b.log.Info("Host connection replaced")
		old.close()
	}
	metrics.HostConnected.Set(1)
	b.log.Info("Host connected", "remote", r.RemoteAddr)

	go b.writePump(c)
	b.readPump(c)
}

func (b *Bridge) Connected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.client != nil
}

// Close drops the current host connection.
func (b *Bridge) Close() {
	b.mu.Lock()
	c := b.client
	b.client = nil
	b.mu.Unlock()

	if c != nil {
		c.close()
		metrics.HostConnected.Set(0)
	}
}

func (b *Bridge) GuildIDs(folderID string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids, ok := b.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFolder, folderID)
	}
	return slices.Clone(ids), nil
}

// Classify returns Other for channels the host never reported.
func (b *Bridge) Classify(channelID string) (ports.ConversationKind, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.kinds[channelID], nil
}

func (b *Bridge) PlaySound(audio []byte) error {
	return b.sendEnvelope(TypePlaySound, SoundMessage{Audio: audio})
}

func (b *Bridge) ShowToast(t ports.Toast) error {
	return b.sendEnvelope(TypeToast, ToastMessage(t))
}

// Deliver is the host's own notification dispatch; it matches hook.Func.
func (b *Bridge) Deliver(_ context.Context, c *hook.Call) error {
	return b.sendEnvelope(TypeDeliver, c)
}

func (b *Bridge) readPump(c *client) {
	defer b.drop(c)

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.log.Warn("Host connection lost", "error", err.Error())
			}
			return
		}

		b.handleMessage(msg)
	}
}

func (b *Bridge) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				b.log.Warn("Failed to write to host", "error", err.Error())
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (b *Bridge) drop(c *client) {
	c.close()

	b.mu.Lock()
	current := b.client == c
	if current {
		b.client = nil
	}
	b.mu.Unlock()

	if current {
		metrics.HostConnected.Set(0)
		b.log.Info("Host disconnected")
	}
}

func (b *Bridge) handleMessage(data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		b.sendError("invalid message format")
		return
	}
	b.log.Trace("Host message", "type", env.Type)

	switch env.Type {
	case TypeFolders:
		var m FoldersMessage
		if err := json.Unmarshal(env.Data, &m); err != nil {
			b.sendError("invalid folders payload")
			return
		}
		b.setFolders(m.Folders)

	case TypeChannels:
		var m ChannelsMessage
		if err := json.Unmarshal(env.Data, &m); err != nil {
			b.sendError("invalid channels payload")
			return
		}
		b.setChannels(m)

	case TypeNotification:
		var call hook.Call
		if err := json.Unmarshal(env.Data, &call); err != nil {
			b.sendError("invalid notification payload")
			return
		}
		b.handleNotification(&call)

	case TypeMenu:
		var m MenuMessage
		if err := json.Unmarshal(env.Data, &m); err != nil || !m.Surface.Valid() {
			b.sendError("invalid menu payload")
			return
		}
		items := []menu.Item{}
		if b.plugin != nil {
			items = append(items, b.plugin.MenuItems(m.Surface, m.Props)...)
		}
		_ = b.sendEnvelope(TypeMenuItems, MenuItemsMessage{ID: m.ID, Items: items})

	case TypeMenuAction:
		var m MenuActionMessage
		if err := json.Unmarshal(env.Data, &m); err != nil || !m.Surface.Valid() {
			b.sendError("invalid menu_action payload")
			return
		}
		res := ResultMessage{ID: m.ID}
		if b.plugin == nil {
			res.Error = "plugin not attached"
		} else if err := b.plugin.InvokeMenu(m.Surface, m.Props, m.ItemID); err != nil {
			res.Error = err.Error()
		}
		_ = b.sendEnvelope(TypeMenuAck, res)

	default:
		b.sendError(fmt.Sprintf("unknown message type %q", env.Type))
	}
}

func (b *Bridge) handleNotification(call *hook.Call) {
	res := ResultMessage{ID: call.ID}

	var err error
	if b.plugin != nil {
		err = b.plugin.Dispatch(context.Background(), call)
	} else {
		err = b.Deliver(context.Background(), call)
	}
	if err != nil {
		b.log.Warn("Notification dispatch failed", "error", err.Error())
		res.Error = err.Error()
	}

	_ = b.sendEnvelope(TypeResolve, res)
}

func (b *Bridge) setFolders(folders map[string][]string) {
	next := make(map[string][]string, len(folders))
	for id, guilds := range folders {
		next[id] = slices.Clone(guilds)
	}

	b.mu.Lock()
	b.folders = next
	b.mu.Unlock()
	b.log.Debug("Folder snapshot updated", "folders", len(next))
}

func (b *Bridge) setChannels(m ChannelsMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if m.Reset {
		b.kinds = make(map[string]ports.ConversationKind, len(m.Channels))
	}
	for id, k := range m.Channels {
		b.kinds[id] = kind(k)
	}
}

func (b *Bridge) sendError(msg string) {
	b.log.Warn("Rejected host message", "reason", msg)
	_ = b.sendEnvelope(TypeError, ErrorMessage{Message: msg})
}

func (b *Bridge) sendEnvelope(t MessageType, v any) error {
	env, err := NewEnvelope(t, v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t, err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s: %w", t, err)
	}

	b.mu.RLock()
	c := b.client
	b.mu.RUnlock()
	if c == nil {
		return ErrNotConnected
	}

	select {
	case <-c.done:
		return ErrNotConnected
	case c.send <- data:
		return nil
	default:
		return ErrSendBuffer
	}
}
