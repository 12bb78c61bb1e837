// Package hook intercepts the host's notification dispatch. Patches wrap the
// underlying delivery and may delegate to it, replace it, or drop the call;
// each registration returns a token that reverses it.
package hook

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

// Metadata routes a notification back to its message. Any field may be empty.
type Metadata struct {
	ChannelID string `json:"channel_id"`
	GuildID   string `json:"guild_id"`
	MessageID string `json:"message_id"`
}

// Call is one showNotification invocation. Meta is nil when the host sent none.
type Call struct {
	ID    string    `json:"id"`
	Icon  string    `json:"icon"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Meta  *Metadata `json:"metadata"`
}

// Func delivers a notification.
type Func func(ctx context.Context, c *Call) error

// Interceptor runs instead of the delivery; orig continues down the chain.
type Interceptor func(ctx context.Context, c *Call, orig Func) error

// Unpatch removes the patch it was returned for. Calling it again does nothing.
type Unpatch func()

type patch struct {
	id    uuid.UUID
	owner string
	fn    Interceptor
}

type Surface struct {
	mu      sync.RWMutex
	base    Func
	patches []patch
}

func NewSurface(base Func) *Surface {
	return &Surface{base: base}
}

// Instead registers fn on top of the existing patches.
func (s *Surface) Instead(owner string, fn Interceptor) Unpatch {
	id := uuid.New()

	s.mu.Lock()
	s.patches = append(s.patches, patch{id: id, owner: owner, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(func(p patch) bool { return p.id == id }) })
	}
}

func (s *Surface) UnpatchAll(owner string) {
	s.remove(func(p patch) bool { return p.owner == owner })
}

func (s *Surface) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patches)
}

// Dispatch runs the call through the patches, newest first, ending at the base delivery.
func (s *Surface) Dispatch(ctx context.Context, c *Call) error {
	s.mu.RLock()
	chain := make([]patch, len(s.patches))
	copy(chain, s.patches)
	s.mu.RUnlock()

	next := s.base
	for _, p := range chain {
		next = wrap(p.fn, next)
	}
	return next(ctx, c)
}

func wrap(fn Interceptor, orig Func) Func {
	return func(ctx context.Context, c *Call) error {
		return fn(ctx, c, orig)
	}
}

func (s *Surface) remove(match func(p patch) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.patches[:0]
	for _, p := range s.patches {
		if !match(p) {
			kept = append(kept, p)
		}
	}
	clear(s.patches[len(kept):])
	s.patches = kept
}
