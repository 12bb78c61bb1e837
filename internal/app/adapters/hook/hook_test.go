package hook

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type recorder struct {
	trail []string
}

func (r *recorder) base(_ context.Context, c *Call) error {
	r.trail = append(r.trail, "base:"+c.Title)
	return nil
}

func (r *recorder) patch(name string) Interceptor {
	return func(ctx context.Context, c *Call, orig Func) error {
		r.trail = append(r.trail, name)
		return orig(ctx, c)
	}
}

func TestSurface_DispatchWithoutPatches(t *testing.T) {
	r := &recorder{}
	s := NewSurface(r.base)

	require.NoError(t, s.Dispatch(context.Background(), &Call{Title: "hi"}))
	assert.Equal(t, []string{"base:hi"}, r.trail)
}

func TestSurface_NewestPatchRunsFirst(t *testing.T) {
	r := &recorder{}
	s := NewSurface(r.base)
	s.Instead("a", r.patch("first"))
	s.Instead("b", r.patch("second"))

	require.NoError(t, s.Dispatch(context.Background(), &Call{Title: "hi"}))
	assert.Equal(t, []string{"second", "first", "base:hi"}, r.trail)
}

func TestSurface_InterceptorCanDrop(t *testing.T) {
	r := &recorder{}
	s := NewSurface(r.base)
	s.Instead("filter", func(context.Context, *Call, Func) error { return nil })

	require.NoError(t, s.Dispatch(context.Background(), &Call{Title: "hi"}))
	assert.Empty(t, r.trail)
}

func TestSurface_Unpatch(t *testing.T) {
	r := &recorder{}
	s := NewSurface(r.base)
	undo := s.Instead("a", r.patch("first"))
	s.Instead("a", r.patch("second"))

	undo()
	undo()
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Dispatch(context.Background(), &Call{Title: "x"}))
	assert.Equal(t, []string{"second", "base:x"}, r.trail)
}

func TestSurface_UnpatchAll(t *testing.T) {
	r := &recorder{}
	s := NewSurface(r.base)
	s.Instead("plugin", r.patch("p1"))
	s.Instead("other", r.patch("o1"))
	s.Instead("plugin", r.patch("p2"))

	s.UnpatchAll("plugin")
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Dispatch(context.Background(), &Call{Title: "x"}))
	assert.Equal(t, []string{"o1", "base:x"}, r.trail)
}
