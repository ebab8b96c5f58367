// Package playground holds small example scenes that exercise a World.
package playground

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/world3d/internal/world"
)

var ErrUnknown = errors.New("playground: unknown playground")

// Playground is a named scene script. Options run before any caller
// options so callers can override them; Setup fills the scene and
// returns the per-frame callback, which may be nil.
type Playground struct {
	Name        string
	Description string
	Options     func() []world.Option
	Setup       func(w *world.World) (world.FrameFunc, error)
}

type Registry struct {
	playgrounds map[string]func() *Playground
}

func NewRegistry() *Registry {
	r := &Registry{playgrounds: make(map[string]func() *Playground)}
	r.Register("cube", Cube)
	r.Register("drag", Drag)
	r.Register("lights", Lights)
	r.Register("tweak", Tweak)
	r.Register("pendulum", Pendulum)
	r.Register("spring", Spring)
	return r
}

// Register adds or replaces a playground factory.
func (r *Registry) Register(name string, fn func() *Playground) {
	r.playgrounds[name] = fn
}

func (r *Registry) Get(name string) (*Playground, error) {
	fn, ok := r.playgrounds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return fn(), nil
}

// List returns the registered names in order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.playgrounds))
	for name := range r.playgrounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start builds a World for the named playground, runs its setup and
// registers its frame callback.
func (r *Registry) Start(name string, open world.Opener, opts ...world.Option) (*world.World, error) {
	pg, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return pg.Start(open, opts...)
}

func (pg *Playground) Start(open world.Opener, opts ...world.Option) (*world.World, error) {
	var all []world.Option
	if pg.Options != nil {
		all = append(all, pg.Options()...)
	}
	all = append(all, opts...)

	w, err := world.New(open, all...)
	if err != nil {
		return nil, err
	}
	if pg.Setup == nil {
		return w, nil
	}
	fn, err := pg.Setup(w)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("playground %s: %w", pg.Name, err)
	}
	w.OnFrame(fn)
	return w, nil
}
