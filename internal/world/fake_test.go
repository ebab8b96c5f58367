package world_test

import (
	"errors"

	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/world"
)

// fakeSurface records every call a World makes on its renderer.
type fakeSurface struct {
	cfg     world.SurfaceConfig
	width   int
	height  int
	pending []input.Event
	calls   []string
	sizes   [][2]int
	frames  []*world.Frame
	closed  int
}

func newFakeSurface(width, height int) *fakeSurface {
	return &fakeSurface{width: width, height: height}
}

func (s *fakeSurface) opener() world.Opener {
	return func(cfg world.SurfaceConfig) (world.Surface, error) {
		s.cfg = cfg
		return s, nil
	}
}

func (s *fakeSurface) push(evs ...input.Event) {
	s.pending = append(s.pending, evs...)
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) SetSize(width, height int) {
	s.calls = append(s.calls, "resize")
	s.sizes = append(s.sizes, [2]int{width, height})
	s.width, s.height = width, height
}

func (s *fakeSurface) Poll() []input.Event {
	s.calls = append(s.calls, "poll")
	evs := s.pending
	s.pending = nil
	return evs
}

func (s *fakeSurface) Draw(f *world.Frame) {
	s.calls = append(s.calls, "draw")
	cp := *f
	s.frames = append(s.frames, &cp)
}

func (s *fakeSurface) Close() error {
	s.closed++
	return nil
}

var errBrokenOpener = errors.New("no display")

func brokenOpener(world.SurfaceConfig) (world.Surface, error) {
	return nil, errBrokenOpener
}
