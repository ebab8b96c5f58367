// Package term renders a World as colored braille wireframes in a
// terminal. Dot coordinates double as the surface's pixel space: a
// surface of cols x rows cells is (2*cols) x (4*rows) pixels.
package term

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/scene"
	"github.com/san-kum/world3d/internal/world"
)

const (
	DefaultCols = 80
	DefaultRows = 24

	// HighlightColor marks hovered and dragged objects.
	HighlightColor scene.Color = 0xFF8800
)

// Surface is a headless world.Surface backed by a braille Canvas. Events
// are fed in with Push by the host, usually a Bubble Tea program.
type Surface struct {
	Config world.SurfaceConfig

	mu      sync.Mutex
	canvas  *Canvas
	pending []input.Event
	view    string
	frames  uint64
	closed  bool
}

// Open is a world.Opener for a DefaultCols x DefaultRows surface.
func Open(cfg world.SurfaceConfig) (world.Surface, error) {
	return New(cfg, DefaultCols, DefaultRows), nil
}

// OpenSize returns an Opener for a surface of cols x rows cells. When
// into is non-nil it receives the opened surface.
func OpenSize(cols, rows int, into **Surface) world.Opener {
	return func(cfg world.SurfaceConfig) (world.Surface, error) {
		s := New(cfg, cols, rows)
		if into != nil {
			*into = s
		}
		return s, nil
	}
}

func New(cfg world.SurfaceConfig, cols, rows int) *Surface {
	return &Surface{Config: cfg, canvas: NewCanvas(cols, rows)}
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Dots()
}

// SetSize resizes the canvas to hold width x height dots.
func (s *Surface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas = NewCanvas(width/2, height/4)
}

// Cells returns the canvas size in terminal cells.
func (s *Surface) Cells() (cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Width, s.canvas.Height
}

// Push queues events for the next Poll.
func (s *Surface) Push(evs ...input.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, evs...)
}

// Resize queues a resize to cols x rows cells.
func (s *Surface) Resize(cols, rows int) {
	s.Push(input.ResizeEvent(cols*2, rows*4))
}

func (s *Surface) Poll() []input.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	evs := s.pending
	s.pending = nil
	return evs
}

// Draw rasterizes the grid and every visible object.
func (s *Surface) Draw(f *world.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	c := s.canvas
	c.Clear()
	w, h := c.Dots()

	if g := f.Scene.Grid; g != nil {
		for _, line := range g.Lines() {
			drawEdge(c, f.Camera, line.Start, line.End, g.Color(line), w, h)
		}
	}
	for _, o := range f.Scene.Visible() {
		center := o.Bounds().Center()
		highlight := o == f.Hovered || o == f.Dragged
		for _, e := range o.Edges() {
			color := HighlightColor
			if !highlight {
				mid := e[0].Add(e[1]).Mul(0.5)
				color = scene.Shade(f.Scene.Lights, o.Color, mid, normalFrom(center, mid))
			}
			drawEdge(c, f.Camera, e[0], e[1], color, w, h)
		}
	}
	s.view = c.Render(f.Scene.Background)
	s.frames++
}

// View returns the most recent frame as styled text.
func (s *Surface) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Plain returns the most recent frame without styling.
func (s *Surface) Plain() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.String()
}

// Frames returns the number of frames drawn.
func (s *Surface) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// drawEdge projects a segment and draws it. Segments with an endpoint
// behind the camera or far off screen are skipped.
func drawEdge(c *Canvas, cam *scene.Camera, a, b mgl32.Vec3, color scene.Color, w, h int) {
	x0, y0, d0, ok0 := cam.Project(a, w, h)
	x1, y1, d1, ok1 := cam.Project(b, w, h)
	if !ok0 || !ok1 {
		return
	}
	limit := float32(4 * max(w, h))
	for _, v := range [4]float32{x0, y0, x1, y1} {
		if v < -limit || v > limit {
			return
		}
	}
	c.DrawLine(int(x0), int(y0), int(x1), int(y1), color, d0, d1)
}

func normalFrom(center, p mgl32.Vec3) mgl32.Vec3 {
	n := p.Sub(center)
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
