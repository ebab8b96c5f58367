package world

import (
	"time"

	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/scene"
)

// Surface is the rendering target a World draws into and receives input
// from. It is the renderer handle of a World.
type Surface interface {
	// Size returns the drawable size in pixels.
	Size() (width, height int)

	// SetSize resizes the drawable area.
	SetSize(width, height int)

	// Poll returns the input events received since the previous call.
	Poll() []input.Event

	// Draw renders one frame.
	Draw(f *Frame)

	Close() error
}

// SurfaceConfig is passed to an Opener when the World creates its surface.
type SurfaceConfig struct {
	Antialias  bool
	Background scene.Color
}

// Opener creates the surface for a World.
type Opener func(cfg SurfaceConfig) (Surface, error)

// Frame is everything a Surface needs to draw.
type Frame struct {
	Scene  *scene.Scene
	Camera *scene.Camera
	Panel  *panel.Panel // nil when the panel is off
	Number uint64
	Delta  time.Duration

	// Hovered and Dragged are set while drag controls are active.
	Hovered *scene.Object
	Dragged *scene.Object
}
