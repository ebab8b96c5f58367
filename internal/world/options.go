package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/scene"
	"go.uber.org/zap"
)

const DefaultBackground scene.Color = 0xECECEC

// GridOptions configures the ground grid.
type GridOptions struct {
	Enabled     bool
	Size        float32
	Divisions   int
	CenterColor scene.Color
	LineColor   scene.Color
}

// PanelOptions turns on the parameter panel. Values seeds the bag the panel
// tracks; Setup receives the panel and that same bag to add controls.
type PanelOptions struct {
	Values *panel.Values
	Setup  func(p *panel.Panel, v *panel.Values) error

	// Store and Preset, when set, load remembered values at construction
	// and save them on Close.
	Store  *panel.Store
	Preset string
}

// Options holds every construction-time setting of a World.
type Options struct {
	Antialias      bool
	Lights         LightSet
	CameraPosition mgl32.Vec3
	CameraLookAt   mgl32.Vec3
	FOV            float32
	Background     scene.Color
	Grid           GridOptions
	Orbit          bool
	Drag           bool
	Panel          *PanelOptions // nil keeps the panel off

	// FrameRate paces Run; zero or less leaves pacing to the surface.
	FrameRate int

	Logger *zap.Logger
	Clock  func() time.Time
}

func defaultGrid() GridOptions {
	return GridOptions{
		Enabled:     true,
		Size:        scene.DefaultGridSize,
		Divisions:   scene.DefaultGridDivisions,
		CenterColor: scene.DefaultGridCenterColor,
		LineColor:   scene.DefaultGridLineColor,
	}
}

// DefaultOptions returns the settings used for every option not passed
// to New.
func DefaultOptions() Options {
	return Options{
		Antialias:      true,
		Lights:         DefaultLights(),
		CameraPosition: mgl32.Vec3{0, 5, 5},
		CameraLookAt:   mgl32.Vec3{0, 0, 0},
		FOV:            scene.DefaultFOV,
		Background:     DefaultBackground,
		Grid:           defaultGrid(),
		Orbit:          true,
		Drag:           false,
		FrameRate:      60,
		Logger:         zap.NewNop(),
		Clock:          time.Now,
	}
}

// Option overrides one setting.
type Option func(*Options)

func WithAntialias(on bool) Option {
	return func(o *Options) { o.Antialias = on }
}

func WithLights(ls LightSet) Option {
	return func(o *Options) { o.Lights = ls }
}

// WithCamera sets the initial camera position and look-at target.
func WithCamera(position, lookAt mgl32.Vec3) Option {
	return func(o *Options) {
		o.CameraPosition = position
		o.CameraLookAt = lookAt
	}
}

func WithCameraPosition(position mgl32.Vec3) Option {
	return func(o *Options) { o.CameraPosition = position }
}

func WithCameraLookAt(lookAt mgl32.Vec3) Option {
	return func(o *Options) { o.CameraLookAt = lookAt }
}

// WithFOV sets the vertical field of view in degrees.
func WithFOV(fov float32) Option {
	return func(o *Options) { o.FOV = fov }
}

func WithBackground(c scene.Color) Option {
	return func(o *Options) { o.Background = c }
}

// WithGrid enables the grid with explicit dimensions.
func WithGrid(size float32, divisions int) Option {
	return func(o *Options) {
		o.Grid.Enabled = true
		o.Grid.Size = size
		o.Grid.Divisions = divisions
	}
}

// WithGridColors sets the colors of the center lines and the other lines.
func WithGridColors(center, line scene.Color) Option {
	return func(o *Options) {
		o.Grid.CenterColor = center
		o.Grid.LineColor = line
	}
}

func WithoutGrid() Option {
	return func(o *Options) { o.Grid.Enabled = false }
}

func WithOrbit(on bool) Option {
	return func(o *Options) { o.Orbit = on }
}

// WithDrag enables drag controls. Combined with orbit controls, orbiting
// is paused while an object is being dragged.
func WithDrag(on bool) Option {
	return func(o *Options) { o.Drag = on }
}

// WithPanel turns on the parameter panel.
func WithPanel(p PanelOptions) Option {
	return func(o *Options) { o.Panel = &p }
}

// WithFrameRate sets the frames per second Run aims for.
func WithFrameRate(fps int) Option {
	return func(o *Options) { o.FrameRate = fps }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock replaces time.Now for frame deltas.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Clock = now
		}
	}
}

func (o Options) validate() error {
	if o.Grid.Enabled && (o.Grid.Size <= 0 || o.Grid.Divisions <= 0) {
		return ErrInvalidGrid
	}
	if o.CameraPosition.ApproxEqual(o.CameraLookAt) {
		return ErrInvalidCamera
	}
	if o.FOV <= 0 || o.FOV >= 180 {
		return ErrInvalidCamera
	}
	return nil
}
