package world

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/world3d/internal/controls"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/scene"
	"go.uber.org/zap"
)

// FrameFunc is the per-frame callback. A non-nil error stops the loop.
type FrameFunc func(w *World) error

// World owns one scene, camera, surface and set of controls.
type World struct {
	Options Options

	Scene    *scene.Scene
	Camera   *scene.Camera
	Renderer Surface
	Lights   []scene.Light
	Grid     *scene.Grid     // nil when the grid is off
	Orbit    *controls.Orbit // nil when orbit controls are off
	Drag     *controls.Drag  // nil when drag controls are off
	Panel    *panel.Panel    // nil when the panel is off

	// Draggable lists the objects drag controls may pick. It is read on
	// every pointer event; AddDraggable also adds the objects to the scene.
	Draggable []*scene.Object

	FrameCount uint64
	Delta      time.Duration

	logger  *zap.Logger
	onFrame FrameFunc
	onKey   func(key string) bool
	last    time.Time
	orbitOn bool
	stopped bool
	closed  bool
}

// New builds a World from the option defaults overridden by opts, and
// opens its surface through open.
func New(open Opener, opts ...Option) (*World, error) {
	if open == nil {
		return nil, ErrNoOpener
	}
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	w := &World{Options: o, logger: o.Logger}
	w.initScene()
	w.initCamera()
	if err := w.initRenderer(open); err != nil {
		return nil, err
	}
	w.initLights()
	w.initGrid()
	w.initOrbit()
	w.initDrag()
	if err := w.initPanel(); err != nil {
		w.Renderer.Close()
		return nil, err
	}
	return w, nil
}

func (w *World) initScene() {
	w.Scene = scene.New(w.Options.Background)
}

func (w *World) initCamera() {
	w.Camera = scene.NewCamera(w.Options.FOV, 1, scene.DefaultNear, scene.DefaultFar)
	w.Camera.Position = w.Options.CameraPosition
	w.Camera.LookAt(w.Options.CameraLookAt)
	w.logger.Debug("camera ready",
		zap.Float32s("position", w.Options.CameraPosition[:]),
		zap.Float32s("look_at", w.Options.CameraLookAt[:]))
}

func (w *World) initRenderer(open Opener) error {
	s, err := open(SurfaceConfig{Antialias: w.Options.Antialias, Background: w.Options.Background})
	if err != nil {
		return fmt.Errorf("world: open surface: %w", err)
	}
	if s == nil {
		return errors.New("world: opener returned no surface")
	}
	w.Renderer = s
	width, height := s.Size()
	w.syncAspect(width, height)
	w.logger.Debug("surface open",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("antialias", w.Options.Antialias))
	return nil
}

func (w *World) initLights() {
	w.Lights = w.Options.Lights.Build()
	w.Scene.AddLight(w.Lights...)
	w.logger.Debug("lights", zap.Stringer("mode", w.Options.Lights.Mode), zap.Int("count", len(w.Lights)))
}

func (w *World) initGrid() {
	if !w.Options.Grid.Enabled {
		return
	}
	w.Grid = scene.NewGrid(w.Options.Grid.Size, w.Options.Grid.Divisions)
	w.Grid.CenterColor = w.Options.Grid.CenterColor
	w.Grid.LineColor = w.Options.Grid.LineColor
	w.Scene.Grid = w.Grid
}

func (w *World) initOrbit() {
	if !w.Options.Orbit {
		return
	}
	w.Orbit = controls.NewOrbit(w.Camera)
	w.Orbit.Target = w.Options.CameraLookAt
	w.orbitOn = true
}

func (w *World) initDrag() {
	if !w.Options.Drag {
		return
	}
	if w.Orbit != nil {
		w.logger.Warn("orbit and drag controls both enabled; orbit pauses while dragging")
	}
	w.Drag = controls.NewDrag(w.Draggable)
}

func (w *World) initPanel() error {
	po := w.Options.Panel
	if po == nil {
		return nil
	}
	values := po.Values
	if values == nil {
		values = panel.NewValues()
		po.Values = values
	}
	w.Panel = panel.New(values)
	if po.Store != nil {
		if err := w.Panel.Remember(po.Store, po.Preset); err != nil {
			return fmt.Errorf("world: remember panel values: %w", err)
		}
	}
	if po.Setup != nil {
		if err := po.Setup(w.Panel, values); err != nil {
			return fmt.Errorf("world: panel setup: %w", err)
		}
	}
	w.logger.Debug("panel ready", zap.Int("values", values.Len()))
	return nil
}

// Add places objects in the scene.
func (w *World) Add(objs ...*scene.Object) {
	w.Scene.Add(objs...)
}

// AddDraggable places objects in the scene and makes them pickable by
// drag controls.
func (w *World) AddDraggable(objs ...*scene.Object) {
	w.Scene.Add(objs...)
	for _, o := range objs {
		if o != nil {
			w.Draggable = append(w.Draggable, o)
		}
	}
	if w.Drag != nil {
		w.Drag.Objects = w.Draggable
	}
}

// Logger returns the logger the World was built with.
func (w *World) Logger() *zap.Logger { return w.logger }

// Closed reports whether Close has been called.
func (w *World) Closed() bool { return w.closed }

// Stopped reports whether the surface asked to close.
func (w *World) Stopped() bool { return w.stopped || w.closed }

// Close stops the loop, drops the frame and key hooks, saves remembered
// panel values and closes the surface. Calling Close again is a no-op.
func (w *World) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.onFrame = nil
	w.onKey = nil

	var errs []error
	if w.Panel != nil {
		if err := w.Panel.Save(); err != nil {
			errs = append(errs, fmt.Errorf("world: save panel values: %w", err))
		}
	}
	if err := w.Renderer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("world: close surface: %w", err))
	}
	w.logger.Debug("closed", zap.Uint64("frames", w.FrameCount))
	return errors.Join(errs...)
}
