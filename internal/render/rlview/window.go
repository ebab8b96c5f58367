// Package rlview hosts a World in a raylib window.
package rlview

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/panel"
	"github.com/san-kum/world3d/internal/scene"
	"github.com/san-kum/world3d/internal/world"
)

var (
	ColPanel     = rl.NewColor(10, 10, 10, 200)
	ColText      = rl.NewColor(200, 200, 200, 255)
	ColTextDim   = rl.NewColor(120, 120, 120, 255)
	ColSelect    = rl.NewColor(255, 255, 255, 255)
	ColHighlight = rl.NewColor(255, 136, 0, 255)
)

// Window is a world.Surface drawing into the raylib window.
type Window struct {
	Title string

	cfg    world.SurfaceConfig
	lastX  float32
	lastY  float32
	closed bool
}

// Open returns an Opener that creates a resizable window of the given
// size running at fps frames per second.
func Open(title string, width, height, fps int) world.Opener {
	return func(cfg world.SurfaceConfig) (world.Surface, error) {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("rlview: invalid window size %dx%d", width, height)
		}
		flags := uint32(rl.FlagWindowResizable)
		if cfg.Antialias {
			flags |= rl.FlagMsaa4xHint
		}
		rl.SetConfigFlags(flags)
		rl.InitWindow(int32(width), int32(height), title)
		rl.SetTargetFPS(int32(fps))
		rl.SetExitKey(0)
		if !rl.IsWindowReady() {
			return nil, fmt.Errorf("rlview: window %q did not open", title)
		}
		return &Window{Title: title, cfg: cfg}, nil
	}
}

func (w *Window) Size() (int, int) {
	return int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
}

func (w *Window) SetSize(width, height int) {
	cw, ch := w.Size()
	if cw != width || ch != height {
		rl.SetWindowSize(width, height)
	}
}

// Poll translates raylib input state into events.
func (w *Window) Poll() []input.Event {
	var evs []input.Event
	if rl.WindowShouldClose() {
		return append(evs, input.Event{Kind: input.Close})
	}
	if rl.IsWindowResized() {
		width, height := w.Size()
		evs = append(evs, input.ResizeEvent(width, height))
	}

	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	pos := rl.GetMousePosition()
	for _, b := range buttons {
		if rl.IsMouseButtonPressed(b.rl) {
			ev := input.PointerEvent(input.PointerDown, pos.X, pos.Y, b.button)
			ev.Shift = shift
			evs = append(evs, ev)
		}
	}
	if pos.X != w.lastX || pos.Y != w.lastY {
		evs = append(evs, input.PointerEvent(input.PointerMove, pos.X, pos.Y, input.ButtonNone))
		w.lastX, w.lastY = pos.X, pos.Y
	}
	for _, b := range buttons {
		if rl.IsMouseButtonReleased(b.rl) {
			evs = append(evs, input.PointerEvent(input.PointerUp, pos.X, pos.Y, b.button))
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		ev := input.PointerEvent(input.Wheel, pos.X, pos.Y, input.ButtonNone)
		ev.Wheel = wheel
		evs = append(evs, ev)
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if name := KeyName(key, shift); name != "" {
			evs = append(evs, input.KeyEvent(name))
		}
	}
	return evs
}

var buttons = []struct {
	rl     rl.MouseButton
	button input.Button
}{
	{rl.MouseLeftButton, input.ButtonLeft},
	{rl.MouseRightButton, input.ButtonRight},
	{rl.MouseMiddleButton, input.ButtonMiddle},
}

func (w *Window) Draw(f *world.Frame) {
	rl.BeginDrawing()
	rl.ClearBackground(Color(f.Scene.Background))

	rl.BeginMode3D(Camera(f.Camera))
	if g := f.Scene.Grid; g != nil {
		for _, line := range g.Lines() {
			rl.DrawLine3D(vec(line.Start), vec(line.End), Color(g.Color(line)))
		}
	}
	for _, o := range f.Scene.Visible() {
		highlight := o == f.Hovered || o == f.Dragged
		drawObject(o, f, highlight)
	}
	rl.EndMode3D()

	if f.Panel != nil && f.Panel.Visible {
		drawPanel(f.Panel)
	}
	rl.DrawText(fmt.Sprintf("%d FPS  frame %d", rl.GetFPS(), f.Number), 10, int32(rl.GetScreenHeight())-24, 14, ColTextDim)
	rl.EndDrawing()
}

func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	rl.CloseWindow()
	return nil
}

func drawObject(o *scene.Object, f *world.Frame, highlight bool) {
	center := o.Position
	toCam := f.Camera.Position.Sub(center)
	if toCam.Len() > 0 {
		toCam = toCam.Normalize()
	}
	col := Color(scene.Shade(f.Scene.Lights, o.Color, center, toCam))
	if highlight {
		col = ColHighlight
	}

	rl.PushMatrix()
	rl.Translatef(o.Position.X(), o.Position.Y(), o.Position.Z())
	rl.Rotatef(mgl32.RadToDeg(o.Rotation.X()), 1, 0, 0)
	rl.Rotatef(mgl32.RadToDeg(o.Rotation.Y()), 0, 1, 0)
	rl.Rotatef(mgl32.RadToDeg(o.Rotation.Z()), 0, 0, 1)
	rl.Scalef(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	origin := rl.NewVector3(0, 0, 0)
	switch o.Shape {
	case scene.ShapeBox:
		size := vec(o.Size)
		rl.DrawCubeV(origin, size, col)
		rl.DrawCubeWiresV(origin, size, ColSelect)
	case scene.ShapeSphere:
		rl.DrawSphere(origin, o.Size.X(), col)
	case scene.ShapePlane:
		rl.DrawPlane(origin, rl.NewVector2(o.Size.X(), o.Size.Z()), col)
	}
	rl.PopMatrix()
}

func drawPanel(p *panel.Panel) {
	rows := p.Rows()
	x, y := int32(rl.GetScreenWidth())-260, int32(10)
	rl.DrawRectangle(x-10, y-5, 260, int32(30+22*len(rows)), ColPanel)
	rl.DrawText(p.Title, x, y, 18, ColSelect)
	y += 26
	for _, r := range rows {
		col := ColText
		prefix := "  "
		if r.Selected {
			col, prefix = ColSelect, "> "
		}
		rl.DrawText(prefix+r.Label+"  "+r.Value, x, y, 16, col)
		if r.Kind == panel.Number {
			rl.DrawRectangle(x+170, y+4, int32(70*r.Fraction), 8, col)
		}
		y += 22
	}
}

// Camera converts a scene camera into a raylib camera.
func Camera(c *scene.Camera) rl.Camera3D {
	return rl.NewCamera3D(vec(c.Position), vec(c.Target), vec(c.ViewUp()), c.FOV, rl.CameraPerspective)
}

// Color converts an 0xRRGGBB color to an opaque raylib color.
func Color(c scene.Color) rl.Color {
	r, g, b := c.RGB()
	return rl.NewColor(r, g, b, 255)
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// KeyName maps a raylib key code to the key names used by the panel and
// orbit controls. Unmapped keys return "".
func KeyName(key int32, shift bool) string {
	switch {
	case key >= rl.KeyA && key <= rl.KeyZ:
		return string(rune('a' + key - rl.KeyA))
	case key >= rl.KeyZero && key <= rl.KeyNine:
		return string(rune('0' + key - rl.KeyZero))
	}
	switch key {
	case rl.KeyLeft:
		return "left"
	case rl.KeyRight:
		return "right"
	case rl.KeyUp:
		return "up"
	case rl.KeyDown:
		return "down"
	case rl.KeySpace:
		return "space"
	case rl.KeyEnter:
		return "enter"
	case rl.KeyEscape:
		return "esc"
	case rl.KeyTab:
		if shift {
			return "shift+tab"
		}
		return "tab"
	case rl.KeyLeftBracket:
		if shift {
			return "{"
		}
		return "["
	case rl.KeyRightBracket:
		if shift {
			return "}"
		}
		return "]"
	case rl.KeyEqual:
		if shift {
			return "+"
		}
		return "="
	case rl.KeyMinus:
		if shift {
			return "_"
		}
		return "-"
	case rl.KeyKpAdd:
		return "+"
	case rl.KeyKpSubtract:
		return "-"
	}
	return ""
}
