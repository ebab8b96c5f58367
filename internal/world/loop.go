package world

import (
	"context"
	"time"

	"github.com/san-kum/world3d/internal/input"
	"go.uber.org/zap"
)

// OnFrame registers the per-frame callback, replacing any previous one.
// Hosts that drive Frame themselves use it instead of Animate.
func (w *World) OnFrame(fn FrameFunc) {
	if w.closed {
		return
	}
	w.onFrame = fn
}

// OnKey registers a key hook that sees keys the panel did not consume.
// Returning true stops the key from reaching orbit controls.
func (w *World) OnKey(fn func(key string) bool) {
	if w.closed {
		return
	}
	w.onKey = fn
}

// Frame runs one cycle: dispatch pending surface events, invoke the
// per-frame callback once, update orbit controls and draw once.
func (w *World) Frame() error {
	if w.closed {
		return ErrClosed
	}
	now := w.Options.Clock()
	if !w.last.IsZero() {
		w.Delta = now.Sub(w.last)
	}
	w.last = now

	for _, ev := range w.Renderer.Poll() {
		w.dispatch(ev)
	}
	if w.stopped {
		return nil
	}

	w.FrameCount++
	if w.onFrame != nil {
		if err := w.onFrame(w); err != nil {
			return &FrameError{Frame: w.FrameCount, Wrapped: err}
		}
	}
	if w.Orbit != nil {
		w.Orbit.Update(w.Camera)
	}
	w.draw()
	return nil
}

// Animate registers fn as the per-frame callback and runs the loop.
func (w *World) Animate(ctx context.Context, fn FrameFunc) error {
	w.OnFrame(fn)
	return w.Run(ctx)
}

// Run calls Frame until the surface closes, ctx is canceled or a frame
// fails. With a positive frame rate option frames are paced by a ticker;
// otherwise the surface paces them.
func (w *World) Run(ctx context.Context) error {
	if w.closed {
		return ErrClosed
	}
	var tick <-chan time.Time
	if fps := w.Options.FrameRate; fps > 0 {
		t := time.NewTicker(time.Second / time.Duration(fps))
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := w.Frame(); err != nil {
			return err
		}
		if w.stopped {
			w.logger.Debug("surface closed", zap.Uint64("frames", w.FrameCount))
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}

// Render draws the current state once without invoking the per-frame
// callback, then calls after when it is non-nil.
func (w *World) Render(after func(w *World)) error {
	if w.closed {
		return ErrClosed
	}
	w.draw()
	if after != nil {
		after(w)
	}
	return nil
}

func (w *World) draw() {
	f := &Frame{
		Scene:  w.Scene,
		Camera: w.Camera,
		Panel:  w.Panel,
		Number: w.FrameCount,
		Delta:  w.Delta,
	}
	if w.Drag != nil {
		f.Hovered = w.Drag.Hovered()
		f.Dragged = w.Drag.Active()
	}
	w.Renderer.Draw(f)
}

func (w *World) dispatch(ev input.Event) {
	switch ev.Kind {
	case input.Resize:
		w.handleResize(ev.Width, ev.Height)
	case input.Close:
		w.stopped = true
	case input.Key:
		w.handleKey(ev.Key)
	case input.PointerDown, input.PointerMove, input.PointerUp, input.Wheel:
		w.handlePointer(ev)
	}
}

// handleResize resizes the surface and keeps the camera projection in
// step with it.
func (w *World) handleResize(width, height int) {
	w.Renderer.SetSize(width, height)
	w.syncAspect(width, height)
	w.logger.Debug("resize", zap.Int("width", width), zap.Int("height", height))
}

func (w *World) syncAspect(width, height int) {
	if width > 0 && height > 0 {
		w.Camera.Aspect = float32(width) / float32(height)
	}
	w.Camera.UpdateProjection()
}

func (w *World) handleKey(key string) {
	if w.Panel != nil && w.Panel.HandleKey(key) {
		return
	}
	if w.onKey != nil && w.onKey(key) {
		return
	}
	if w.Orbit != nil {
		w.Orbit.Handle(input.KeyEvent(key), w.Camera, w.height())
	}
}

func (w *World) handlePointer(ev input.Event) {
	width, height := w.Renderer.Size()
	if w.Drag != nil {
		w.Drag.Objects = w.Draggable
		was := w.Drag.Active()
		used := w.Drag.Handle(ev, w.Camera, width, height)
		now := w.Drag.Active()
		if w.Orbit != nil {
			switch {
			case was == nil && now != nil:
				w.orbitOn = w.Orbit.Enabled
				w.Orbit.Enabled = false
			case was != nil && now == nil:
				w.Orbit.Enabled = w.orbitOn
			}
		}
		if used {
			return
		}
	}
	if w.Orbit != nil {
		w.Orbit.Handle(ev, w.Camera, height)
	}
}

func (w *World) height() int {
	_, h := w.Renderer.Size()
	return h
}
