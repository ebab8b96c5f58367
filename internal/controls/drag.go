package controls

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/scene"
)

// Drag moves Objects with the left pointer button. A picked object slides
// on the plane facing the camera through its position at pick time.
type Drag struct {
	Objects []*scene.Object
	Enabled bool

	OnDragStart func(o *scene.Object)
	OnDrag      func(o *scene.Object)
	OnDragEnd   func(o *scene.Object)

	active  *scene.Object
	hovered *scene.Object
	normal  mgl32.Vec3
	anchor  mgl32.Vec3
	offset  mgl32.Vec3
}

func NewDrag(objects []*scene.Object) *Drag {
	return &Drag{Objects: objects, Enabled: true}
}

// Active returns the object being dragged, or nil.
func (d *Drag) Active() *scene.Object { return d.active }

// Hovered returns the object under the pointer, or nil.
func (d *Drag) Hovered() *scene.Object { return d.hovered }

// Pick returns the nearest visible object hit by ray.
func (d *Drag) Pick(ray scene.Ray) *scene.Object {
	var best *scene.Object
	bestT := float32(0)
	for _, o := range d.Objects {
		if o == nil || o.Hidden {
			continue
		}
		t, ok := ray.IntersectBox(o.Bounds())
		if ok && (best == nil || t < bestT) {
			best, bestT = o, t
		}
	}
	return best
}

// Handle consumes pointer events that start, continue or end a drag.
func (d *Drag) Handle(ev input.Event, cam *scene.Camera, width, height int) bool {
	if !d.Enabled {
		if d.active != nil {
			d.end()
		}
		return false
	}
	switch ev.Kind {
	case input.PointerDown:
		if ev.Button != input.ButtonLeft {
			return false
		}
		ray := cam.Ray(ev.X, ev.Y, width, height)
		o := d.Pick(ray)
		if o == nil {
			return false
		}
		d.normal = cam.Forward()
		d.anchor = o.Position
		t, ok := ray.IntersectPlane(d.normal, d.anchor)
		if !ok {
			return false
		}
		d.offset = o.Position.Sub(ray.At(t))
		d.active = o
		if d.OnDragStart != nil {
			d.OnDragStart(o)
		}
		return true
	case input.PointerMove:
		ray := cam.Ray(ev.X, ev.Y, width, height)
		if d.active == nil {
			d.hovered = d.Pick(ray)
			return false
		}
		if t, ok := ray.IntersectPlane(d.normal, d.anchor); ok {
			d.active.Position = ray.At(t).Add(d.offset)
			d.anchor = d.active.Position
			if d.OnDrag != nil {
				d.OnDrag(d.active)
			}
		}
		return true
	case input.PointerUp:
		if d.active == nil {
			return false
		}
		d.end()
		return true
	}
	return false
}

func (d *Drag) end() {
	o := d.active
	d.active = nil
	if d.OnDragEnd != nil {
		d.OnDragEnd(o)
	}
}
