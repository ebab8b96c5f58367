package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/world3d/internal/input"
	"github.com/san-kum/world3d/internal/scene"
)

const polarEpsilon = 1e-4

// Orbit keeps the camera on a sphere around Target.
type Orbit struct {
	Target  mgl32.Vec3
	Enabled bool

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
	KeyStep     float32 // radians per arrow key press

	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32

	EnableDamping bool
	DampingFactor float32

	dTheta, dPhi float32
	scale        float32
	pan          mgl32.Vec3

	mode         input.Button
	lastX, lastY float32
}

func NewOrbit(cam *scene.Camera) *Orbit {
	return &Orbit{
		Target:        cam.Target,
		Enabled:       true,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		KeyStep:       math.Pi / 36,
		MinDistance:   0,
		MaxDistance:   float32(math.Inf(1)),
		MinPolar:      0,
		MaxPolar:      math.Pi,
		DampingFactor: 0.05,
		scale:         1,
	}
}

// Dragging reports whether a pointer gesture is in progress.
func (o *Orbit) Dragging() bool { return o.mode != input.ButtonNone }

// Handle consumes one input event. height is the viewport height in
// pixels, used to scale pointer motion.
func (o *Orbit) Handle(ev input.Event, cam *scene.Camera, height int) bool {
	if !o.Enabled {
		o.mode = input.ButtonNone
		return false
	}
	h := float32(max(height, 1))
	switch ev.Kind {
	case input.PointerDown:
		o.mode = ev.Button
		if ev.Shift && ev.Button == input.ButtonLeft {
			o.mode = input.ButtonRight
		}
		o.lastX, o.lastY = ev.X, ev.Y
		return o.mode != input.ButtonNone
	case input.PointerMove:
		if o.mode == input.ButtonNone {
			return false
		}
		dx, dy := ev.X-o.lastX, ev.Y-o.lastY
		o.lastX, o.lastY = ev.X, ev.Y
		switch o.mode {
		case input.ButtonLeft:
			o.rotate(2*math.Pi*dx/h*o.RotateSpeed, 2*math.Pi*dy/h*o.RotateSpeed)
		case input.ButtonRight, input.ButtonMiddle:
			o.panBy(dx, dy, cam, h)
		}
		return true
	case input.PointerUp:
		active := o.mode != input.ButtonNone
		o.mode = input.ButtonNone
		return active
	case input.Wheel:
		if ev.Wheel == 0 {
			return false
		}
		o.dolly(ev.Wheel)
		return true
	case input.Key:
		switch ev.Key {
		case "left":
			o.rotate(-o.KeyStep, 0)
		case "right":
			o.rotate(o.KeyStep, 0)
		case "up":
			o.rotate(0, o.KeyStep)
		case "down":
			o.rotate(0, -o.KeyStep)
		case "+", "=":
			o.dolly(1)
		case "-", "_":
			o.dolly(-1)
		default:
			return false
		}
		return true
	}
	return false
}

// rotate takes the angle swept by the pointer; moving right spins the
// camera left around the target.
func (o *Orbit) rotate(dx, dy float32) {
	o.dTheta -= dx
	o.dPhi -= dy
}

func (o *Orbit) panBy(dx, dy float32, cam *scene.Camera, h float32) {
	dist := cam.Distance() * float32(math.Tan(float64(mgl32.DegToRad(cam.FOV))/2))
	left := cam.Right().Mul(-2 * dx * dist / h * o.PanSpeed)
	up := cam.ScreenUp().Mul(2 * dy * dist / h * o.PanSpeed)
	o.pan = o.pan.Add(left).Add(up)
}

// dolly moves toward the target for positive steps.
func (o *Orbit) dolly(steps float32) {
	o.scale *= float32(math.Pow(0.95, float64(o.ZoomSpeed*steps)))
}

// Update applies pending motion to cam and reports whether it moved.
func (o *Orbit) Update(cam *scene.Camera) bool {
	offset := cam.Position.Sub(o.Target)
	radius := offset.Len()
	theta := float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	phi := float32(0)
	if radius > 0 {
		phi = float32(math.Acos(float64(mgl32.Clamp(offset.Y()/radius, -1, 1))))
	}

	factor := float32(1)
	if o.EnableDamping {
		factor = o.DampingFactor
	}
	moved := o.dTheta != 0 || o.dPhi != 0 || o.scale != 1 || o.pan.Len() > 0

	theta += o.dTheta * factor
	phi += o.dPhi * factor
	phi = mgl32.Clamp(phi, max(o.MinPolar, polarEpsilon), min(o.MaxPolar, math.Pi-polarEpsilon))
	radius = mgl32.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)
	o.Target = o.Target.Add(o.pan.Mul(factor))

	sinPhi := float32(math.Sin(float64(phi)))
	offset = mgl32.Vec3{
		radius * sinPhi * float32(math.Sin(float64(theta))),
		radius * float32(math.Cos(float64(phi))),
		radius * sinPhi * float32(math.Cos(float64(theta))),
	}
	cam.Position = o.Target.Add(offset)
	cam.LookAt(o.Target)

	if o.EnableDamping {
		o.dTheta *= 1 - o.DampingFactor
		o.dPhi *= 1 - o.DampingFactor
		o.pan = o.pan.Mul(1 - o.DampingFactor)
	} else {
		o.dTheta, o.dPhi = 0, 0
		o.pan = mgl32.Vec3{}
	}
	o.scale = 1
	return moved
}
