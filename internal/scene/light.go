package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light illuminates objects in a Scene.
type Light interface {
	// Base returns the shared name, color and intensity.
	Base() *LightBase

	// Illuminance returns the light intensity reaching point p on a surface
	// with normal n, before color is applied.
	Illuminance(p, n mgl32.Vec3) float32
}

// LightBase provides the fields common to all lights.
type LightBase struct {
	Name      string
	Color     Color
	Intensity float32
}

func (lb *LightBase) Base() *LightBase { return lb }

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	LightBase
}

func NewAmbientLight(color Color, intensity float32) *AmbientLight {
	return &AmbientLight{LightBase{Name: "ambient", Color: color, Intensity: intensity}}
}

func (l *AmbientLight) Illuminance(_, _ mgl32.Vec3) float32 { return l.Intensity }

// DirectionalLight shines from Position toward Target with no falloff.
type DirectionalLight struct {
	LightBase
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// NewDirectionalLight returns a light above and in front of the origin,
// pointing at the origin.
func NewDirectionalLight(color Color, intensity float32) *DirectionalLight {
	return &DirectionalLight{
		LightBase: LightBase{Name: "directional", Color: color, Intensity: intensity},
		Position:  mgl32.Vec3{0, 1, 1},
	}
}

func (l *DirectionalLight) Illuminance(_, n mgl32.Vec3) float32 {
	toLight := l.Position.Sub(l.Target)
	if toLight.Len() == 0 || n.Len() == 0 {
		return 0
	}
	return l.Intensity * max(0, n.Normalize().Dot(toLight.Normalize()))
}

// PointLight radiates from Position. Distance of zero means no cutoff.
type PointLight struct {
	LightBase
	Position mgl32.Vec3
	Distance float32
	Decay    float32
}

func NewPointLight(color Color, intensity, distance float32) *PointLight {
	return &PointLight{
		LightBase: LightBase{Name: "point", Color: color, Intensity: intensity},
		Position:  mgl32.Vec3{0, 5, 5},
		Distance:  distance,
		Decay:     2,
	}
}

func (l *PointLight) Illuminance(p, n mgl32.Vec3) float32 {
	toLight := l.Position.Sub(p)
	d := toLight.Len()
	if d == 0 {
		return l.Intensity
	}
	if l.Distance > 0 && d >= l.Distance {
		return 0
	}
	lambert := float32(1)
	if n.Len() > 0 {
		lambert = max(0, n.Normalize().Dot(toLight.Mul(1/d)))
	}
	atten := float32(1)
	if l.Distance > 0 {
		atten = float32(math.Pow(float64(1-d/l.Distance), float64(l.Decay)))
	}
	return l.Intensity * lambert * atten
}

// Shade returns base lit by lights at point p with normal n. With no
// lights the result is black.
func Shade(lights []Light, base Color, p, n mgl32.Vec3) Color {
	var r, g, b float32
	for _, l := range lights {
		k := l.Illuminance(p, n)
		if k <= 0 {
			continue
		}
		lr, lg, lb := l.Base().Color.RGB()
		r += k * float32(lr) / 255
		g += k * float32(lg) / 255
		b += k * float32(lb) / 255
	}
	br, bg, bb := base.RGB()
	return RGB(clampChannel(float32(br)*r), clampChannel(float32(bg)*g), clampChannel(float32(bb)*b))
}
