package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects the primitive an Object is drawn as.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeSphere
	ShapePlane
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapePlane:
		return "plane"
	}
	return "unknown"
}

// sphereSegments is the number of segments per wireframe circle.
const sphereSegments = 16

// Object is a drawable node. Size holds box dimensions, the sphere radius
// in X, or plane width and depth in X and Z.
type Object struct {
	Name     string
	Shape    Shape
	Size     mgl32.Vec3
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // euler angles in radians, XYZ order
	Scale    mgl32.Vec3
	Color    Color
	Hidden   bool
}

func NewBox(name string, width, height, depth float32, color Color) *Object {
	return &Object{Name: name, Shape: ShapeBox, Size: mgl32.Vec3{width, height, depth}, Scale: mgl32.Vec3{1, 1, 1}, Color: color}
}

func NewSphere(name string, radius float32, color Color) *Object {
	return &Object{Name: name, Shape: ShapeSphere, Size: mgl32.Vec3{radius, radius, radius}, Scale: mgl32.Vec3{1, 1, 1}, Color: color}
}

func NewPlane(name string, width, depth float32, color Color) *Object {
	return &Object{Name: name, Shape: ShapePlane, Size: mgl32.Vec3{width, 0, depth}, Scale: mgl32.Vec3{1, 1, 1}, Color: color}
}

// Model returns the local-to-world matrix, translate * rotate * scale.
func (o *Object) Model() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	return mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
}

// halfExtents returns the half size of the local bounding box.
func (o *Object) halfExtents() mgl32.Vec3 {
	switch o.Shape {
	case ShapeSphere:
		r := o.Size.X()
		return mgl32.Vec3{r, r, r}
	case ShapePlane:
		return mgl32.Vec3{o.Size.X() / 2, 0, o.Size.Z() / 2}
	}
	return o.Size.Mul(0.5)
}

func (o *Object) corners() [8]mgl32.Vec3 {
	h := o.halfExtents()
	return [8]mgl32.Vec3{
		{-h[0], -h[1], -h[2]}, {h[0], -h[1], -h[2]}, {h[0], h[1], -h[2]}, {-h[0], h[1], -h[2]},
		{-h[0], -h[1], h[2]}, {h[0], -h[1], h[2]}, {h[0], h[1], h[2]}, {-h[0], h[1], h[2]},
	}
}

// Bounds returns the world-space axis aligned bounding box.
func (o *Object) Bounds() AABB {
	m := o.Model()
	inf := float32(math.Inf(1))
	b := AABB{Min: mgl32.Vec3{inf, inf, inf}, Max: mgl32.Vec3{-inf, -inf, -inf}}
	for _, c := range o.corners() {
		b = b.Extend(mgl32.TransformCoordinate(c, m))
	}
	return b
}

// Edges returns the wireframe segments in world space.
func (o *Object) Edges() [][2]mgl32.Vec3 {
	m := o.Model()
	var local [][2]mgl32.Vec3
	switch o.Shape {
	case ShapeSphere:
		local = circleEdges(o.Size.X())
	case ShapePlane:
		c := o.corners()
		local = [][2]mgl32.Vec3{{c[0], c[1]}, {c[1], c[5]}, {c[5], c[4]}, {c[4], c[0]}}
	default:
		c := o.corners()
		for _, e := range boxEdgeIndex {
			local = append(local, [2]mgl32.Vec3{c[e[0]], c[e[1]]})
		}
	}
	out := make([][2]mgl32.Vec3, len(local))
	for i, e := range local {
		out[i] = [2]mgl32.Vec3{mgl32.TransformCoordinate(e[0], m), mgl32.TransformCoordinate(e[1], m)}
	}
	return out
}

var boxEdgeIndex = [12][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}

func circleEdges(r float32) [][2]mgl32.Vec3 {
	edges := make([][2]mgl32.Vec3, 0, 3*sphereSegments)
	for axis := 0; axis < 3; axis++ {
		for i := 0; i < sphereSegments; i++ {
			a1 := float64(i) * 2 * math.Pi / sphereSegments
			a2 := float64(i+1) * 2 * math.Pi / sphereSegments
			edges = append(edges, [2]mgl32.Vec3{circlePoint(axis, r, a1), circlePoint(axis, r, a2)})
		}
	}
	return edges
}

func circlePoint(axis int, r float32, a float64) mgl32.Vec3 {
	c, s := r*float32(math.Cos(a)), r*float32(math.Sin(a))
	switch axis {
	case 0:
		return mgl32.Vec3{0, c, s}
	case 1:
		return mgl32.Vec3{c, 0, s}
	}
	return mgl32.Vec3{c, s, 0}
}
