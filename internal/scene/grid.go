package scene

import "github.com/go-gl/mathgl/mgl32"

const (
	DefaultGridSize        = 10
	DefaultGridDivisions   = 10
	DefaultGridCenterColor = Color(0x444444)
	DefaultGridLineColor   = Color(0x888888)
)

// Grid is a square ground grid centered on the origin in the XZ plane.
type Grid struct {
	Size        float32
	Divisions   int
	CenterColor Color
	LineColor   Color
}

func NewGrid(size float32, divisions int) *Grid {
	return &Grid{Size: size, Divisions: divisions, CenterColor: DefaultGridCenterColor, LineColor: DefaultGridLineColor}
}

// GridLine is one grid segment and whether it passes through the origin.
type GridLine struct {
	Start, End mgl32.Vec3
	Center     bool
}

// Lines returns Divisions+1 lines along each axis.
func (g *Grid) Lines() []GridLine {
	if g.Divisions <= 0 {
		return nil
	}
	half := g.Size / 2
	step := g.Size / float32(g.Divisions)
	lines := make([]GridLine, 0, 2*(g.Divisions+1))
	for i := 0; i <= g.Divisions; i++ {
		k := -half + float32(i)*step
		center := 2*i == g.Divisions
		lines = append(lines,
			GridLine{Start: mgl32.Vec3{-half, 0, k}, End: mgl32.Vec3{half, 0, k}, Center: center},
			GridLine{Start: mgl32.Vec3{k, 0, -half}, End: mgl32.Vec3{k, 0, half}, Center: center},
		)
	}
	return lines
}

// Color returns the draw color for line.
func (g *Grid) Color(line GridLine) Color {
	if line.Center {
		return g.CenterColor
	}
	return g.LineColor
}
