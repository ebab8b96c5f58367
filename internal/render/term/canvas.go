package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/world3d/internal/scene"
)

// Braille patterns hold 2x4 dots per cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank rune = 0x2800

// Canvas is a grid of braille cells. Each cell keeps the color of the
// nearest dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	colors [][]scene.Color
	depth  [][]float32
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: max(w, 0), Height: max(h, 0)}
	c.Grid = make([][]rune, c.Height)
	c.colors = make([][]scene.Color, c.Height)
	c.depth = make([][]float32, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.colors[i] = make([]scene.Color, c.Width)
		c.depth[i] = make([]float32, c.Width)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (w, h int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int, color scene.Color, depth float32) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
	if depth <= c.depth[row][col] {
		c.depth[row][col] = depth
		c.colors[row][col] = color
	}
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

// ColorAt returns the color of the cell holding dot (x, y).
func (c *Canvas) ColorAt(x, y int) scene.Color {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return 0
	}
	return c.colors[y/4][x/2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.colors[i][j] = 0
			c.depth[i][j] = float32(math.Inf(1))
		}
	}
}

// DrawLine draws a line with Bresenham's algorithm, interpolating depth
// between the endpoints.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color scene.Color, d0, d1 float32) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	n := max(dx, dy)
	i := 0

	for {
		d := d0
		if n > 0 {
			d = d0 + (d1-d0)*float32(i)/float32(n)
		}
		c.Set(x0, y0, color, d)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
		i++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render returns the canvas styled with lipgloss, one style per run of
// equally colored cells, over background bg.
func (c *Canvas) Render(bg scene.Color) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.cellColor(i, j) == c.cellColor(i, start) {
				continue
			}
			b.WriteString(base.Foreground(lipgloss.Color(c.cellColor(i, start).Hex())).Render(string(row[start:j])))
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) cellColor(row, col int) scene.Color {
	if c.Grid[row][col] == blank {
		return 0
	}
	return c.colors[row][col]
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
