package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB color written as 0xRRGGBB.
type Color uint32

const (
	White Color = 0xFFFFFF
	Black Color = 0x000000
)

// RGB returns the color channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Scale multiplies every channel by f, clamped to [0, 255].
func (c Color) Scale(f float32) Color {
	r, g, b := c.RGB()
	return RGB(clampChannel(float32(r)*f), clampChannel(float32(g)*f), clampChannel(float32(b)*f))
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

func (c Color) String() string { return c.Hex() }

// RGB builds a Color from channels.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or bare "rrggbb".
func ParseColor(s string) (Color, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) != 6 {
		return 0, fmt.Errorf("scene: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("scene: invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

func clampChannel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
