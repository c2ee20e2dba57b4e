package model

import (
	"fmt"
	"math"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Black is the default text color.
var Black = Color{}

// RGB converts DeviceRGB components in [0,1].
func RGB(r, g, b float64) Color {
	return Color{R: channel(r), G: channel(g), B: channel(b)}
}

// CMYK converts DeviceCMYK components in [0,1] with R = 255·(1−C)·(1−K)
// and likewise for G and B.
func CMYK(c, m, y, k float64) Color {
	k = clamp(k)
	return Color{
		R: channel((1 - clamp(c)) * (1 - k)),
		G: channel((1 - clamp(m)) * (1 - k)),
		B: channel((1 - clamp(y)) * (1 - k)),
	}
}

// Gray converts a DeviceGray level in [0,1]; all channels equal round(g×255).
func Gray(g float64) Color {
	v := channel(g)
	return Color{R: v, G: v, B: v}
}

// Hex returns the color as six uppercase hex digits, e.g. "FF0000".
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses a six digit hex color with an optional leading '#'.
func ParseHex(s string) (Color, error) {
	if len(s) == 7 && s[0] == '#' {
		s = s[1:]
	}
	var c Color
	if len(s) != 6 {
		return c, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v) * 255))
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
