// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package contents

import (
	"fmt"
	"image/color"
	"strconv"

	"golang.org/x/image/math/f32"
)

// Color is a straight-alpha colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colours.
var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Transparent = Color{0, 0, 0, 0}
)

// DefaultColor is substituted for missing gradient stops.
var DefaultColor = Black

// RGB creates an opaque colour.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Premultiply returns the colour with its RGB scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply reverses Premultiply. Fully transparent colours map to
// Transparent.
func (c Color) Unpremultiply() Color {
	if c.A == 0 {
		return Transparent
	}
	return Color{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// WithAlpha returns the colour with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lerp interpolates linearly between c and other.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Vec4 returns the components as a shader vector, unchanged.
func (c Color) Vec4() f32.Vec4 {
	return f32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// NRGBA converts to an 8-bit straight-alpha colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// ParseHex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", with an optional
// leading '#'.
func ParseHex(hex string) (Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var digits int
	switch len(s) {
	case 3, 4:
		digits = 1
	case 6, 8:
		digits = 2
	default:
		return Color{}, fmt.Errorf("contents: invalid hex colour %q", hex)
	}

	comps := [4]float64{0, 0, 0, 1}
	for i := 0; i*digits < len(s); i++ {
		v, err := strconv.ParseUint(s[i*digits:(i+1)*digits], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("contents: invalid hex colour %q: %w", hex, err)
		}
		if digits == 1 {
			v *= 17
		}
		comps[i] = float64(v) / 255
	}
	return Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
}

// Hex is like ParseHex but returns opaque black for invalid input.
func Hex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		return Black
	}
	return c
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v + 0.5
}
