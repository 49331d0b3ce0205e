// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Alpha is straight (not
// premultiplied), matching color.NRGBA semantics.
type RGBA struct {
	R, G, B, A float64
}

// Transparent is fully transparent black.
var Transparent = RGBA{}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: quantize(c.R),
		G: quantize(c.G),
		B: quantize(c.B),
		A: quantize(c.A),
	}
}

// Scale multiplies all four components by s, clamped to [0, 1].
// This is the "sample * opacity" operation of the background pass.
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{
		R: clamp1(c.R * s),
		G: clamp1(c.G * s),
		B: clamp1(c.B * s),
		A: clamp1(c.A * s),
	}
}

// Over composites c over dst using source-over with straight alpha.
func (c RGBA) Over(dst RGBA) RGBA {
	outA := c.A + dst.A*(1-c.A)
	if outA == 0 {
		return Transparent
	}
	return RGBA{
		R: (c.R*c.A + dst.R*dst.A*(1-c.A)) / outA,
		G: (c.G*c.A + dst.G*dst.A*(1-c.A)) / outA,
		B: (c.B*c.A + dst.B*dst.A*(1-c.A)) / outA,
		A: outA,
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// c.RGBA returns alpha-premultiplied 16-bit components.
	return RGBA{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 65535,
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clamp1(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
