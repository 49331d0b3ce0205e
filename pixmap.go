// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// Pixmap represents a rectangular pixel buffer in RGBA format, 4 bytes per
// pixel. It is the CPU-side texture representation used by the software
// render path and by effect programs.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new pixmap with the given dimensions. Zero or
// negative dimensions produce an empty-but-valid pixmap.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// IsEmpty returns true if the pixmap has no pixels.
func (p *Pixmap) IsEmpty() bool {
	return p.width == 0 || p.height == 0
}

// SetPixel sets the color of a single pixel. Out-of-range coordinates are
// ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = quantize(c.R)
	p.data[i+1] = quantize(c.G)
	p.data[i+2] = quantize(c.B)
	p.data[i+3] = quantize(c.A)
}

// GetPixel returns the color of a single pixel. Out-of-range coordinates
// return Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r := quantize(c.R)
	g := quantize(c.G)
	b := quantize(c.B)
	a := quantize(c.A)

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Sample returns the texel nearest to the normalized coordinate (u, v).
// Coordinates outside [0, 1] clamp to the edge, matching the
// clamp-to-edge address mode of the GPU samplers.
func (p *Pixmap) Sample(u, v float32) RGBA {
	if p.IsEmpty() {
		return Transparent
	}
	x := int(math32.Floor(u * float32(p.width)))
	y := int(math32.Floor(v * float32(p.height)))
	return p.GetPixel(clampInt(x, 0, p.width-1), clampInt(y, 0, p.height-1))
}

// SampleLinear returns the bilinearly filtered color at the normalized
// coordinate (u, v), with clamp-to-edge addressing. Texel centers sit at
// half-pixel offsets, so sampling a pixel center reproduces that pixel
// exactly.
func (p *Pixmap) SampleLinear(u, v float32) RGBA {
	if p.IsEmpty() {
		return Transparent
	}

	fx := u*float32(p.width) - 0.5
	fy := v*float32(p.height) - 0.5

	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	dx := float64(fx - float32(x0))
	dy := float64(fy - float32(y0))

	x1 := clampInt(x0+1, 0, p.width-1)
	y1 := clampInt(y0+1, 0, p.height-1)
	x0 = clampInt(x0, 0, p.width-1)
	y0 = clampInt(y0, 0, p.height-1)

	c00 := p.GetPixel(x0, y0)
	c10 := p.GetPixel(x1, y0)
	c01 := p.GetPixel(x0, y1)
	c11 := p.GetPixel(x1, y1)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	mix := func(a, b RGBA, t float64) RGBA {
		return RGBA{
			R: lerp(a.R, b.R, t),
			G: lerp(a.G, b.G, t),
			B: lerp(a.B, b.B, t),
			A: lerp(a.A, b.A, t),
		}
	}
	return mix(mix(c00, c10, dx), mix(c01, c11, dx), dy)
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}

	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Set implements the draw.Image interface, allowing a Pixmap to be used
// as the destination of image/draw and x/image/draw operations.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, FromColor(c))
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// quantize converts a [0, 1] component to a byte, rounding to nearest so
// that a byte read back with GetPixel survives a write unchanged.
func quantize(v float64) uint8 {
	return uint8(clamp255(v*255) + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
