// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

// Effect is the caller-supplied program applied to the captured effect
// region. The compositor does not inspect or constrain what an effect
// does; it only guarantees that src holds exactly the source pixels inside
// the effect rectangle, scaled to the capture's resolution.
//
// Apply reads src and writes dst. Both pixmaps have identical dimensions.
// Effects must tolerate zero-sized input without fault: a zero-area effect
// rectangle produces an empty capture and the region is treated as a no-op.
type Effect interface {
	Apply(src, dst *Pixmap)
}

// ShaderEffect is implemented by effects that additionally provide a GPU
// program. The source is a WGSL module with vs_main/fs_main entry points
// that samples the capture texture at binding group 0; the internal GPU
// path runs it over the capture instead of calling Apply.
type ShaderEffect interface {
	Effect

	// ShaderSource returns the effect's WGSL source.
	ShaderSource() string
}

// InvertEffect inverts the RGB channels of the captured region, leaving
// alpha untouched. It is deliberately trivial: a cheap, exactly
// predictable effect for exercising the effect stage.
type InvertEffect struct{}

// Apply writes the channel-inverted src into dst.
func (InvertEffect) Apply(src, dst *Pixmap) {
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			c := src.GetPixel(x, y)
			dst.SetPixel(x, y, RGBA{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B, A: c.A})
		}
	}
}

// BoxBlurEffect applies a separable box blur of the given radius to the
// captured region. Pixels beyond the capture edge clamp to the edge, the
// same address mode the samplers use.
//
// A box blur stands in for the frosted-glass style effects this package
// exists to scope: its cost is proportional to the capture area, which is
// exactly what the two-pass technique keeps small.
type BoxBlurEffect struct {
	// Radius is the blur radius in capture pixels. Zero or negative
	// radius degenerates to a copy.
	Radius int
}

// Apply writes the blurred src into dst.
func (e *BoxBlurEffect) Apply(src, dst *Pixmap) {
	w, h := src.Width(), src.Height()
	if w == 0 || h == 0 {
		return
	}
	if e.Radius <= 0 {
		copy(dst.Data(), src.Data())
		return
	}

	// Horizontal pass into a scratch buffer, vertical pass into dst.
	tmp := NewPixmap(w, h)
	n := float64(2*e.Radius + 1)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc RGBA
			for k := -e.Radius; k <= e.Radius; k++ {
				c := src.GetPixel(clampInt(x+k, 0, w-1), y)
				acc.R += c.R
				acc.G += c.G
				acc.B += c.B
				acc.A += c.A
			}
			tmp.SetPixel(x, y, RGBA{R: acc.R / n, G: acc.G / n, B: acc.B / n, A: acc.A / n})
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc RGBA
			for k := -e.Radius; k <= e.Radius; k++ {
				c := tmp.GetPixel(x, clampInt(y+k, 0, h-1))
				acc.R += c.R
				acc.G += c.G
				acc.B += c.B
				acc.A += c.A
			}
			dst.SetPixel(x, y, RGBA{R: acc.R / n, G: acc.G / n, B: acc.B / n, A: acc.A / n})
		}
	}
}

// Ensure the built-in effects implement Effect.
var (
	_ Effect = InvertEffect{}
	_ Effect = (*BoxBlurEffect)(nil)
)
