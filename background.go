// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

// BackgroundParams configures the full-surface background pass.
type BackgroundParams struct {
	// Discard is the normalized rectangle whose fragments are discarded
	// when Blending is true. Ignored entirely when Blending is false.
	Discard NormRect

	// Blending enables the discard test. When false the caller asserts
	// the source is fully opaque and the effect layer will overwrite its
	// own footprint with an opaque result, so every fragment is emitted
	// and no per-pixel test runs.
	Blending bool

	// Opacity multiplies every emitted sample.
	Opacity float64
}

// RenderBackground renders the entire source surface into dst at full
// size. For each destination pixel the source is sampled at the pixel's
// texture coordinate; with blending enabled, coordinates inside the
// discard rectangle (inclusive bounds) emit nothing, preserving whatever
// is already composited beneath. All other pixels receive sample*opacity.
//
// dst and src are expected to have matching dimensions; the pass simply
// samples normalized coordinates, so mismatched sizes scale rather than
// fail. Returns the number of discarded fragments.
func RenderBackground(dst *Pixmap, src *Pixmap, p BackgroundParams) int {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 || src.IsEmpty() {
		return 0
	}

	discarded := 0
	for y := 0; y < h; y++ {
		ty := (float32(y) + 0.5) / float32(h)
		for x := 0; x < w; x++ {
			tx := (float32(x) + 0.5) / float32(w)
			if p.Blending && p.Discard.Contains(tx, ty) {
				discarded++
				continue
			}
			dst.SetPixel(x, y, src.Sample(tx, ty).Scale(p.Opacity))
		}
	}
	return discarded
}
