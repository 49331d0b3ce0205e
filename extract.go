// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

// RenderExtract renders the extract pass: dst plays the role of the quad
// positioned at the effect rectangle's screen bounds, and every one of its
// pixels samples the source texture at the remapped coordinate
// SourceCoord(crop, t) rather than the quad's own local space. The result
// is the crop of the source described by the normalized rectangle, scaled
// to fill dst, with no CPU-side copy of intermediate pixels.
//
// Sampling is bilinear with clamp-to-edge addressing, matching the linear
// samplers of the GPU path. When dst has the same pixel dimensions as the
// effect rectangle, every destination pixel center lands exactly on a
// source pixel center and the crop is reproduced exactly.
func RenderExtract(dst *Pixmap, src *Pixmap, crop NormRect) {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 || src.IsEmpty() {
		return
	}

	for y := 0; y < h; y++ {
		ty := (float32(y) + 0.5) / float32(h)
		for x := 0; x < w; x++ {
			tx := (float32(x) + 0.5) / float32(w)
			u, v := SourceCoord(crop, tx, ty)
			dst.SetPixel(x, y, src.SampleLinear(u, v))
		}
	}
}
