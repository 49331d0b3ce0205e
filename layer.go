// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

import "github.com/chewxy/math32"

// EffectLayer is the offscreen capture stage: it renders the extract pass
// into a capture buffer sized to the quad's on-screen pixel size and runs
// the caller's effect over that buffer. The effect therefore receives
// full-resolution input at the region's displayed size, never the full
// source surface.
//
// The capture and result buffers are owned exclusively by the layer and
// reused across frames; they are reallocated only when the required pixel
// size changes.
type EffectLayer struct {
	capture *Pixmap
	result  *Pixmap
}

// NewEffectLayer creates an empty effect layer. Buffers are allocated
// lazily on first render.
func NewEffectLayer() *EffectLayer {
	return &EffectLayer{}
}

// CaptureSize returns the current capture dimensions in pixels. Both are
// zero before the first render or after a zero-area region.
func (l *EffectLayer) CaptureSize() (width, height int) {
	if l.capture == nil {
		return 0, 0
	}
	return l.capture.Width(), l.capture.Height()
}

// Render captures the extract pass for the given crop at width x height
// pixels and applies the effect to it. The returned pixmap is owned by the
// layer and valid until the next Render call.
//
// A zero-area capture is empty but valid: no extraction or effect work
// runs and an empty pixmap is returned.
func (l *EffectLayer) Render(src *Pixmap, crop NormRect, width, height int, effect Effect) *Pixmap {
	l.ensure(width, height)
	if l.capture.IsEmpty() {
		return l.result
	}

	RenderExtract(l.capture, src, crop)
	effect.Apply(l.capture, l.result)
	return l.result
}

// ensure reallocates the capture and result buffers if the requested size
// differs from the current one.
func (l *EffectLayer) ensure(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if l.capture != nil && l.capture.Width() == width && l.capture.Height() == height {
		return
	}
	l.capture = NewPixmap(width, height)
	l.result = NewPixmap(width, height)
}

// captureDim converts a logical quad extent to capture pixels for the
// given device scale, rounding to the nearest pixel.
func captureDim(logical, scale float32) int {
	px := int(math32.Round(logical * scale))
	if px < 0 {
		return 0
	}
	return px
}
