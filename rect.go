// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

// Rect is a pixel-space rectangle in the source surface's local coordinate
// space. Callers are expected to keep the rectangle inside the source
// bounds; values outside produce out-of-range samples that follow the
// sampler's clamp behavior and are not validated here.
type Rect struct {
	X, Y, Width, Height float32
}

// NewRect creates a pixel-space rectangle.
func NewRect(x, y, width, height float32) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// NormRect is a rectangle in normalized texture space, stored in
// min-x/min-y/max-x/max-y form. Both shader stages consume this
// representation: the background pass as the discard bounds, the extract
// pass (via origin+size) as the source crop.
type NormRect struct {
	MinX, MinY, MaxX, MaxY float32
}

// EmptyNormRect returns the degenerate empty rectangle (0,0,0,0).
func EmptyNormRect() NormRect {
	return NormRect{}
}

// IsEmpty returns true if the rectangle encloses no area.
func (n NormRect) IsEmpty() bool {
	return n.MaxX <= n.MinX || n.MaxY <= n.MinY
}

// OriginSize returns the rectangle in origin+size form (nx, ny, nw, nh),
// the representation the extract pass's vertex remap consumes.
func (n NormRect) OriginSize() (nx, ny, nw, nh float32) {
	return n.MinX, n.MinY, n.MaxX - n.MinX, n.MaxY - n.MinY
}

// Contains reports whether the normalized coordinate (u, v) falls within
// the rectangle. Bounds are inclusive, matching the discard test in the
// background pass.
func (n NormRect) Contains(u, v float32) bool {
	return u >= n.MinX && u <= n.MaxX && v >= n.MinY && v <= n.MaxY
}

// Normalize converts a pixel-space rectangle into normalized texture space
// by dividing component-wise by the source dimensions:
//
//	(x/W, y/H, (x+w)/W, (y+h)/H)
//
// A source with zero width or height yields the degenerate empty rectangle
// rather than propagating NaN. Normalize is pure and cheap; callers
// recompute it on every geometry change instead of caching.
func Normalize(srcWidth, srcHeight float32, r Rect) NormRect {
	if srcWidth == 0 || srcHeight == 0 {
		return EmptyNormRect()
	}
	return NormRect{
		MinX: r.X / srcWidth,
		MinY: r.Y / srcHeight,
		MaxX: (r.X + r.Width) / srcWidth,
		MaxY: (r.Y + r.Height) / srcHeight,
	}
}

// SourceCoord remaps a quad-local texture coordinate t in [0,1]x[0,1] to
// the source-texture coordinate it must sample:
//
//	(nx + nw*t.x, ny + nh*t.y)
//
// This is the key invariant of the extract pass: sampling anywhere inside
// the quad resolves to the corresponding point inside the effect rectangle
// of the original source texture, never to the quad's own local space.
func SourceCoord(n NormRect, tx, ty float32) (u, v float32) {
	nx, ny, nw, nh := n.OriginSize()
	return nx + nw*tx, ny + nh*ty
}
