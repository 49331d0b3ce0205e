// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

// Texture is a sampleable 2D surface acquired from a TextureSource for the
// duration of a frame. Release must be called when the frame's passes have
// finished sampling it; the texture must not be used afterwards.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Pixels returns the CPU-visible pixel buffer backing this texture.
	// Returns nil for GPU-only textures.
	Pixels() *Pixmap

	// Release ends the frame-scoped borrow of the texture.
	Release()
}

// TextureSource is the capability interface for anything whose rendered
// output can be sampled as a 2D texture by other render passes. The
// compositor samples its source through this interface, and the
// compositor's own output implements it in turn, so composited results can
// feed further composition.
//
// Acquire returns a texture valid until Release is called. The source
// retains ownership; the caller only borrows it for the frame.
type TextureSource interface {
	Acquire() Texture
}

// PixmapSource adapts a Pixmap into a TextureSource. The pixmap is
// referenced, not copied; callers that mutate it between frames see the
// updated content on the next Acquire.
type PixmapSource struct {
	pixmap *Pixmap
}

// NewPixmapSource creates a texture source backed by the given pixmap.
func NewPixmapSource(p *Pixmap) *PixmapSource {
	return &PixmapSource{pixmap: p}
}

// Acquire returns the backing pixmap as a frame-scoped texture.
func (s *PixmapSource) Acquire() Texture {
	return pixmapTexture{pixmap: s.pixmap}
}

// pixmapTexture is the frame-scoped borrow handed out by PixmapSource.
type pixmapTexture struct {
	pixmap *Pixmap
}

func (t pixmapTexture) Width() int {
	if t.pixmap == nil {
		return 0
	}
	return t.pixmap.Width()
}

func (t pixmapTexture) Height() int {
	if t.pixmap == nil {
		return 0
	}
	return t.pixmap.Height()
}

func (t pixmapTexture) Pixels() *Pixmap { return t.pixmap }

// Release is a no-op: the pixmap is owned by the source for its whole
// lifetime, not per frame.
func (t pixmapTexture) Release() {}

// Ensure PixmapSource implements TextureSource.
var _ TextureSource = (*PixmapSource)(nil)
