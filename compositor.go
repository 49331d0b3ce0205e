// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

import (
	"errors"
	"image"

	"github.com/chewxy/math32"
	xdraw "golang.org/x/image/draw"
)

// Common errors returned by Compositor operations.
var (
	// ErrNoSource is returned when compositing without a source attached.
	ErrNoSource = errors.New("regionfx: no texture source attached")

	// ErrNilTarget is returned when compositing into a nil pixmap.
	ErrNilTarget = errors.New("regionfx: nil composite target")

	// ErrNoPixels is returned when the source texture has no CPU-visible
	// pixels; the software path cannot sample GPU-only textures.
	ErrNoPixels = errors.New("regionfx: source texture has no CPU pixels")
)

// FrameStats counts the work submitted for a single composited frame.
// Counters make pass scheduling observable: in particular, a frame with no
// effect attached must record zero extract passes.
type FrameStats struct {
	// BackgroundPasses is the number of full-surface background passes.
	BackgroundPasses int

	// ExtractPasses is the number of region extract passes.
	ExtractPasses int

	// EffectPasses is the number of effect applications over the capture.
	EffectPasses int

	// DiscardedFragments is the number of background fragments discarded
	// by the blending test.
	DiscardedFragments int
}

// Compositor composes a source surface with a region-limited effect. It
// owns the per-frame pass ordering: background first, then (when an
// effect is attached) extract, capture, effect, and the final source-over
// merge of the effect layer at the rectangle's position.
//
// All configuration setters take effect on the next Composite call;
// geometry-dependent values are recomputed explicitly at frame start, not
// reactively. The source and the effect are externally owned and only
// referenced here.
//
// Compositor is NOT safe for concurrent use. Compose from a single
// goroutine, matching the one-frame-at-a-time model of the render thread.
type Compositor struct {
	source      TextureSource
	rect        Rect
	blending    bool
	opacity     float64
	deviceScale float32
	effect      Effect

	layer  *EffectLayer
	output *Pixmap // Lazily created for Acquire.

	// Geometry computed at frame start.
	norm          NormRect
	lastSrcWidth  int
	lastSrcHeight int
	geometryDirty bool

	stats FrameStats
}

// NewCompositor creates a compositor for the given source. The source may
// be nil and attached later with SetSource; compositing without one fails
// with ErrNoSource.
//
// Defaults: blending enabled, opacity 1, device scale 1, no effect.
func NewCompositor(source TextureSource) *Compositor {
	return &Compositor{
		source:        source,
		blending:      true,
		opacity:       1,
		deviceScale:   1,
		layer:         NewEffectLayer(),
		geometryDirty: true,
	}
}

// SetSource attaches the texture source sampled by both passes.
func (c *Compositor) SetSource(source TextureSource) {
	c.source = source
	c.geometryDirty = true
}

// Source returns the attached texture source.
func (c *Compositor) Source() TextureSource {
	return c.source
}

// SetEffectRect sets the pixel-space effect rectangle. Takes effect on the
// next frame. Rectangles outside the source bounds are not validated;
// out-of-range samples clamp to the source edge.
func (c *Compositor) SetEffectRect(r Rect) {
	c.rect = r
	c.geometryDirty = true
}

// EffectRect returns the current effect rectangle.
func (c *Compositor) EffectRect() Rect {
	return c.rect
}

// SetBlending controls the background discard test. With blending off the
// discard-region computation is skipped entirely and the background always
// emits the full sample.
func (c *Compositor) SetBlending(blending bool) {
	c.blending = blending
	c.geometryDirty = true
}

// Blending returns whether the background discard test is enabled.
func (c *Compositor) Blending() bool {
	return c.blending
}

// SetOpacity sets the opacity multiplier applied by the background pass.
func (c *Compositor) SetOpacity(opacity float64) {
	c.opacity = opacity
}

// Opacity returns the background opacity multiplier.
func (c *Compositor) Opacity() float64 {
	return c.opacity
}

// SetDeviceScale sets the device pixel ratio used to size the effect
// capture. Values <= 0 reset to 1.
func (c *Compositor) SetDeviceScale(scale float32) {
	if scale <= 0 {
		scale = 1
	}
	c.deviceScale = scale
}

// DeviceScale returns the device pixel ratio.
func (c *Compositor) DeviceScale() float32 {
	return c.deviceScale
}

// SetEffect attaches the effect program. Passing nil detaches it, which
// disables the effect layer entirely: the extract pass is not rendered
// and no capture is taken.
func (c *Compositor) SetEffect(e Effect) {
	c.effect = e
}

// Effect returns the attached effect program.
func (c *Compositor) Effect() Effect {
	return c.effect
}

// EffectEnabled returns true if an effect program is attached. The effect
// layer and the extract pass run only while this holds.
func (c *Compositor) EffectEnabled() bool {
	return c.effect != nil
}

// NormalizedRect returns the effect rectangle in normalized texture space
// as computed for the most recent frame. Before the first Composite it is
// the empty rectangle.
func (c *Compositor) NormalizedRect() NormRect {
	return c.norm
}

// Stats returns the pass counters of the most recent Composite call.
func (c *Compositor) Stats() FrameStats {
	return c.stats
}

// Composite renders one frame into dst: the background pass over the full
// surface, then, when an effect is attached, the extract pass captured at
// the quad's pixel size, the effect over the capture, and a source-over
// merge of the result at the effect rectangle's position.
//
// When a GPU accelerator is registered the frame is offered to it first;
// frames it cannot produce fall back to the software passes.
//
// Nothing from a prior frame is reused except reusable buffers; the
// composition is recomputed from the current geometry and source content.
func (c *Compositor) Composite(dst *Pixmap) error {
	if dst == nil {
		return ErrNilTarget
	}
	if c.source == nil {
		return ErrNoSource
	}

	tex := c.source.Acquire()
	defer tex.Release()

	src := tex.Pixels()
	if src == nil {
		return ErrNoPixels
	}

	c.recomputeGeometry(src.Width(), src.Height())
	c.stats = FrameStats{}

	enabled := c.EffectEnabled()

	// The discard hole is only cut when the effect layer will actually
	// paint the region; otherwise the background must show through. A
	// degenerate rectangle paints nothing, so it cuts nothing either.
	discard := EmptyNormRect()
	blending := false
	if enabled && c.blending && !c.norm.IsEmpty() {
		discard = c.norm
		blending = true
	}

	cw, ch := 0, 0
	if enabled {
		cw = captureDim(c.rect.Width, c.deviceScale)
		ch = captureDim(c.rect.Height, c.deviceScale)
	}

	if a := Accelerator(); a != nil {
		err := a.Composite(dst, AccelFrame{
			TargetWidth:   dst.Width(),
			TargetHeight:  dst.Height(),
			Rect:          c.rect,
			Region:        c.norm,
			Blending:      blending,
			Opacity:       c.opacity,
			CaptureWidth:  cw,
			CaptureHeight: ch,
		})
		switch {
		case err == nil:
			c.stats.BackgroundPasses++
			if enabled && cw > 0 && ch > 0 {
				c.stats.ExtractPasses++
				c.stats.EffectPasses++
			}
			Logger().Debug("regionfx: frame composited on GPU", "accelerator", a.Name())
			return nil
		case !errors.Is(err, ErrFallbackToCPU):
			Logger().Warn("regionfx: GPU composite failed, using software passes",
				"accelerator", a.Name(), "error", err)
		}
	}

	c.stats.BackgroundPasses++
	c.stats.DiscardedFragments = RenderBackground(dst, src, BackgroundParams{
		Discard:  discard,
		Blending: blending,
		Opacity:  c.opacity,
	})

	if !enabled {
		return nil
	}

	if cw == 0 || ch == 0 {
		// Zero-area region: empty-but-valid capture, no extract or
		// effect work, composite equals the background alone.
		return nil
	}

	c.stats.ExtractPasses++
	c.stats.EffectPasses++
	result := c.layer.Render(src, c.norm, cw, ch, c.effect)
	c.compositeLayer(dst, result)

	Logger().Debug("regionfx: frame composited",
		"rect", c.rect,
		"capture_w", cw,
		"capture_h", ch,
		"discarded", c.stats.DiscardedFragments,
	)
	return nil
}

// recomputeGeometry refreshes the normalized rectangle when a setter
// invalidated it or the source size changed since the last frame. The
// computation is cheap enough to run unconditionally; the dirty flag only
// keeps the semantics explicit.
func (c *Compositor) recomputeGeometry(srcWidth, srcHeight int) {
	if !c.geometryDirty && srcWidth == c.lastSrcWidth && srcHeight == c.lastSrcHeight {
		return
	}
	c.norm = Normalize(float32(srcWidth), float32(srcHeight), c.rect)
	c.lastSrcWidth = srcWidth
	c.lastSrcHeight = srcHeight
	c.geometryDirty = false
}

// compositeLayer merges the effect result over dst at the effect
// rectangle's screen position. When the capture matches the rectangle's
// logical size the merge is a 1:1 source-over loop in the package's
// straight-alpha color model; otherwise the capture (at device pixels) is
// scaled down to the rectangle with bilinear filtering.
func (c *Compositor) compositeLayer(dst *Pixmap, result *Pixmap) {
	x0 := int(math32.Round(c.rect.X))
	y0 := int(math32.Round(c.rect.Y))
	x1 := int(math32.Round(c.rect.X + c.rect.Width))
	y1 := int(math32.Round(c.rect.Y + c.rect.Height))
	target := image.Rect(x0, y0, x1, y1)

	if result.Width() == target.Dx() && result.Height() == target.Dy() {
		for y := 0; y < result.Height(); y++ {
			for x := 0; x < result.Width(); x++ {
				src := result.GetPixel(x, y)
				under := dst.GetPixel(x0+x, y0+y)
				dst.SetPixel(x0+x, y0+y, src.Over(under))
			}
		}
		return
	}
	xdraw.BiLinear.Scale(dst, target, result, result.Bounds(), xdraw.Over, nil)
}

// Acquire renders a frame into an internal pixmap and returns it as a
// frame-scoped texture, making the compositor's output a texture provider
// for further composition. A missing or pixel-less source yields an empty
// texture.
func (c *Compositor) Acquire() Texture {
	if c.source == nil {
		return pixmapTexture{}
	}

	st := c.source.Acquire()
	w, h := st.Width(), st.Height()
	st.Release()

	if c.output == nil || c.output.Width() != w || c.output.Height() != h {
		c.output = NewPixmap(w, h)
	}
	if err := c.Composite(c.output); err != nil {
		c.output.Clear(Transparent)
	}
	return pixmapTexture{pixmap: c.output}
}

// Ensure Compositor implements TextureSource.
var _ TextureSource = (*Compositor)(nil)
