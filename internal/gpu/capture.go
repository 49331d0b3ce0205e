// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Capture owns the offscreen texture the extract pass renders into and the
// effect stage reads from. It is sized to the effect rectangle's on-screen
// pixel size, not to the source texture, so the effect never runs over
// pixels outside the region.
type Capture struct {
	device hal.Device

	width  uint32
	height uint32

	texture hal.Texture
	view    hal.TextureView
}

// NewCapture returns an empty capture bound to the device. No texture is
// allocated until Ensure is called with a non-zero size.
func NewCapture(device hal.Device) *Capture {
	return &Capture{device: device}
}

// Ensure makes the capture texture match the requested size, recreating it
// when the size changed. A zero-area request releases the texture; callers
// must skip the extract and effect passes when IsEmpty reports true.
func (c *Capture) Ensure(width, height uint32) error {
	if width == 0 || height == 0 {
		c.release()
		c.width, c.height = width, height
		return nil
	}
	if c.texture != nil && c.width == width && c.height == height {
		return nil
	}
	c.release()

	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "region_capture",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        captureFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create capture texture %dx%d: %w", width, height, err)
	}

	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "region_capture_view",
		Format:        captureFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		c.device.DestroyTexture(tex)
		return fmt.Errorf("create capture texture view: %w", err)
	}

	c.texture = tex
	c.view = view
	c.width, c.height = width, height
	return nil
}

// IsEmpty reports whether the capture has no backing texture.
func (c *Capture) IsEmpty() bool {
	return c.texture == nil
}

// Size returns the capture dimensions in pixels.
func (c *Capture) Size() (width, height uint32) {
	return c.width, c.height
}

// View returns the texture view, nil when the capture is empty. The same
// view serves as render attachment for the extract pass and as the sampled
// texture for the effect pass.
func (c *Capture) View() hal.TextureView {
	return c.view
}

// Destroy releases the capture texture. Safe to call multiple times.
func (c *Capture) Destroy() {
	c.release()
	c.width, c.height = 0, 0
}

func (c *Capture) release() {
	if c.view != nil {
		c.device.DestroyTextureView(c.view)
		c.view = nil
	}
	if c.texture != nil {
		c.device.DestroyTexture(c.texture)
		c.texture = nil
	}
}
