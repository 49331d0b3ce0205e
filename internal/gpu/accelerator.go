// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/regionfx"
)

// RegionAccelerator keeps the region pass resources on a GPU device shared
// by the host application. It implements regionfx.GPUAccelerator.
//
// The accelerator never creates its own device: it stays idle until
// SetDeviceProvider hands it the host's hal device and queue. From then on
// it owns the region pipelines, the offscreen effect capture, and the two
// pass uniform buffers, keeping them in sync with each composited frame.
//
// Frame output targets a surface texture view, which only the host's render
// loop holds. A CPU pixmap target has no view, so Composite maintains the
// frame's GPU state and then reports ErrFallbackToCPU; the pixels come from
// the software passes.
type RegionAccelerator struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	// format is the color target format of the background and composite
	// pipelines. RGBA8 matches the pixmap byte layout.
	format gputypes.TextureFormat

	pipelines *RegionPipelines
	capture   *Capture

	backgroundUniform hal.Buffer
	extractUniform    hal.Buffer

	gpuReady       bool
	externalDevice bool
}

// Interface compliance check.
var _ regionfx.GPUAccelerator = (*RegionAccelerator)(nil)

// NewRegionAccelerator returns an accelerator with no device attached.
func NewRegionAccelerator() *RegionAccelerator {
	return &RegionAccelerator{format: gputypes.TextureFormatRGBA8Unorm}
}

// Name returns the accelerator identifier.
func (a *RegionAccelerator) Name() string { return "wgpu-region" }

// Init registers the accelerator. Device initialization is deferred until
// SetDeviceProvider is called: the accelerator only ever renders on the
// host's shared device, never on one of its own.
func (a *RegionAccelerator) Init() error {
	return nil
}

// Close releases all GPU resources held by the accelerator. The shared
// device itself is not destroyed; the host owns it.
func (a *RegionAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseResources()
	a.device = nil
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
}

// Ready reports whether a shared device is attached and the region
// pipelines are built.
func (a *RegionAccelerator) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gpuReady && a.pipelines != nil
}

// SetDeviceProvider switches the accelerator to a shared GPU device from an
// external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (a *RegionAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu-region: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu-region: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu-region: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseResources()
	a.device = device
	a.queue = queue
	a.externalDevice = true

	pipelines, err := NewRegionPipelines(device, queue, a.format)
	if err != nil {
		regionfx.Logger().Warn("wgpu-region: pipeline creation failed, GPU path unavailable",
			"error", err)
		a.gpuReady = false
		return nil
	}
	a.pipelines = pipelines
	a.capture = NewCapture(device)

	a.gpuReady = true
	regionfx.Logger().Debug("wgpu-region: switched to shared GPU device")
	return nil
}

// Composite maintains the GPU-side state for one frame: the capture texture
// sized to the frame's device-pixel region and the pass uniform buffers
// uploaded with the frame's geometry.
//
// Recording the passes needs the host surface's texture view; a pixmap
// target has none, so the method returns ErrFallbackToCPU after the state
// update and the software passes produce the pixels.
func (a *RegionAccelerator) Composite(_ *regionfx.Pixmap, frame regionfx.AccelFrame) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.gpuReady || a.pipelines == nil {
		return regionfx.ErrFallbackToCPU
	}

	if err := a.capture.Ensure(uint32(frame.CaptureWidth), uint32(frame.CaptureHeight)); err != nil {
		return fmt.Errorf("wgpu-region: capture resize: %w", err)
	}
	if err := a.uploadUniforms(frame); err != nil {
		return fmt.Errorf("wgpu-region: uniform upload: %w", err)
	}

	return regionfx.ErrFallbackToCPU
}

// Pipelines returns the region render pipelines, nil until a device is
// attached.
func (a *RegionAccelerator) Pipelines() *RegionPipelines {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pipelines
}

// CaptureRef returns the offscreen effect capture, nil until a device is
// attached.
func (a *RegionAccelerator) CaptureRef() *Capture {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.capture
}

// uploadUniforms writes both pass uniform buffers for the frame, creating
// them on first use. Callers hold a.mu.
func (a *RegionAccelerator) uploadUniforms(frame regionfx.AccelFrame) error {
	if a.backgroundUniform == nil {
		buf, err := a.createUniformBuffer("region_background_uniform")
		if err != nil {
			return err
		}
		a.backgroundUniform = buf
	}
	if a.extractUniform == nil {
		buf, err := a.createUniformBuffer("region_extract_uniform")
		if err != nil {
			return err
		}
		a.extractUniform = buf
	}

	discard := regionfx.EmptyNormRect()
	if frame.Blending {
		discard = frame.Region
	}
	a.queue.WriteBuffer(a.backgroundUniform, 0,
		MakeBackgroundUniform(discard, float32(frame.Opacity)))

	quad := QuadClipRect(frame.Rect, float32(frame.TargetWidth), float32(frame.TargetHeight))
	a.queue.WriteBuffer(a.extractUniform, 0,
		MakeExtractUniform(frame.Region, quad))
	return nil
}

func (a *RegionAccelerator) createUniformBuffer(label string) (hal.Buffer, error) {
	buf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return buf, nil
}

// releaseResources frees everything created on the attached device.
// Callers hold a.mu.
func (a *RegionAccelerator) releaseResources() {
	if a.backgroundUniform != nil {
		a.device.DestroyBuffer(a.backgroundUniform)
		a.backgroundUniform = nil
	}
	if a.extractUniform != nil {
		a.device.DestroyBuffer(a.extractUniform)
		a.extractUniform = nil
	}
	if a.capture != nil {
		a.capture.Destroy()
		a.capture = nil
	}
	if a.pipelines != nil {
		a.pipelines.Destroy()
		a.pipelines = nil
	}
}
