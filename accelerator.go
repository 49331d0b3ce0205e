// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot produce this frame.
// The compositor transparently falls back to the software passes.
var ErrFallbackToCPU = errors.New("regionfx: falling back to software compositing")

// AccelFrame describes one composited frame for a GPU accelerator: the
// geometry the compositor resolved at frame start, in the same terms the
// region shaders consume.
type AccelFrame struct {
	// TargetWidth, TargetHeight are the destination surface size in pixels.
	TargetWidth, TargetHeight int

	// Rect is the pixel-space effect rectangle.
	Rect Rect

	// Region is the normalized effect rectangle. It is both the background
	// discard rectangle and the extract pass crop.
	Region NormRect

	// Blending enables the background discard test. The compositor resolves
	// it before offering the frame: false when no effect runs or the region
	// is degenerate.
	Blending bool

	// Opacity multiplies the background sample.
	Opacity float64

	// CaptureWidth, CaptureHeight are the effect capture size in device
	// pixels. Both zero when no effect runs this frame.
	CaptureWidth, CaptureHeight int
}

// GPUAccelerator is an optional GPU compositing provider.
//
// When registered via RegisterAccelerator, Composite offers each frame to
// the accelerator first. If the accelerator returns ErrFallbackToCPU or any
// other error, the frame is composited by the software passes instead.
//
// Implementations are provided by GPU backend packages. Users opt in via
// blank import:
//
//	import _ "github.com/gogpu/regionfx/gpu" // enables the WebGPU path
type GPUAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu").
	Name() string

	// Init initializes accelerator state. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// SetDeviceProvider switches the accelerator to a shared GPU device.
	// The provider must expose HalDevice() any and HalQueue() any returning
	// wgpu/hal types.
	SetDeviceProvider(provider any) error

	// Composite renders one frame into dst.
	// Returns ErrFallbackToCPU if the frame cannot be GPU-composited.
	Composite(dst *Pixmap, frame AccelFrame) error
}

var (
	accelMu sync.RWMutex
	accel   GPUAccelerator
)

// RegisterAccelerator registers a GPU accelerator for optional GPU
// compositing.
//
// Only one accelerator can be registered. Subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration; if Init() fails, the accelerator is not registered and the
// error is returned.
//
// When a device provider was already attached via SetDeviceProvider, it is
// forwarded to the new accelerator, so the blank import and the provider
// attachment may happen in either order.
//
// Typical usage via blank import in GPU backend packages:
//
//	func init() {
//	    regionfx.RegisterAccelerator(gpuimpl.NewRegionAccelerator())
//	}
func RegisterAccelerator(a GPUAccelerator) error {
	if a == nil {
		return errors.New("regionfx: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	if provider := DeviceProvider(); provider != nil {
		if err := a.SetDeviceProvider(provider); err != nil {
			Logger().Warn("regionfx: accelerator rejected device provider",
				"accelerator", a.Name(), "error", err)
		}
	}
	return nil
}

// Accelerator returns the currently registered GPU accelerator, or nil if
// none.
func Accelerator() GPUAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}
