//go:build !nogpu

// Package gpu registers the WebGPU accelerator for hardware-assisted
// region compositing.
//
// Import this package to enable the GPU path: the compositor offers each
// frame to the accelerator, which keeps the region pipelines, the effect
// capture, and the pass uniforms on the host's shared device.
//
// The accelerator stays idle until the host shares its device; it never
// creates a device of its own.
//
// Usage:
//
//	import _ "github.com/gogpu/regionfx/gpu" // enable GPU compositing
//
//	regionfx.SetDeviceProvider(app.GPUContextProvider())
package gpu

import (
	"github.com/gogpu/regionfx"
	gpuimpl "github.com/gogpu/regionfx/internal/gpu"
)

func init() {
	if err := regionfx.RegisterAccelerator(gpuimpl.NewRegionAccelerator()); err != nil {
		regionfx.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider passes a shared GPU device provider to the registered
// accelerator. Equivalent to regionfx.SetDeviceProvider for providers that
// are not a gpucontext.DeviceProvider but still expose HalDevice() any and
// HalQueue() any.
func SetDeviceProvider(provider any) error {
	if a := regionfx.Accelerator(); a != nil {
		return a.SetDeviceProvider(provider)
	}
	return nil
}
