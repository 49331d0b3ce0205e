// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package regionfx

import (
	"sync"

	"github.com/gogpu/gpucontext"
)

// deviceProvider holds the host application's GPU device provider, shared
// with the internal GPU path. Guarded by deviceMu; the provider may be
// attached after compositors already exist.
var (
	deviceMu       sync.RWMutex
	deviceProvider gpucontext.DeviceProvider
)

// SetDeviceProvider shares the host application's GPU device with
// regionfx. The provider typically comes from gogpu.App.GPUContextProvider()
// and is forwarded to the registered GPU accelerator (see the regionfx/gpu
// package), which builds the region pipelines on the shared device.
//
// For device sharing to work the provider must also implement
// HalDevice() any and HalQueue() any returning wgpu/hal types; providers
// without them leave regionfx on the software path.
//
// Pass nil to detach: the accelerator releases its device resources and
// compositing falls back to the software passes.
func SetDeviceProvider(provider gpucontext.DeviceProvider) {
	deviceMu.Lock()
	deviceProvider = provider
	deviceMu.Unlock()

	a := Accelerator()
	if provider == nil {
		if a != nil {
			a.Close()
		}
		return
	}

	Logger().Info("regionfx: GPU device provider attached")
	if a != nil {
		if err := a.SetDeviceProvider(provider); err != nil {
			Logger().Warn("regionfx: accelerator rejected device provider",
				"accelerator", a.Name(), "error", err)
		}
	}
}

// DeviceProvider returns the currently shared device provider, or nil if
// none is attached.
func DeviceProvider() gpucontext.DeviceProvider {
	deviceMu.RLock()
	defer deviceMu.RUnlock()
	return deviceProvider
}
