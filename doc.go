// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package regionfx applies an expensive per-pixel effect to a rectangular
// sub-region of a larger rendered surface without re-rendering the full
// surface per effect application and without running the effect over pixels
// outside the region.
//
// The technique composes two render passes over the same source texture:
//
//   - A background pass renders the entire source at full size. When
//     blending is enabled, fragments inside the effect rectangle are
//     discarded so the effect layer can be painted on top without double
//     blending.
//   - An extract pass renders a quad positioned at the effect rectangle's
//     screen bounds. Its vertex stage remaps the quad's local texture
//     coordinates into the normalized sub-rectangle of the source texture,
//     so sampling inside the quad yields exactly the corresponding crop of
//     the source. No CPU-side blit is performed.
//
// The extract pass is captured into an offscreen layer sized to the quad's
// screen size, the caller's effect runs over that layer, and the result is
// composited at the rectangle's position on top of the background. The
// effect therefore touches pixels proportional to the rectangle's area, not
// the full source.
//
// Example:
//
//	src := regionfx.NewPixmapSource(surface)
//	comp := regionfx.NewCompositor(src)
//	comp.SetEffectRect(regionfx.NewRect(50, 25, 100, 50))
//	comp.SetEffect(&regionfx.BoxBlurEffect{Radius: 8})
//
//	dst := regionfx.NewPixmap(surface.Width(), surface.Height())
//	if err := comp.Composite(dst); err != nil {
//	    log.Fatal(err)
//	}
//
// The package renders on the CPU by default. Importing the regionfx/gpu
// package registers a WebGPU accelerator that Composite consults first; a
// host shares its device via SetDeviceProvider, and frames the accelerator
// cannot produce fall back to the software passes:
//
//	import _ "github.com/gogpu/regionfx/gpu"
//
//	regionfx.SetDeviceProvider(app.GPUContextProvider())
package regionfx
