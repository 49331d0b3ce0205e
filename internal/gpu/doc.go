// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu provides the WebGPU render path for regionfx.
//
// It mirrors the software passes of the root package with hal render
// pipelines:
//
//   - The background pipeline draws a fullscreen triangle sampling the
//     source texture, in a discard variant (blending on) or an opaque
//     variant (blending off), selected at bind time.
//   - The extract pipeline draws a quad at the effect rectangle's screen
//     bounds whose vertex stage remaps local texture coordinates into the
//     normalized crop of the source texture, rendered into an offscreen
//     capture texture sized to the quad's on-screen pixel size.
//   - The caller's effect shader runs over the capture, and the result is
//     drawn on top of the background at the rectangle's position.
//
// All pass submission happens in a fixed order within one frame: extract
// before the effect consumes the capture, background independent of both
// but composited underneath the effect result.
//
// RegionAccelerator ties the pieces together on a GPU device shared by the
// host application; the regionfx/gpu package registers it with the root
// package.
package gpu
