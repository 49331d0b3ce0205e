// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/regionfx"
)

// uniformSize is the byte size of both pass uniform buffers.
// Layout: two vec4<f32> = 32 bytes, satisfying WebGPU's 16-byte
// uniform alignment.
const uniformSize = 32

// MakeBackgroundUniform packs the BackgroundUniforms buffer for the
// background pass:
//
//	discard_rect: vec4<f32>  min.xy, max.xy in normalized texture space
//	params:       vec4<f32>  x = opacity, yzw reserved
//
// Callers binding the opaque variant pass the empty rectangle; the
// shader never tests it.
func MakeBackgroundUniform(discard regionfx.NormRect, opacity float32) []byte {
	buf := make([]byte, uniformSize)
	putFloat32(buf[0:], discard.MinX)
	putFloat32(buf[4:], discard.MinY)
	putFloat32(buf[8:], discard.MaxX)
	putFloat32(buf[12:], discard.MaxY)
	putFloat32(buf[16:], opacity)
	// Remaining params components stay zero.
	return buf
}

// MakeExtractUniform packs the ExtractUniforms buffer for the extract
// pass:
//
//	crop: vec4<f32>  source crop, origin.xy + size.zw in texture space
//	quad: vec4<f32>  quad placement in clip space, top-left origin + extent
func MakeExtractUniform(crop regionfx.NormRect, quad [4]float32) []byte {
	nx, ny, nw, nh := crop.OriginSize()

	buf := make([]byte, uniformSize)
	putFloat32(buf[0:], nx)
	putFloat32(buf[4:], ny)
	putFloat32(buf[8:], nw)
	putFloat32(buf[12:], nh)
	putFloat32(buf[16:], quad[0])
	putFloat32(buf[20:], quad[1])
	putFloat32(buf[24:], quad[2])
	putFloat32(buf[28:], quad[3])
	return buf
}

// QuadClipRect converts a pixel-space rectangle on a viewport of the
// given size into the clip-space placement the extract vertex stage
// consumes: top-left origin (x, y) plus extent (z, w), with y growing
// downward in pixel space and upward in clip space.
func QuadClipRect(r regionfx.Rect, viewWidth, viewHeight float32) [4]float32 {
	if viewWidth == 0 || viewHeight == 0 {
		return [4]float32{}
	}
	return [4]float32{
		2*r.X/viewWidth - 1,
		1 - 2*r.Y/viewHeight,
		2 * r.Width / viewWidth,
		2 * r.Height / viewHeight,
	}
}

// putFloat32 writes a little-endian float32 into buf.
func putFloat32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}
