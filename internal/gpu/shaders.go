// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"errors"
)

// Embedded WGSL shader sources, compiled at build time via go:embed.

//go:embed shaders/region_background.wgsl
var backgroundShaderSource string

//go:embed shaders/region_extract.wgsl
var extractShaderSource string

// Shader entry point names. The background module exposes one vertex
// entry and two fragment variants; which fragment entry a pipeline uses
// is the blending tradeoff documented on RegionPipelines.
const (
	EntryVertex          = "vs_main"
	EntryFragmentDiscard = "fs_discard"
	EntryFragmentOpaque  = "fs_opaque"
	EntryFragmentExtract = "fs_main"
)

// ErrEmptyShaderSource is returned when an embedded shader source is
// missing, which indicates a broken build.
var ErrEmptyShaderSource = errors.New("gpu: embedded shader source is empty")

// BackgroundShaderSource returns the WGSL source for the background pass.
func BackgroundShaderSource() string {
	return backgroundShaderSource
}

// ExtractShaderSource returns the WGSL source for the extract pass.
func ExtractShaderSource() string {
	return extractShaderSource
}

// validateShaderSources checks that both embedded sources are present.
func validateShaderSources() error {
	if backgroundShaderSource == "" || extractShaderSource == "" {
		return ErrEmptyShaderSource
	}
	return nil
}
