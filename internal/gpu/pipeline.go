// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Pipeline errors.
var (
	// ErrNilDevice is returned when creating pipelines without a device.
	ErrNilDevice = errors.New("gpu: device is nil")

	// ErrPipelinesDestroyed is returned when using destroyed pipelines.
	ErrPipelinesDestroyed = errors.New("gpu: pipelines destroyed")
)

// captureFormat is the texture format of the offscreen capture the extract
// pass renders into.
const captureFormat = gputypes.TextureFormatRGBA8Unorm

// RegionPipelines owns the render pipelines for the region passes.
//
// The background shader module carries two fragment entry points. Compiling
// both up front and selecting one at bind time avoids a per-fragment branch
// on a uniform flag: the discard variant pays the cost of losing early-z
// only when blending is actually enabled, and the opaque variant stays a
// plain textured fill.
//
// Four pipelines total:
//
//	backgroundDiscard  surface format, fs_discard, no blend
//	backgroundOpaque   surface format, fs_opaque, no blend
//	extract            capture format, fs_main, no blend
//	composite          surface format, fs_main, premultiplied blend
//
// The composite pipeline reuses the extract shader module with a full
// crop, drawing the effect layer's result quad over the background.
type RegionPipelines struct {
	device hal.Device
	queue  hal.Queue

	backgroundModule hal.ShaderModule
	extractModule    hal.ShaderModule

	layout     hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler

	backgroundDiscard hal.RenderPipeline
	backgroundOpaque  hal.RenderPipeline
	extract           hal.RenderPipeline
	composite         hal.RenderPipeline
}

// NewRegionPipelines compiles the region shaders and creates all render
// pipelines for the given surface format.
func NewRegionPipelines(device hal.Device, queue hal.Queue, surfaceFormat gputypes.TextureFormat) (*RegionPipelines, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if err := validateShaderSources(); err != nil {
		return nil, err
	}

	p := &RegionPipelines{
		device: device,
		queue:  queue,
	}
	if err := p.create(surfaceFormat); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *RegionPipelines) create(surfaceFormat gputypes.TextureFormat) error {
	backgroundModule, err := createShaderModule(p.device, "region_background_shader", backgroundShaderSource)
	if err != nil {
		return err
	}
	p.backgroundModule = backgroundModule

	extractModule, err := createShaderModule(p.device, "region_extract_shader", extractShaderSource)
	if err != nil {
		return err
	}
	p.extractModule = extractModule

	// Bind group layout, shared by every pass:
	//   Binding 0: pass uniforms (uniform buffer, vertex+fragment)
	//   Binding 1: source texture (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	layout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "region_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create region bind layout: %w", err)
	}
	p.layout = layout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "region_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.layout},
	})
	if err != nil {
		return fmt.Errorf("create region pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	// Linear filtering with clamp-to-edge. The extract pass samples at the
	// crop boundary and must not bleed in texels from outside the effect
	// rectangle's neighborhood.
	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "region_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create region sampler: %w", err)
	}
	p.sampler = sampler

	p.backgroundDiscard, err = p.createRenderPipeline(
		"region_background_discard", p.backgroundModule, EntryFragmentDiscard, surfaceFormat, nil)
	if err != nil {
		return err
	}

	p.backgroundOpaque, err = p.createRenderPipeline(
		"region_background_opaque", p.backgroundModule, EntryFragmentOpaque, surfaceFormat, nil)
	if err != nil {
		return err
	}

	p.extract, err = p.createRenderPipeline(
		"region_extract", p.extractModule, EntryFragmentExtract, captureFormat, nil)
	if err != nil {
		return err
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	p.composite, err = p.createRenderPipeline(
		"region_composite", p.extractModule, EntryFragmentExtract, surfaceFormat, &premulBlend)
	if err != nil {
		return err
	}

	return nil
}

// createRenderPipeline builds one render pipeline. Both shader modules draw
// from vertex_index alone, so there is no vertex buffer layout.
func (p *RegionPipelines) createRenderPipeline(
	label string,
	module hal.ShaderModule,
	fragEntry string,
	format gputypes.TextureFormat,
	blend *gputypes.BlendState,
) (hal.RenderPipeline, error) {
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: EntryVertex,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: fragEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", label, err)
	}
	return pipeline, nil
}

// BackgroundPipeline returns the background pipeline variant for the given
// blending mode. Blending on selects the discard variant that cuts the hole
// under the effect rectangle.
func (p *RegionPipelines) BackgroundPipeline(blending bool) hal.RenderPipeline {
	if blending {
		return p.backgroundDiscard
	}
	return p.backgroundOpaque
}

// ExtractPipeline returns the pipeline that renders the source crop into
// the offscreen capture.
func (p *RegionPipelines) ExtractPipeline() hal.RenderPipeline {
	return p.extract
}

// CompositePipeline returns the pipeline that draws the effect result quad
// over the background with premultiplied alpha blending.
func (p *RegionPipelines) CompositePipeline() hal.RenderPipeline {
	return p.composite
}

// Layout returns the shared bind group layout (uniform + texture + sampler).
func (p *RegionPipelines) Layout() hal.BindGroupLayout {
	return p.layout
}

// Sampler returns the shared clamp-to-edge linear sampler.
func (p *RegionPipelines) Sampler() hal.Sampler {
	return p.sampler
}

// Destroy releases all GPU resources in reverse creation order. Safe to
// call multiple times.
func (p *RegionPipelines) Destroy() {
	if p.device == nil {
		return
	}
	if p.composite != nil {
		p.device.DestroyRenderPipeline(p.composite)
		p.composite = nil
	}
	if p.extract != nil {
		p.device.DestroyRenderPipeline(p.extract)
		p.extract = nil
	}
	if p.backgroundOpaque != nil {
		p.device.DestroyRenderPipeline(p.backgroundOpaque)
		p.backgroundOpaque = nil
	}
	if p.backgroundDiscard != nil {
		p.device.DestroyRenderPipeline(p.backgroundDiscard)
		p.backgroundDiscard = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.layout != nil {
		p.device.DestroyBindGroupLayout(p.layout)
		p.layout = nil
	}
	if p.extractModule != nil {
		p.device.DestroyShaderModule(p.extractModule)
		p.extractModule = nil
	}
	if p.backgroundModule != nil {
		p.device.DestroyShaderModule(p.backgroundModule)
		p.backgroundModule = nil
	}
	p.device = nil
}
