// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import "github.com/cogentcore/webgpu/wgpu"

// Bind is implemented by any resource that can be assigned to a shader
// binding slot: uniform buffers, samplers, textures, framebuffers.
type Bind interface {
	// bindGroupEntry describes the resource as the binding at the
	// given slot index.
	bindGroupEntry(index uint32) wgpu.BindGroupEntry
}

// BindingType is the kind of resource a shader binding slot expects.
type BindingType int32

const (
	// BindingTypeUniformBuffer is a uniform buffer with a fixed offset.
	BindingTypeUniformBuffer BindingType = iota

	// BindingTypeUniformBufferDynamic is a uniform buffer whose offset
	// is supplied per draw.
	BindingTypeUniformBufferDynamic

	// BindingTypeSampler is a filtering sampler.
	BindingTypeSampler

	// BindingTypeSampledTexture is a float-sampled 2D texture.
	BindingTypeSampledTexture

	// BindingTypeSampledTextureMultisampled is a multisampled
	// float-sampled 2D texture.
	BindingTypeSampledTextureMultisampled
)

// layoutEntry compiles the binding declaration into a layout entry at the
// given slot index for the given shader stages.
func (bt BindingType) layoutEntry(index uint32, stage wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    index,
		Visibility: stage,
	}
	switch bt {
	case BindingTypeUniformBuffer:
		entry.Buffer = wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeUniform,
		}
	case BindingTypeUniformBufferDynamic:
		entry.Buffer = wgpu.BufferBindingLayout{
			Type:             wgpu.BufferBindingTypeUniform,
			HasDynamicOffset: true,
		}
	case BindingTypeSampler:
		entry.Sampler = wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		}
	case BindingTypeSampledTexture:
		entry.Texture = wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		}
	case BindingTypeSampledTextureMultisampled:
		entry.Texture = wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
			Multisampled:  true,
		}
	default:
		panic("easygpu: unknown binding type")
	}
	return entry
}

// Binding declares one shader-visible resource slot: its kind and the
// shader stages that can see it.
type Binding struct {
	Binding BindingType
	Stage   wgpu.ShaderStage
}

// BindingGroupLayout is the compiled shape of one binding set: its set
// index within the pipeline layout and its slot count. All binding
// groups built from it must supply exactly Size resources in slot order.
type BindingGroupLayout struct {
	layout *wgpu.BindGroupLayout

	// Size is the number of slots in the set.
	Size int

	// SetIndex matches the n of the corresponding @group(n) attribute
	// in the shader source.
	SetIndex uint32
}

// NewBindingGroupLayout wraps a compiled bind group layout.
func NewBindingGroupLayout(setIndex uint32, layout *wgpu.BindGroupLayout, size int) *BindingGroupLayout {
	return &BindingGroupLayout{layout: layout, Size: size, SetIndex: setIndex}
}

// Release frees the driver-side layout.
func (bl *BindingGroupLayout) Release() {
	if bl.layout != nil {
		bl.layout.Release()
		bl.layout = nil
	}
}

// BindingGroup is a concrete, immutable assignment of resources to the
// slots of one layout. Changing which resources are bound means creating
// a new group from the same layout.
type BindingGroup struct {
	group *wgpu.BindGroup

	// SetIndex is the set this group binds to, copied from its layout.
	SetIndex uint32
}

// NewBindingGroup wraps a compiled bind group.
func NewBindingGroup(setIndex uint32, group *wgpu.BindGroup) *BindingGroup {
	return &BindingGroup{group: group, SetIndex: setIndex}
}

// Release frees the driver-side group.
func (bg *BindingGroup) Release() {
	if bg.group != nil {
		bg.group.Release()
		bg.group = nil
	}
}
