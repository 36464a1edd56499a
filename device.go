// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// DeviceBuilder constructs a [Device] from an adapter, optionally
// attached to a presentation surface.
type DeviceBuilder struct {
	adapter *wgpu.Adapter
	surface *wgpu.Surface
}

// NewDeviceBuilder returns a builder for the given adapter.
func NewDeviceBuilder(adapter *wgpu.Adapter) *DeviceBuilder {
	return &DeviceBuilder{adapter: adapter}
}

// WithSurface attaches a presentation surface. Devices built without one
// are off-screen only and must never be configured for presentation.
func (db *DeviceBuilder) WithSurface(surface *wgpu.Surface) *DeviceBuilder {
	db.surface = surface
	return db
}

// Build requests the logical device and queue from the adapter.
// Failure is terminal for this device, not for the process; the caller
// may retry with a different adapter.
func (db *DeviceBuilder) Build() (*Device, error) {
	wdev, err := db.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "easygpu device",
	})
	if err != nil {
		Logger().Error("easygpu: request device", "err", err)
		return nil, err
	}
	dev := &Device{
		Device:  wdev,
		Queue:   wdev.GetQueue(),
		Surface: db.surface,
		adapter: db.adapter,
	}
	Logger().Debug("easygpu: device created", "surface", db.surface != nil)
	return dev, nil
}

// Device owns the driver connection and queue, plus the optional
// presentation surface. It is the factory for every other GPU object
// in the package and is exclusively owned by one caller context.
type Device struct {
	// Device is the WebGPU logical device.
	Device *wgpu.Device

	// Queue is the device's command queue.
	Queue *wgpu.Queue

	// Surface is the presentation surface, nil for off-screen devices.
	Surface *wgpu.Surface

	// adapter the device was requested from, needed to reconfigure
	// the surface.
	adapter *wgpu.Adapter

	// size is the surface size set by the last Configure call.
	size image.Point
}

// Size returns the size set by the last [Device.Configure] call.
// It is only meaningful after Configure has run at least once.
func (d *Device) Size() image.Point {
	return d.size
}

// Configure (re)configures the presentation surface for the given size,
// present mode, and format, and remembers the size for subsequent frame
// and depth buffer creation. The device must have been built with a
// surface.
func (d *Device) Configure(size image.Point, mode wgpu.PresentMode, format wgpu.TextureFormat) {
	if d.Surface == nil {
		panic("easygpu: Configure only works when initialized with a wgpu.Surface")
	}
	d.Surface.Configure(d.adapter, d.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(size.X),
		Height:      uint32(size.Y),
		PresentMode: mode,
		AlphaMode:   wgpu.CompositeAlphaModeAuto,
	})
	d.size = size
}

// CommandEncoder returns a fresh command encoder for recording.
func (d *Device) CommandEncoder() (*wgpu.CommandEncoder, error) {
	return d.Device.CreateCommandEncoder(nil)
}

// Submit submits finished command buffers to the queue, releasing them
// after submission.
func (d *Device) Submit(cmds ...*wgpu.CommandBuffer) {
	d.Queue.Submit(cmds...)
	for _, cmd := range cmds {
		cmd.Release()
	}
}

// Poll processes outstanding driver work; with wait true it blocks until
// the queue makes progress.
func (d *Device) Poll(wait bool) bool {
	return d.Device.Poll(wait, nil)
}

// Release frees the queue and device.
func (d *Device) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}
	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}
}

// CreateShader compiles a WGSL shader module from source text.
func (d *Device) CreateShader(source string) (*Shader, error) {
	module, err := d.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "easygpu shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Shader{module: module}, nil
}

// CreateTexture allocates a GPU image plus view with the given size,
// format, usage, and sample count.
func (d *Device) CreateTexture(size image.Point, format wgpu.TextureFormat, usage wgpu.TextureUsage, sampleCount uint32) (*Texture, error) {
	tf := NewTextureFormat(size, format)
	tf.Samples = sampleCount
	extent := tf.Extent3D()
	texture, err := d.Device.CreateTexture(&wgpu.TextureDescriptor{
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, err
	}
	return &Texture{Format: tf, texture: texture, view: view}, nil
}

// CreateFramebuffer allocates an off-screen color target and a matching
// depth buffer at the same size and sample count. The color texture can
// be rendered to, sampled, and copied both ways.
func (d *Device) CreateFramebuffer(size image.Point, format wgpu.TextureFormat, sampleCount uint32) (*Framebuffer, error) {
	texture, err := d.CreateTexture(size, format,
		wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst|
			wgpu.TextureUsageCopySrc|wgpu.TextureUsageRenderAttachment,
		sampleCount)
	if err != nil {
		return nil, err
	}
	depth, err := d.CreateZBuffer(size, sampleCount)
	if err != nil {
		texture.Release()
		return nil, err
	}
	return &Framebuffer{Texture: texture, Depth: depth}, nil
}

// CreateZBuffer allocates a depth buffer in the system-wide
// [DepthFormat] at the given size and sample count.
func (d *Device) CreateZBuffer(size image.Point, sampleCount uint32) (*DepthBuffer, error) {
	texture, err := d.CreateTexture(size, DepthFormat,
		wgpu.TextureUsageCopyDst|wgpu.TextureUsageRenderAttachment,
		sampleCount)
	if err != nil {
		return nil, err
	}
	return &DepthBuffer{Texture: texture}, nil
}

// CreateBindingGroupLayout compiles an ordered list of binding
// declarations into a layout for the given set index. The binding index
// of each compiled slot equals its position in slots.
func (d *Device) CreateBindingGroupLayout(setIndex uint32, slots []Binding) (*BindingGroupLayout, error) {
	entries := make([]wgpu.BindGroupLayoutEntry, 0, len(slots))
	for _, s := range slots {
		entries = append(entries, s.Binding.layoutEntry(uint32(len(entries)), s.Stage))
	}
	layout, err := d.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return NewBindingGroupLayout(setIndex, layout, len(entries)), nil
}

// CreateBindingGroup instantiates a concrete binding group from a layout.
// Exactly layout.Size resources must be supplied, in slot order; a
// mismatch is a fatal contract error.
func (d *Device) CreateBindingGroup(layout *BindingGroupLayout, binds ...Bind) (*BindingGroup, error) {
	if len(binds) != layout.Size {
		panic(fmt.Sprintf("easygpu: layout slot count %d does not match bindings %d",
			layout.Size, len(binds)))
	}
	entries := make([]wgpu.BindGroupEntry, 0, len(binds))
	for i, b := range binds {
		entries = append(entries, b.bindGroupEntry(uint32(i)))
	}
	group, err := d.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  layout.layout,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return NewBindingGroup(layout.SetIndex, group), nil
}

// CreatePipelineLayout compiles one binding group layout per declared
// set; each set's index is its position in the list.
func (d *Device) CreatePipelineLayout(sets []Set) (*PipelineLayout, error) {
	pl := &PipelineLayout{}
	for i, s := range sets {
		bl, err := d.CreateBindingGroupLayout(uint32(i), s)
		if err != nil {
			return nil, err
		}
		pl.Sets = append(pl.Sets, bl)
	}
	return pl, nil
}

// CreateSampler allocates a clamp-to-edge sampler with the given
// minification and magnification filters.
func (d *Device) CreateSampler(minFilter, magFilter wgpu.FilterMode) (*Sampler, error) {
	sampler, err := d.Device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     magFilter,
		MinFilter:     minFilter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   100,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}
	return &Sampler{sampler: sampler}, nil
}

// CreateIndexBuffer copies 16-bit indices into a new immutable GPU buffer.
func (d *Device) CreateIndexBuffer(indices []uint16) (*IndexBuffer, error) {
	buf, err := d.createBufferFromBytes(wgpu.ToBytes(indices), wgpu.BufferUsageIndex)
	if err != nil {
		return nil, err
	}
	return &IndexBuffer{buffer: buf, Elements: uint32(len(indices))}, nil
}

// UpdateUniformBuffer overwrites an existing uniform buffer's bytes in
// place. The payload must have the byte layout the buffer was created
// with; this is an unchecked contract.
func (d *Device) UpdateUniformBuffer(data []byte, buf *UniformBuffer) error {
	return d.Queue.WriteBuffer(buf.buffer, 0, data)
}

// createBufferFromBytes copies a CPU payload into a new GPU buffer with
// the given usage.
func (d *Device) createBufferFromBytes(data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	return d.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Contents: data,
		Usage:    usage,
	})
}

// CreatePipeline compiles a render pipeline from its layout, vertex
// layout, blend equation, shader, and target format. Fixed policy:
// counter-clockwise front face, triangle-list topology, no culling,
// LessEqual depth with depth write, stencil disabled, and the blend
// equation reused for both the color and alpha channels.
func (d *Device) CreatePipeline(layout *PipelineLayout, vertexLayout *VertexLayout, blending Blending, shader *Shader, format wgpu.TextureFormat, multisample wgpu.MultisampleState) (*Pipeline, error) {
	groupLayouts := make([]*wgpu.BindGroupLayout, 0, len(layout.Sets))
	for _, s := range layout.Sets {
		groupLayouts = append(groupLayouts, s.layout)
	}
	wgpuLayout, err := d.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: groupLayouts,
	})
	if err != nil {
		return nil, err
	}
	defer wgpuLayout.Release()

	pipeline, err := d.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Layout: wgpuLayout,
		Vertex: wgpu.VertexState{
			Module:     shader.module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout.wgpuLayout()},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: multisample,
		Fragment: &wgpu.FragmentState{
			Module:     shader.module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     blending.wgpuState(),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		pipeline:     pipeline,
		Layout:       layout,
		VertexLayout: vertexLayout,
	}, nil
}

// CreateVertexBuffer copies vertices into a new immutable GPU buffer.
func CreateVertexBuffer[T any](d *Device, verts []T) (*VertexBuffer, error) {
	data := wgpu.ToBytes(verts)
	buf, err := d.createBufferFromBytes(data, wgpu.BufferUsageVertex)
	if err != nil {
		return nil, err
	}
	return &VertexBuffer{
		buffer: buf,
		Size:   uint64(len(data)),
		Count:  uint32(len(verts)),
	}, nil
}

// CreateUniformBuffer copies uniform elements into a new GPU buffer that
// can be rewritten in place later.
func CreateUniformBuffer[T any](d *Device, buf []T) (*UniformBuffer, error) {
	data := wgpu.ToBytes(buf)
	elemSize := 0
	if len(buf) > 0 {
		elemSize = len(data) / len(buf)
	}
	wbuf, err := d.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "easygpu uniforms",
		Contents: data,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &UniformBuffer{buffer: wbuf, Size: elemSize, Count: len(buf)}, nil
}

// WriteUniforms overwrites a uniform buffer in place from typed elements.
// See [Device.UpdateUniformBuffer] for the layout contract.
func WriteUniforms[T any](d *Device, buf *UniformBuffer, vals []T) error {
	return d.UpdateUniformBuffer(wgpu.ToBytes(vals), buf)
}
