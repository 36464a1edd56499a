// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"errors"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilder constructs a [Renderer] for either presentation to a
// surface or off-screen rendering against a chosen adapter.
type RendererBuilder struct {
	surface     *wgpu.Surface
	instance    *wgpu.Instance
	adapter     *wgpu.Adapter
	sampleCount uint32
	offscreen   bool
}

// NewRendererBuilder returns an empty builder.
func NewRendererBuilder() *RendererBuilder {
	return &RendererBuilder{sampleCount: 1}
}

// WithSurface targets presentation: the adapter is requested from the
// instance as one compatible with the surface.
func (rb *RendererBuilder) WithSurface(surface *wgpu.Surface, instance *wgpu.Instance, sampleCount uint32) *RendererBuilder {
	rb.surface = surface
	rb.instance = instance
	rb.sampleCount = sampleCount
	return rb
}

// WithOffscreen targets off-screen rendering on the given adapter;
// no surface is attached and the renderer cannot present.
func (rb *RendererBuilder) WithOffscreen(adapter *wgpu.Adapter, sampleCount uint32) *RendererBuilder {
	rb.offscreen = true
	rb.adapter = adapter
	rb.sampleCount = sampleCount
	return rb
}

// Build requests the adapter (for surface targets) and device and
// returns the renderer.
func (rb *RendererBuilder) Build() (*Renderer, error) {
	if rb.offscreen {
		dev, err := NewDeviceBuilder(rb.adapter).Build()
		if err != nil {
			return nil, err
		}
		return &Renderer{Device: dev, sampleCount: rb.sampleCount}, nil
	}
	if rb.instance == nil || rb.surface == nil {
		return nil, errors.New("easygpu: renderer needs a surface and instance, or an offscreen adapter")
	}
	adapter, err := rb.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: rb.surface,
	})
	if err != nil {
		return nil, err
	}
	dev, err := NewDeviceBuilder(adapter).WithSurface(rb.surface).Build()
	if err != nil {
		return nil, err
	}
	return &Renderer{Device: dev, sampleCount: rb.sampleCount}, nil
}

// Renderer is a facade over one [Device]: frame acquisition and
// presentation, pipeline instantiation, command batching, and
// asynchronous readback. All recording and submission happens on the
// single caller goroutine; the driver queue executes asynchronously.
type Renderer struct {
	// Device owns the driver connection the renderer drives.
	Device *Device

	// sampleCount enables MSAA for values > 1.
	sampleCount uint32
}

// SampleCount returns the multisample count the renderer was built with.
func (r *Renderer) SampleCount() uint32 {
	return r.sampleCount
}

// Configure (re)configures the presentation surface. Callers recover
// from transient surface errors by calling this again and retrying the
// next frame.
func (r *Renderer) Configure(size image.Point, mode wgpu.PresentMode, format wgpu.TextureFormat) {
	r.Device.Configure(size, mode, format)
}

// CurrentFrame acquires the next presentable surface image and a fresh
// depth buffer sized to the configured surface size. Driver surface
// errors (lost, outdated) are returned as is; they are transient, and
// the documented recovery is to reconfigure and retry.
func (r *Renderer) CurrentFrame() (*RenderFrame, error) {
	surface := r.Device.Surface
	if surface == nil {
		panic("easygpu: CurrentFrame requires a device with a surface")
	}
	texture, err := surface.GetCurrentTexture()
	if err != nil {
		Logger().Warn("easygpu: surface texture acquire", "err", err)
		return nil, err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, err
	}
	depth, err := r.Device.CreateZBuffer(r.Device.Size(), r.sampleCount)
	if err != nil {
		view.Release()
		texture.Release()
		return nil, err
	}
	return &RenderFrame{
		View:    view,
		Depth:   depth,
		Size:    r.Device.Size(),
		texture: texture,
		surface: surface,
	}, nil
}

// Texture creates a texture through the device, multisampled at the
// renderer's sample count if requested.
func (r *Renderer) Texture(size image.Point, format wgpu.TextureFormat, usage wgpu.TextureUsage, multisampled bool) (*Texture, error) {
	sampleCount := uint32(1)
	if multisampled {
		sampleCount = r.sampleCount
	}
	return r.Device.CreateTexture(size, format, usage, sampleCount)
}

// Framebuffer creates an off-screen color+depth pair at the renderer's
// sample count.
func (r *Renderer) Framebuffer(size image.Point, format wgpu.TextureFormat) (*Framebuffer, error) {
	return r.Device.CreateFramebuffer(size, format, r.sampleCount)
}

// ZBuffer creates a depth buffer at the renderer's sample count.
func (r *Renderer) ZBuffer(size image.Point) (*DepthBuffer, error) {
	return r.Device.CreateZBuffer(size, r.sampleCount)
}

// BindingGroup instantiates a binding group through the device.
func (r *Renderer) BindingGroup(layout *BindingGroupLayout, binds ...Bind) (*BindingGroup, error) {
	return r.Device.CreateBindingGroup(layout, binds...)
}

// Sampler creates a sampler through the device.
func (r *Renderer) Sampler(minFilter, magFilter wgpu.FilterMode) (*Sampler, error) {
	return r.Device.CreateSampler(minFilter, magFilter)
}

// Pipeline compiles a concrete pipeline from its description and runs
// its one-time setup. The target format must match the views the
// pipeline will render into.
func (r *Renderer) Pipeline(pip AbstractPipeline, blending Blending, format wgpu.TextureFormat) error {
	desc := pip.Description()
	layout, err := r.Device.CreatePipelineLayout(desc.PipelineLayout)
	if err != nil {
		return err
	}
	vertexLayout := NewVertexLayout(desc.VertexLayout...)
	shader, err := r.Device.CreateShader(desc.Shader)
	if err != nil {
		layout.Release()
		return err
	}
	defer shader.Release()
	compiled, err := r.Device.CreatePipeline(layout, vertexLayout, blending, shader, format,
		wgpu.MultisampleState{
			Count: r.sampleCount,
			Mask:  0xFFFFFFFF,
		})
	if err != nil {
		layout.Release()
		return err
	}
	return pip.Setup(compiled, r.Device)
}

// UpdatePipeline runs the pipeline's per-frame prepare step and writes
// the returned uniform payload, if any, to its uniform buffer.
func (r *Renderer) UpdatePipeline(pip AbstractPipeline, context any) error {
	buf, payload, ok := pip.Prepare(context)
	if !ok {
		return nil
	}
	return r.Device.UpdateUniformBuffer(payload, buf)
}

// Frame begins command recording, returning a frame wrapping a fresh
// command encoder.
func (r *Renderer) Frame() (*Frame, error) {
	enc, err := r.Device.CommandEncoder()
	if err != nil {
		return nil, err
	}
	return &Frame{encoder: enc}, nil
}

// Present finalizes the frame's command buffer and submits it.
// Presenting the acquired surface image itself is [RenderFrame.Present].
func (r *Renderer) Present(frame *Frame) error {
	cmd, err := frame.encoder.Finish(nil)
	if err != nil {
		return err
	}
	frame.encoder.Release()
	frame.encoder = nil
	r.Device.Submit(cmd)
	return nil
}

// Submit encodes a batch of canvas operations into one command buffer
// and submits it, with no frame or pass involved. Operations execute in
// batch order.
func (r *Renderer) Submit(ops []Op) error {
	enc, err := r.Device.CommandEncoder()
	if err != nil {
		return err
	}
	for _, op := range ops {
		op.encode(r.Device, enc)
	}
	cmd, err := enc.Finish(nil)
	if err != nil {
		return err
	}
	enc.Release()
	r.Device.Submit(cmd)
	return nil
}

// Read copies the framebuffer's color image into a CPU-mappable staging
// buffer, submits that one command buffer, and blocks until the driver
// signals map completion. The callback then receives one typed texel
// per pixel, row-major from the top; the mapped memory is released
// before Read returns.
//
// Reads are ordered only against writes already submitted; writes
// sitting in an unfinished encoder are not visible.
func (r *Renderer) Read(fb *Framebuffer, f func(data []Bgra8)) error {
	enc, err := r.Device.CommandEncoder()
	if err != nil {
		return err
	}

	// Rows in a mappable buffer must be padded to the driver's
	// copy alignment.
	dims := NewTextureBufferDims(fb.Texture.Format.Size)
	paddedSize := dims.PaddedSize()

	buffer, err := r.Device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "easygpu readback",
		Size:  paddedSize,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	defer buffer.Release()

	enc.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  fb.Texture.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: buffer,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(dims.PaddedRowSize),
				RowsPerImage: uint32(dims.Height),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(dims.Width),
			Height:             uint32(dims.Height),
			DepthOrArrayLayers: 1,
		},
	)
	cmd, err := enc.Finish(nil)
	if err != nil {
		return err
	}
	enc.Release()
	r.Device.Submit(cmd)

	if err := bufferReadSync(r.Device, int(paddedSize), buffer); err != nil {
		return err
	}

	view := buffer.GetMappedRange(0, uint(paddedSize))
	data := make([]byte, 0, dims.UnpaddedSize())
	if dims.HasNoPadding() {
		data = append(data, view...)
	} else {
		for row := uint64(0); row < dims.Height; row++ {
			start := row * dims.PaddedRowSize
			data = append(data, view[start:start+dims.UnpaddedRowSize]...)
		}
	}
	buffer.Unmap()

	if len(data)%4 != 0 {
		panic("easygpu: framebuffer is not a valid Bgra8 buffer")
	}
	if len(data) > 0 {
		f(bgra8FromBytes(data))
	}
	return nil
}
