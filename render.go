// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import "github.com/cogentcore/webgpu/wgpu"

// RenderTarget can be rendered to in a pass: it exposes a color view
// and a depth view for attachment. Implemented by [Framebuffer] and
// [RenderFrame].
type RenderTarget interface {
	// ColorTarget returns the color attachment view.
	ColorTarget() *wgpu.TextureView

	// DepthTarget returns the depth attachment view.
	DepthTarget() *wgpu.TextureView
}

// PassOp is the load operation applied to the color attachment when a
// pass begins: clear to a color, or load the existing contents.
type PassOp struct {
	load  wgpu.LoadOp
	color Rgba
}

// ClearPass begins the pass by clearing the target to the given color.
func ClearPass(color Rgba) PassOp {
	return PassOp{load: wgpu.LoadOpClear, color: color}
}

// LoadPass begins the pass by preserving the target's existing contents.
func LoadPass() PassOp {
	return PassOp{load: wgpu.LoadOpLoad}
}

// Pass wraps a recording render pass encoder with typed draw state
// helpers.
type Pass struct {
	pass *wgpu.RenderPassEncoder
}

// beginPass opens a render pass against the target's color and depth
// views, with an optional multisample resolve target. Depth clears to 1
// and stencil to 0 at the start of every pass.
func beginPass(enc *wgpu.CommandEncoder, view, resolve, depth *wgpu.TextureView, op PassOp) *Pass {
	rp := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:          view,
			ResolveTarget: resolve,
			LoadOp:        op.load,
			StoreOp:       wgpu.StoreOpStore,
			ClearValue:    op.color.wgpuColor(),
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:              depth,
			DepthLoadOp:       wgpu.LoadOpClear,
			DepthStoreOp:      wgpu.StoreOpStore,
			DepthClearValue:   1,
			StencilLoadOp:     wgpu.LoadOpClear,
			StencilStoreOp:    wgpu.StoreOpStore,
			StencilClearValue: 0,
		},
	})
	return &Pass{pass: rp}
}

// RenderPass returns the underlying driver pass encoder for operations
// not covered by the helpers.
func (p *Pass) RenderPass() *wgpu.RenderPassEncoder {
	return p.pass
}

// SetEasyPipeline sets the pipeline and binds its own binding group.
func (p *Pass) SetEasyPipeline(pip AbstractPipeline) {
	core := pip.Core()
	p.pass.SetPipeline(core.Pipeline.pipeline)
	p.SetBinding(core.Bindings, nil)
}

// SetBinding binds a group at its set index, with optional dynamic
// offsets.
func (p *Pass) SetBinding(group *BindingGroup, offsets []uint32) {
	p.pass.SetBindGroup(group.SetIndex, group.group, offsets)
}

// SetVertexBuffer binds a vertex buffer to slot 0.
func (p *Pass) SetVertexBuffer(vb *VertexBuffer) {
	p.pass.SetVertexBuffer(0, vb.buffer, 0, wgpu.WholeSize)
}

// SetIndexBuffer binds a 16-bit index buffer.
func (p *Pass) SetIndexBuffer(ib *IndexBuffer) {
	p.pass.SetIndexBuffer(ib.buffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
}

// Draw draws a range of vertices for one instance.
func (p *Pass) Draw(firstVertex, vertexCount uint32) {
	p.pass.Draw(vertexCount, 1, firstVertex, 0)
}

// DrawBuffer binds a vertex buffer and draws all of its vertices.
func (p *Pass) DrawBuffer(vb *VertexBuffer) {
	p.SetVertexBuffer(vb)
	p.pass.Draw(vb.Count, 1, 0, 0)
}

// DrawBufferRange binds a vertex buffer and draws a vertex range.
func (p *Pass) DrawBufferRange(vb *VertexBuffer, firstVertex, vertexCount uint32) {
	p.SetVertexBuffer(vb)
	p.pass.Draw(vertexCount, 1, firstVertex, 0)
}

// DrawIndexed draws a range of indices for a range of instances from
// the bound index and vertex buffers.
func (p *Pass) DrawIndexed(firstIndex, indexCount, firstInstance, instanceCount uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, firstIndex, 0, firstInstance)
}

// EasyDraw asks the drawable to record its own draw calls against the
// given binding group.
func (p *Pass) EasyDraw(drawable Drawable, binding *BindingGroup) {
	drawable.Draw(binding, p)
}

// End finishes recording the pass and releases the encoder.
func (p *Pass) End() {
	p.pass.End()
	p.pass.Release()
	p.pass = nil
}

// Drawable records its own draw calls into a pass using the binding
// group it is given.
type Drawable interface {
	Draw(binding *BindingGroup, pass *Pass)
}
