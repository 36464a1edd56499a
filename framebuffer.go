// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the single depth/stencil format used by every depth
// buffer in the system.
const DepthFormat = wgpu.TextureFormatDepth24PlusStencil8

// DepthBuffer is a depth/stencil texture, created alongside a color
// target at the same size and sample count.
type DepthBuffer struct {
	Texture *Texture
}

// Release frees the underlying texture.
func (db *DepthBuffer) Release() {
	if db.Texture != nil {
		db.Texture.Release()
		db.Texture = nil
	}
}

// Framebuffer is an off-screen render target: a color texture paired
// with a depth buffer of the same size. The pair is never resized
// individually; on resize it is replaced wholesale.
//
// A Framebuffer can be rendered to in a pass, sampled as a texture
// binding, and read back through [Renderer.Read].
type Framebuffer struct {
	Texture *Texture
	Depth   *DepthBuffer
}

// Size returns the number of pixels in the framebuffer.
func (fb *Framebuffer) Size() int {
	return fb.Texture.Area()
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.Texture.Format.Size.X
}

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.Texture.Format.Size.Y
}

// Release frees the color texture and the depth buffer.
func (fb *Framebuffer) Release() {
	if fb.Texture != nil {
		fb.Texture.Release()
		fb.Texture = nil
	}
	if fb.Depth != nil {
		fb.Depth.Release()
		fb.Depth = nil
	}
}

// ColorTarget returns the color view for pass attachment.
func (fb *Framebuffer) ColorTarget() *wgpu.TextureView {
	return fb.Texture.view
}

// DepthTarget returns the depth view for pass attachment.
func (fb *Framebuffer) DepthTarget() *wgpu.TextureView {
	return fb.Depth.Texture.view
}

func (fb *Framebuffer) bindGroupEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding:     index,
		TextureView: fb.Texture.view,
	}
}

// Clear fills the color texture with one repeated texel.
func (fb *Framebuffer) Clear(color Rgba8, dev *Device, enc *wgpu.CommandEncoder) {
	fb.Texture.Clear(color, dev, enc)
}

// Fill uploads texels over the color texture's full extent.
func (fb *Framebuffer) Fill(texels []Rgba8, dev *Device, enc *wgpu.CommandEncoder) {
	fb.Texture.Fill(texels, dev, enc)
}

// Transfer copies texels into a sub-rectangle of the color texture.
func (fb *Framebuffer) Transfer(texels []Rgba8, rect image.Rectangle, dev *Device, enc *wgpu.CommandEncoder) {
	fb.Texture.Transfer(texels, rect, dev, enc)
}

// Blit copies the src rectangle onto the dst rectangle of the color
// texture GPU-side.
func (fb *Framebuffer) Blit(src, dst image.Rectangle, enc *wgpu.CommandEncoder) {
	fb.Texture.Blit(src, dst, enc)
}

var (
	_ Canvas       = (*Framebuffer)(nil)
	_ Canvas       = (*Texture)(nil)
	_ RenderTarget = (*Framebuffer)(nil)
	_ Bind         = (*Framebuffer)(nil)
	_ Bind         = (*Texture)(nil)
	_ Bind         = (*UniformBuffer)(nil)
	_ Bind         = (*Sampler)(nil)
)
