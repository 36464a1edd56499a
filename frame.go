// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"image"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Frame wraps a command encoder for one round of pass recording.
// Obtained from [Renderer.Frame] and finished with [Renderer.Present].
type Frame struct {
	encoder *wgpu.CommandEncoder
}

// Pass opens a render pass against the target with the given load
// operation and no multisample resolve.
func (f *Frame) Pass(op PassOp, target RenderTarget) *Pass {
	return beginPass(f.encoder, target.ColorTarget(), nil, target.DepthTarget(), op)
}

// PassResolve opens a render pass against a multisampled color view,
// resolving into the resolve view, with the target's depth attached.
func (f *Frame) PassResolve(op PassOp, view, resolve *wgpu.TextureView, target RenderTarget) *Pass {
	return beginPass(f.encoder, view, resolve, target.DepthTarget(), op)
}

// Encoder returns the frame's command encoder, for recording copy
// commands between passes.
func (f *Frame) Encoder() *wgpu.CommandEncoder {
	return f.encoder
}

// RenderFrame is one acquired presentable surface image plus a fresh
// depth buffer sized to the surface's current configuration.
//
// Present runs exactly once no matter how many times it is called, so
// scoped callers can defer it at acquisition and still present early on
// the happy path; the surface image is never silently leaked.
type RenderFrame struct {
	// View is the color view of the acquired surface image.
	View *wgpu.TextureView

	// Depth is this frame's depth buffer.
	Depth *DepthBuffer

	// Size of the acquired image in pixels.
	Size image.Point

	texture *wgpu.Texture
	surface *wgpu.Surface
	once    sync.Once
}

// ColorTarget returns the surface image view for pass attachment.
func (rf *RenderFrame) ColorTarget() *wgpu.TextureView {
	return rf.View
}

// DepthTarget returns the depth view for pass attachment.
func (rf *RenderFrame) DepthTarget() *wgpu.TextureView {
	return rf.Depth.Texture.view
}

// Present presents the acquired surface image and releases the frame's
// resources. Safe to call more than once; only the first call presents.
func (rf *RenderFrame) Present() {
	rf.once.Do(func() {
		rf.surface.Present()
		if rf.View != nil {
			rf.View.Release()
			rf.View = nil
		}
		if rf.texture != nil {
			rf.texture.Release()
			rf.texture = nil
		}
		if rf.Depth != nil {
			rf.Depth.Release()
			rf.Depth = nil
		}
	})
}

var _ RenderTarget = (*RenderFrame)(nil)
