// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import "github.com/cogentcore/webgpu/wgpu"

// Pipeline is a compiled, immutable render pipeline bound to a fixed
// vertex layout and pipeline layout.
type Pipeline struct {
	pipeline *wgpu.RenderPipeline

	// Layout is the ordered binding-set shape the pipeline was
	// compiled against.
	Layout *PipelineLayout

	// VertexLayout is the vertex attribute layout the pipeline was
	// compiled against.
	VertexLayout *VertexLayout
}

// RenderPipeline returns the underlying driver pipeline.
func (p *Pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.pipeline
}

// Release frees the driver-side pipeline and its binding group layouts.
func (p *Pipeline) Release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.Layout != nil {
		p.Layout.Release()
		p.Layout = nil
	}
}

// Set declares one binding set: an ordered list of shader resource
// slots. A set's index in a [PipelineDescription] is its @group(n)
// index in the shader.
type Set []Binding

// PipelineLayout is the ordered list of compiled binding group layouts,
// one per declared set. A set's index equals its position in the list.
type PipelineLayout struct {
	Sets []*BindingGroupLayout
}

// Release frees all compiled binding group layouts.
func (pl *PipelineLayout) Release() {
	for _, s := range pl.Sets {
		s.Release()
	}
	pl.Sets = nil
}

// PipelineCore is a usable pipeline: the compiled [Pipeline], its
// binding group, and its uniform buffer. Concrete pipelines embed one
// and fill it in during Setup.
type PipelineCore struct {
	Pipeline *Pipeline
	Bindings *BindingGroup
	Uniforms *UniformBuffer
}

// Core returns the pipeline core; it makes any type embedding a
// *PipelineCore satisfy that part of [AbstractPipeline].
func (pc *PipelineCore) Core() *PipelineCore {
	return pc
}

// Release frees the pipeline, binding group, and uniform buffer.
func (pc *PipelineCore) Release() {
	if pc.Bindings != nil {
		pc.Bindings.Release()
		pc.Bindings = nil
	}
	if pc.Uniforms != nil {
		pc.Uniforms.Release()
		pc.Uniforms = nil
	}
	if pc.Pipeline != nil {
		pc.Pipeline.Release()
		pc.Pipeline = nil
	}
}

// PipelineDescription is a concrete pipeline's static declaration:
// its vertex attribute list, ordered binding sets, and shader source.
type PipelineDescription struct {
	VertexLayout   []VertexFormat
	PipelineLayout []Set
	Shader         string
}

// AbstractPipeline is the contract a concrete pipeline implements to be
// instantiated through [Renderer.Pipeline] and updated each frame
// through [Renderer.UpdatePipeline].
type AbstractPipeline interface {
	// Description declares the pipeline's static layout and shader.
	Description() PipelineDescription

	// Setup runs once after compilation: it constructs the pipeline's
	// uniform buffer with its initial payload and its binding group
	// from set 0 of the compiled layout.
	Setup(pip *Pipeline, dev *Device) error

	// Prepare runs once per frame before any draw using this pipeline.
	// It returns the uniform buffer and its new byte payload, or
	// ok=false when nothing changed and the GPU write can be skipped.
	// This is the only sanctioned path for per-frame uniform mutation.
	Prepare(context any) (buf *UniformBuffer, payload []byte, ok bool)

	// Core gives the renderer access to the compiled pipeline state;
	// provided by embedding a *PipelineCore.
	Core() *PipelineCore
}
