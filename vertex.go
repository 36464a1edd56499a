// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import "github.com/cogentcore/webgpu/wgpu"

// VertexFormat is the type of one vertex attribute.
type VertexFormat int32

const (
	// Float is a single 32-bit float.
	Float VertexFormat = iota

	// Floatx2 is a vector of two 32-bit floats.
	Floatx2

	// Floatx3 is a vector of three 32-bit floats.
	Floatx3

	// Floatx4 is a vector of four 32-bit floats.
	Floatx4

	// UBytex4 is four unsigned bytes, normalized to [0, 1] in the shader.
	UBytex4
)

// ByteSize returns the number of bytes one attribute of this format
// occupies in a vertex buffer.
func (vf VertexFormat) ByteSize() int {
	switch vf {
	case Float:
		return 4
	case Floatx2:
		return 8
	case Floatx3:
		return 12
	case Floatx4:
		return 16
	case UBytex4:
		return 4
	}
	panic("easygpu: unknown vertex format")
}

func (vf VertexFormat) wgpuFormat() wgpu.VertexFormat {
	switch vf {
	case Float:
		return wgpu.VertexFormatFloat32
	case Floatx2:
		return wgpu.VertexFormatFloat32x2
	case Floatx3:
		return wgpu.VertexFormatFloat32x3
	case Floatx4:
		return wgpu.VertexFormatFloat32x4
	case UBytex4:
		return wgpu.VertexFormatUnorm8x4
	}
	panic("easygpu: unknown vertex format")
}

// VertexLayout is the compiled attribute layout of one vertex buffer.
// Attribute offsets are cumulative in declaration order, and each
// attribute's shader location equals its position in the declaration.
type VertexLayout struct {
	attributes []wgpu.VertexAttribute
	size       int
}

// NewVertexLayout compiles an ordered list of attribute formats into
// a vertex buffer layout.
func NewVertexLayout(formats ...VertexFormat) *VertexLayout {
	vl := &VertexLayout{}
	for _, f := range formats {
		vl.attributes = append(vl.attributes, wgpu.VertexAttribute{
			ShaderLocation: uint32(len(vl.attributes)),
			Offset:         uint64(vl.size),
			Format:         f.wgpuFormat(),
		})
		vl.size += f.ByteSize()
	}
	return vl
}

// Stride returns the byte stride of one vertex.
func (vl *VertexLayout) Stride() int {
	return vl.size
}

// Attributes returns the compiled attribute list.
func (vl *VertexLayout) Attributes() []wgpu.VertexAttribute {
	return vl.attributes
}

func (vl *VertexLayout) wgpuLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(vl.size),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  vl.attributes,
	}
}
