// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import "github.com/cogentcore/webgpu/wgpu"

// BlendFactor is a source or destination blend coefficient.
type BlendFactor int32

const (
	BlendFactorOne BlendFactor = iota
	BlendFactorZero
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
)

func (bf BlendFactor) wgpuFactor() wgpu.BlendFactor {
	switch bf {
	case BlendFactorOne:
		return wgpu.BlendFactorOne
	case BlendFactorZero:
		return wgpu.BlendFactorZero
	case BlendFactorSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case BlendFactorOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	}
	panic("easygpu: unknown blend factor")
}

// BlendOp combines the weighted source and destination values.
type BlendOp int32

const (
	BlendOpAdd BlendOp = iota
)

func (op BlendOp) wgpuOperation() wgpu.BlendOperation {
	switch op {
	case BlendOpAdd:
		return wgpu.BlendOperationAdd
	}
	panic("easygpu: unknown blend operation")
}

// Blending is one blend equation, applied identically to the color and
// alpha channels of a pipeline's color target.
type Blending struct {
	srcFactor BlendFactor
	dstFactor BlendFactor
	operation BlendOp
}

// NewBlending returns a blend equation with the given factors and operation.
func NewBlending(src, dst BlendFactor, op BlendOp) Blending {
	return Blending{srcFactor: src, dstFactor: dst, operation: op}
}

// DefaultBlending is standard premultiplied-style alpha blending:
// src alpha, one minus src alpha, add.
func DefaultBlending() Blending {
	return Blending{
		srcFactor: BlendFactorSrcAlpha,
		dstFactor: BlendFactorOneMinusSrcAlpha,
		operation: BlendOpAdd,
	}
}

// ConstantBlending replaces the destination: one, zero, add.
func ConstantBlending() Blending {
	return Blending{
		srcFactor: BlendFactorOne,
		dstFactor: BlendFactorZero,
		operation: BlendOpAdd,
	}
}

// wgpuState returns the blend state with the same equation reused for
// both the color and alpha channels.
func (b Blending) wgpuState() *wgpu.BlendState {
	comp := wgpu.BlendComponent{
		SrcFactor: b.srcFactor.wgpuFactor(),
		DstFactor: b.dstFactor.wgpuFactor(),
		Operation: b.operation.wgpuOperation(),
	}
	return &wgpu.BlendState{Color: comp, Alpha: comp}
}
