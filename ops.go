// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// opKind enumerates the canvas operations so batch encoding can switch
// on a tag instead of dispatching through a wider interface.
type opKind int32

const (
	opClear opKind = iota
	opFill
	opTransfer
	opBlit
)

// Op is one deferred canvas operation, batched and encoded by
// [Renderer.Submit]. Construct with [Clear], [Fill], [Transfer],
// or [Blit].
type Op struct {
	kind   opKind
	canvas Canvas
	color  Rgba8
	texels []Rgba8
	rect   image.Rectangle
	src    image.Rectangle
	dst    image.Rectangle
}

// Clear returns an operation that fills the whole canvas with one texel.
func Clear(c Canvas, color Rgba8) Op {
	return Op{kind: opClear, canvas: c, color: color}
}

// Fill returns an operation that uploads texels over the canvas's full
// extent.
func Fill(c Canvas, texels []Rgba8) Op {
	return Op{kind: opFill, canvas: c, texels: texels}
}

// Transfer returns an operation that copies texels into a sub-rectangle
// of the canvas, given in top-left-origin coordinates.
func Transfer(c Canvas, texels []Rgba8, rect image.Rectangle) Op {
	return Op{kind: opTransfer, canvas: c, texels: texels, rect: rect}
}

// Blit returns an operation that copies the src rectangle onto the dst
// rectangle of the canvas GPU-side.
func Blit(c Canvas, src, dst image.Rectangle) Op {
	return Op{kind: opBlit, canvas: c, src: src, dst: dst}
}

func (op Op) encode(dev *Device, enc *wgpu.CommandEncoder) {
	switch op.kind {
	case opClear:
		op.canvas.Clear(op.color, dev, enc)
	case opFill:
		op.canvas.Fill(op.texels, dev, enc)
	case opTransfer:
		op.canvas.Transfer(op.texels, op.rect, dev, enc)
	case opBlit:
		op.canvas.Blit(op.src, op.dst, enc)
	}
}
