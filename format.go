// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat describes the CPU-visible shape of a Texture:
// its size in pixels, WebGPU pixel format, and sample count.
type TextureFormat struct {
	// Size of the texture in pixels.
	Size image.Point

	// Texture format. RGBA8UnormSrgb is the default.
	Format wgpu.TextureFormat

	// Samples is the multisample count, 1 for no multisampling.
	Samples uint32
}

// NewTextureFormat returns a TextureFormat with the given size and format
// and a sample count of 1.
func NewTextureFormat(size image.Point, format wgpu.TextureFormat) TextureFormat {
	return TextureFormat{Size: size, Format: format, Samples: 1}
}

// String returns a human-readable version of the format.
func (tf TextureFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %d  MultiSample: %d", tf.Size, tf.Format, tf.Samples)
}

// Size32 returns the size as uint32 values.
func (tf TextureFormat) Size32() (width, height uint32) {
	return uint32(tf.Size.X), uint32(tf.Size.Y)
}

// Area returns the number of pixels in the texture.
func (tf TextureFormat) Area() int {
	return tf.Size.X * tf.Size.Y
}

// Bounds returns the rectangle defining this texture: (0,0)-(w,h).
func (tf TextureFormat) Bounds() image.Rectangle {
	return image.Rectangle{Max: tf.Size}
}

// Extent3D returns the size as a WebGPU copy extent, always one layer deep.
func (tf TextureFormat) Extent3D() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              uint32(tf.Size.X),
		Height:             uint32(tf.Size.Y),
		DepthOrArrayLayers: 1,
	}
}

// BytesPerPixel returns the number of bytes one pixel occupies in host
// memory, or 0 for formats with no fixed host representation.
func (tf TextureFormat) BytesPerPixel() int {
	return textureFormatSizes[tf.Format]
}

// Stride returns the number of bytes per unpadded texture row.
func (tf TextureFormat) Stride() int {
	return tf.BytesPerPixel() * tf.Size.X
}

// textureFormatSizes gives the host byte size per pixel for the formats
// this layer creates.
var textureFormatSizes = map[wgpu.TextureFormat]int{
	wgpu.TextureFormatRGBA8Unorm:          4,
	wgpu.TextureFormatRGBA8UnormSrgb:      4,
	wgpu.TextureFormatBGRA8Unorm:          4,
	wgpu.TextureFormatBGRA8UnormSrgb:      4,
	wgpu.TextureFormatR8Unorm:             1,
	wgpu.TextureFormatR16Float:            2,
	wgpu.TextureFormatRG16Float:           4,
	wgpu.TextureFormatRGBA16Float:         8,
	wgpu.TextureFormatRGBA32Float:         16,
	wgpu.TextureFormatDepth32Float:        4,
	wgpu.TextureFormatDepth24PlusStencil8: 4,
}

// TextureBufferDims gives the buffer row sizes needed to hold a texture
// of a given size in a mappable buffer, where the driver requires each
// row to be padded to a fixed byte alignment.
type TextureBufferDims struct {
	Width           uint64
	Height          uint64
	UnpaddedRowSize uint64
	PaddedRowSize   uint64
}

func NewTextureBufferDims(size image.Point) *TextureBufferDims {
	td := &TextureBufferDims{}
	td.Set(size)
	return td
}

func (td *TextureBufferDims) Set(size image.Point) {
	td.Width = uint64(size.X)
	td.Height = uint64(size.Y)
	const bytesPerPixel = 4
	td.UnpaddedRowSize = td.Width * bytesPerPixel
	align := uint64(wgpu.CopyBytesPerRowAlignment)
	padding := (align - td.UnpaddedRowSize%align) % align
	td.PaddedRowSize = td.UnpaddedRowSize + padding
}

// PaddedSize returns the total padded size of the data.
func (td *TextureBufferDims) PaddedSize() uint64 {
	return td.PaddedRowSize * td.Height
}

// UnpaddedSize returns the total unpadded size of the data.
func (td *TextureBufferDims) UnpaddedSize() uint64 {
	return td.UnpaddedRowSize * td.Height
}

// HasNoPadding returns true if the unpadded and padded row sizes
// are the same.
func (td *TextureBufferDims) HasNoPadding() bool {
	return td.UnpaddedRowSize == td.PaddedRowSize
}
