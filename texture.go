// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is a GPU image resource with an associated view and
// CPU-visible shape metadata.
//
// Rectangles passed to Transfer use the usual image convention with the
// origin at the top left and Y increasing downward. The driver's copy
// addressing runs the other way for this system's chosen up axis, so
// Transfer mirrors the destination vertically; from the caller's point
// of view, top-left addressing just works.
type Texture struct {
	// Format & size of the texture.
	Format TextureFormat

	// WebGPU texture handle, in device memory.
	texture *wgpu.Texture

	// WebGPU texture view.
	view *wgpu.TextureView
}

// Size returns the texture size in pixels.
func (tx *Texture) Size() image.Point {
	return tx.Format.Size
}

// Area returns the number of pixels in the texture.
func (tx *Texture) Area() int {
	return tx.Format.Area()
}

// View returns the texture's view, for pass attachment or binding.
func (tx *Texture) View() *wgpu.TextureView {
	return tx.view
}

// Texture returns the underlying driver texture.
func (tx *Texture) Texture() *wgpu.Texture {
	return tx.texture
}

// Release frees the driver-side view and texture.
func (tx *Texture) Release() {
	if tx.view != nil {
		tx.view.Release()
		tx.view = nil
	}
	if tx.texture != nil {
		tx.texture.Release()
		tx.texture = nil
	}
}

func (tx *Texture) bindGroupEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding:     index,
		TextureView: tx.view,
	}
}

// Clear fills the entire texture with one repeated texel. It materializes
// a full-size CPU buffer of the texel and delegates to [Texture.Fill];
// correctness, not speed, is the contract.
func (tx *Texture) Clear(color Rgba8, dev *Device, enc *wgpu.CommandEncoder) {
	texels := make([]Rgba8, tx.Area())
	for i := range texels {
		texels[i] = color
	}
	tx.Fill(texels, dev, enc)
}

// Fill uploads texels over the texture's full extent.
// len(texels) must be at least the texture's area.
func (tx *Texture) Fill(texels []Rgba8, dev *Device, enc *wgpu.CommandEncoder) {
	if len(texels) < tx.Area() {
		panic("easygpu: incorrect length for texel buffer")
	}

	buf, err := dev.createBufferFromBytes(wgpu.ToBytes(texels), wgpu.BufferUsageCopySrc)
	if err != nil {
		Logger().Error("easygpu: texture fill buffer", "err", err)
		return
	}

	height := uint32(tx.Format.Size.Y)
	tx.copyFromBuffer(image.Point{}, tx.Format.Extent3D(),
		uint32(len(texels))/height*4, buf, enc)
}

// Transfer copies texels into a sub-rectangle of the texture. rect may
// have any corner ordering; it is normalized to a canonical rectangle
// and then mirrored vertically to land where top-left-origin addressing
// says it should. The normalized rectangle's area must not exceed the
// texture's area, and len(texels) must be an exact multiple of the
// rectangle's row count.
func (tx *Texture) Transfer(texels []Rgba8, rect image.Rectangle, dev *Device, enc *wgpu.CommandEncoder) {
	origin, size := transferDestination(tx.Format.Size.Y, rect)

	if size.X*size.Y > tx.Area() {
		panic("easygpu: transfer size must be <= texture size")
	}

	buf, err := dev.createBufferFromBytes(wgpu.ToBytes(texels), wgpu.BufferUsageCopySrc)
	if err != nil {
		Logger().Error("easygpu: texture transfer buffer", "err", err)
		return
	}

	extent := wgpu.Extent3D{
		Width:              uint32(size.X),
		Height:             uint32(size.Y),
		DepthOrArrayLayers: 1,
	}
	tx.copyFromBuffer(origin, extent, uint32(len(texels))/uint32(size.Y)*4, buf, enc)
}

// Blit records a GPU-side copy of the src rectangle onto the dst
// rectangle of the same texture, with no coordinate flip.
//
// TODO: the area guard below looks inverted: equal-area copies are the
// common case for region shuffles, yet they are the ones rejected.
// Existing callers depend on the current behavior, so changing it needs
// a survey of call sites first.
func (tx *Texture) Blit(src, dst image.Rectangle, enc *wgpu.CommandEncoder) {
	if src.Dx()*src.Dy() == dst.Dx()*dst.Dy() {
		panic("easygpu: source and destination rectangles must be of the same size")
	}

	enc.CopyTextureToTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: uint32(src.Min.X), Y: uint32(src.Min.Y)},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyTexture{
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: uint32(dst.Min.X), Y: uint32(dst.Min.Y)},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.Extent3D{
			Width:              uint32(src.Dx()),
			Height:             uint32(src.Dy()),
			DepthOrArrayLayers: 1,
		},
	)
}

// transferDestination normalizes a top-left-origin rectangle of any
// corner ordering to a canonical min-origin, positive-size rectangle
// and mirrors its row origin vertically into the driver's copy space
// for a texture of the given height.
func transferDestination(texHeight int, rect image.Rectangle) (origin, size image.Point) {
	dst := rect.Canon()
	origin = image.Point{
		X: dst.Min.X,
		Y: texHeight - dst.Max.Y,
	}
	return origin, dst.Size()
}

// copyFromBuffer records a buffer-to-texture copy over the given extent,
// starting at the given driver-space origin.
func (tx *Texture) copyFromBuffer(origin image.Point, extent wgpu.Extent3D, bytesPerRow uint32, buf *wgpu.Buffer, enc *wgpu.CommandEncoder) {
	enc.CopyBufferToTexture(
		&wgpu.ImageCopyBuffer{
			Buffer: buf,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  bytesPerRow,
				RowsPerImage: extent.Height,
			},
		},
		&wgpu.ImageCopyTexture{
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: uint32(origin.X), Y: uint32(origin.Y)},
			Aspect:   wgpu.TextureAspectAll,
		},
		&extent,
	)
}

// String returns a human-readable description for debugging.
func (tx *Texture) String() string {
	return fmt.Sprintf("Texture{%v}", tx.Format)
}
