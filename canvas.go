// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Canvas is the capability to be cleared, bulk-filled, rectangle-
// transferred into, or blitted within. It is implemented by the
// renderable image-like targets: [Texture] and [Framebuffer].
//
// Texels are 4-byte values in the target's own channel order; for a
// BGRA-format framebuffer the bytes of each [Rgba8] are interpreted
// as BGRA.
type Canvas interface {
	// Clear fills the whole target with one repeated texel.
	Clear(color Rgba8, dev *Device, enc *wgpu.CommandEncoder)

	// Fill uploads texels over the target's full extent.
	Fill(texels []Rgba8, dev *Device, enc *wgpu.CommandEncoder)

	// Transfer copies texels into a sub-rectangle given in
	// top-left-origin coordinates.
	Transfer(texels []Rgba8, rect image.Rectangle, dev *Device, enc *wgpu.CommandEncoder)

	// Blit copies the src rectangle onto the dst rectangle GPU-side.
	Blit(src, dst image.Rectangle, enc *wgpu.CommandEncoder)
}
