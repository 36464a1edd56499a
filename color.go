// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// Rgba is a normalized floating point color, with each component in [0, 1].
type Rgba struct {
	R, G, B, A float32
}

// NewRgba returns a normalized color from float components in [0, 1].
func NewRgba(r, g, b, a float32) Rgba {
	return Rgba{R: r, G: g, B: b, A: a}
}

// Rgba8 returns the color quantized to 8 bits per component.
func (c Rgba) Rgba8() Rgba8 {
	return Rgba8{
		R: compToUint8(c.R),
		G: compToUint8(c.G),
		B: compToUint8(c.B),
		A: compToUint8(c.A),
	}
}

// wgpuColor returns the color widened to the driver's float64 clear color.
func (c Rgba) wgpuColor() wgpu.Color {
	return wgpu.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// Rgba8 is a 4-byte color texel in R, G, B, A byte order, matching the
// RGBA8 texture formats.
type Rgba8 struct {
	R, G, B, A uint8
}

// NewRgba8 returns an 8-bit color from byte components.
func NewRgba8(r, g, b, a uint8) Rgba8 {
	return Rgba8{R: r, G: g, B: b, A: a}
}

// Rgba returns the color as normalized floats.
func (c Rgba8) Rgba() Rgba {
	return Rgba{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// Bgra8 is a 4-byte color texel in B, G, R, A byte order, the layout used
// by the BGRA8 surface formats and therefore by framebuffer readback.
type Bgra8 struct {
	B, G, R, A uint8
}

// Rgba8 returns the texel with the R and B channels swapped back into
// RGBA order.
func (c Bgra8) Rgba8() Rgba8 {
	return Rgba8{R: c.R, G: c.G, B: c.B, A: c.A}
}

// compToUint8 converts a normalized float component to a byte,
// clamping out-of-range values.
func compToUint8(val float32) uint8 {
	if val > 1 {
		val = 1
	}
	if val < 0 {
		val = 0
	}
	return uint8(math.Round(float64(val * 255)))
}

// SRGBToLinearComp converts an sRGB color component to linear space
// (removes gamma).
func SRGBToLinearComp(srgb float32) float32 {
	if srgb <= 0.04045 {
		return srgb / 12.92
	}
	return float32(math.Pow(float64((srgb+0.055)/1.055), 2.4))
}

// SRGBFromLinearComp converts a linear color component to sRGB space
// (adds gamma).
func SRGBFromLinearComp(lin float32) float32 {
	if lin <= 0.0031308 {
		return 12.92 * lin
	}
	return float32(1.055*math.Pow(float64(lin), 1/2.4) - 0.055)
}

// SRGBToLinear converts the color channels of c to linear space,
// leaving alpha unchanged.
func (c Rgba) SRGBToLinear() Rgba {
	return Rgba{
		R: SRGBToLinearComp(c.R),
		G: SRGBToLinearComp(c.G),
		B: SRGBToLinearComp(c.B),
		A: c.A,
	}
}

// SRGBFromLinear converts the color channels of c from linear to sRGB
// space, leaving alpha unchanged.
func (c Rgba) SRGBFromLinear() Rgba {
	return Rgba{
		R: SRGBFromLinearComp(c.R),
		G: SRGBFromLinearComp(c.G),
		B: SRGBFromLinearComp(c.B),
		A: c.A,
	}
}

// bgra8FromBytes reinterprets raw mapped buffer bytes as Bgra8 texels.
// len(b) must be a multiple of 4 and non-zero.
func bgra8FromBytes(b []byte) []Bgra8 {
	return unsafe.Slice((*Bgra8)(unsafe.Pointer(&b[0])), len(b)/4)
}
