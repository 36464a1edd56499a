// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"image"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayout(t *testing.T) {
	vl := NewVertexLayout(Floatx3, UBytex4)
	assert.Equal(t, 16, vl.Stride())

	attrs := vl.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, uint64(0), attrs[0].Offset)
	assert.Equal(t, uint32(0), attrs[0].ShaderLocation)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, attrs[0].Format)
	assert.Equal(t, uint64(12), attrs[1].Offset)
	assert.Equal(t, uint32(1), attrs[1].ShaderLocation)
	assert.Equal(t, wgpu.VertexFormatUnorm8x4, attrs[1].Format)

	wl := vl.wgpuLayout()
	assert.Equal(t, uint64(16), wl.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, wl.StepMode)
}

func TestVertexLayoutCumulativeOffsets(t *testing.T) {
	vl := NewVertexLayout(Float, Floatx2, Floatx4, UBytex4)
	assert.Equal(t, 4+8+16+4, vl.Stride())

	attrs := vl.Attributes()
	require.Len(t, attrs, 4)
	offsets := []uint64{0, 4, 12, 28}
	for i, at := range attrs {
		assert.Equal(t, offsets[i], at.Offset)
		assert.Equal(t, uint32(i), at.ShaderLocation)
	}
}

func TestVertexFormatByteSize(t *testing.T) {
	assert.Equal(t, 4, Float.ByteSize())
	assert.Equal(t, 8, Floatx2.ByteSize())
	assert.Equal(t, 12, Floatx3.ByteSize())
	assert.Equal(t, 16, Floatx4.ByteSize())
	assert.Equal(t, 4, UBytex4.ByteSize())
}

func TestTransferDestination(t *testing.T) {
	// logical rect (1,1)-(3,3) on a 4x4 texture lands one row up from
	// the bottom in driver space: y = 4 - 3 = 1
	origin, size := transferDestination(4, image.Rect(1, 1, 3, 3))
	assert.Equal(t, image.Pt(1, 1), origin)
	assert.Equal(t, image.Pt(2, 2), size)

	// top row stays at the top of the rendered result
	origin, size = transferDestination(8, image.Rect(0, 0, 8, 2))
	assert.Equal(t, image.Pt(0, 6), origin)
	assert.Equal(t, image.Pt(8, 2), size)

	// bottom row
	origin, _ = transferDestination(8, image.Rect(0, 6, 8, 8))
	assert.Equal(t, image.Pt(0, 0), origin)
}

func TestTransferDestinationCornerOrdering(t *testing.T) {
	want, wantSize := transferDestination(16, image.Rect(2, 3, 7, 11))
	rects := []image.Rectangle{
		{Min: image.Pt(7, 11), Max: image.Pt(2, 3)},
		{Min: image.Pt(2, 11), Max: image.Pt(7, 3)},
		{Min: image.Pt(7, 3), Max: image.Pt(2, 11)},
	}
	for _, r := range rects {
		origin, size := transferDestination(16, r)
		assert.Equal(t, want, origin, "rect %v", r)
		assert.Equal(t, wantSize, size, "rect %v", r)
		assert.True(t, size.X >= 0 && size.Y >= 0)
		assert.Equal(t, 5*8, size.X*size.Y)
	}
}

func TestBlendingState(t *testing.T) {
	st := DefaultBlending().wgpuState()
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, st.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, st.Color.DstFactor)
	assert.Equal(t, wgpu.BlendOperationAdd, st.Color.Operation)
	// same equation on both channels
	assert.Equal(t, st.Color, st.Alpha)

	st = ConstantBlending().wgpuState()
	assert.Equal(t, wgpu.BlendFactorOne, st.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorZero, st.Color.DstFactor)
	assert.Equal(t, st.Color, st.Alpha)
}

func TestBindingLayoutEntries(t *testing.T) {
	e := BindingTypeUniformBuffer.layoutEntry(0, wgpu.ShaderStageVertex)
	assert.Equal(t, uint32(0), e.Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, e.Visibility)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, e.Buffer.Type)
	assert.False(t, e.Buffer.HasDynamicOffset)

	e = BindingTypeUniformBufferDynamic.layoutEntry(1, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	assert.Equal(t, uint32(1), e.Binding)
	assert.True(t, e.Buffer.HasDynamicOffset)

	e = BindingTypeSampler.layoutEntry(2, wgpu.ShaderStageFragment)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, e.Sampler.Type)

	e = BindingTypeSampledTexture.layoutEntry(3, wgpu.ShaderStageFragment)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, e.Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, e.Texture.ViewDimension)
	assert.False(t, e.Texture.Multisampled)

	e = BindingTypeSampledTextureMultisampled.layoutEntry(4, wgpu.ShaderStageFragment)
	assert.True(t, e.Texture.Multisampled)
}

func TestColorConversions(t *testing.T) {
	c := NewRgba(1, 0.5, 0, 1).Rgba8()
	assert.Equal(t, Rgba8{R: 255, G: 128, B: 0, A: 255}, c)

	// out of range clamps
	assert.Equal(t, Rgba8{R: 255, A: 0}, NewRgba(2, 0, -1, -0.5).Rgba8())

	f := NewRgba8(255, 0, 255, 255).Rgba()
	assert.InDelta(t, 1, f.R, 1e-6)
	assert.InDelta(t, 0, f.G, 1e-6)

	b := Bgra8{B: 10, G: 20, R: 30, A: 40}
	assert.Equal(t, Rgba8{R: 30, G: 20, B: 10, A: 40}, b.Rgba8())
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.01, 0.25, 0.5, 0.75, 1} {
		lin := SRGBToLinearComp(v)
		assert.InDelta(t, v, SRGBFromLinearComp(lin), 1e-5)
	}
	c := NewRgba(0.2, 0.4, 0.8, 0.5)
	rt := c.SRGBToLinear().SRGBFromLinear()
	assert.InDelta(t, c.R, rt.R, 1e-5)
	assert.InDelta(t, c.G, rt.G, 1e-5)
	assert.InDelta(t, c.B, rt.B, 1e-5)
	assert.Equal(t, c.A, rt.A)
}

func TestScreenTransformation(t *testing.T) {
	m := ScreenTransformation(image.Pt(640, 480))

	mul := func(x, y float32) (cx, cy float32) {
		cx = m[0]*x + m[4]*y + m[12]
		cy = m[1]*x + m[5]*y + m[13]
		return
	}

	// top left of the screen is the top left of clip space
	cx, cy := mul(0, 0)
	assert.InDelta(t, -1, cx, 1e-6)
	assert.InDelta(t, 1, cy, 1e-6)

	cx, cy = mul(640, 480)
	assert.InDelta(t, 1, cx, 1e-6)
	assert.InDelta(t, -1, cy, 1e-6)

	cx, cy = mul(320, 240)
	assert.InDelta(t, 0, cx, 1e-6)
	assert.InDelta(t, 0, cy, 1e-6)
}

func TestTextureBufferDims(t *testing.T) {
	td := NewTextureBufferDims(image.Pt(4, 4))
	assert.Equal(t, uint64(16), td.UnpaddedRowSize)
	assert.Equal(t, uint64(wgpu.CopyBytesPerRowAlignment), td.PaddedRowSize)
	assert.False(t, td.HasNoPadding())
	assert.Equal(t, uint64(64), td.UnpaddedSize())

	td = NewTextureBufferDims(image.Pt(64, 2))
	assert.Equal(t, uint64(256), td.UnpaddedRowSize)
	assert.True(t, td.HasNoPadding())
	assert.Equal(t, td.PaddedSize(), td.UnpaddedSize())
}

func TestTextureFormat(t *testing.T) {
	tf := NewTextureFormat(image.Pt(8, 4), wgpu.TextureFormatBGRA8Unorm)
	assert.Equal(t, 32, tf.Area())
	assert.Equal(t, 4, tf.BytesPerPixel())
	assert.Equal(t, 32, tf.Stride())
	assert.Equal(t, image.Rect(0, 0, 8, 4), tf.Bounds())
	ex := tf.Extent3D()
	assert.Equal(t, uint32(8), ex.Width)
	assert.Equal(t, uint32(4), ex.Height)
	assert.Equal(t, uint32(1), ex.DepthOrArrayLayers)
}
