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

func testRenderer(t *testing.T) *Renderer {
	adapter, err := Instance().RequestAdapter(&wgpu.RequestAdapterOptions{})
	require.NoError(t, err)
	r, err := NewRendererBuilder().WithOffscreen(adapter, 1).Build()
	require.NoError(t, err)
	return r
}

// readBuffer copies a GPU buffer into a staging buffer and maps it back.
func readBuffer(t *testing.T, dev *Device, src *wgpu.Buffer, size int) []byte {
	staging, err := dev.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:  uint64(size),
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	require.NoError(t, err)
	defer staging.Release()

	enc, err := dev.CommandEncoder()
	require.NoError(t, err)
	enc.CopyBufferToBuffer(src, 0, staging, 0, uint64(size))
	cmd, err := enc.Finish(nil)
	require.NoError(t, err)
	enc.Release()
	dev.Submit(cmd)

	require.NoError(t, bufferReadSync(dev, size, staging))
	view := staging.GetMappedRange(0, uint(size))
	out := make([]byte, size)
	copy(out, view)
	staging.Unmap()
	return out
}

func TestClearTransferReadback(t *testing.T) {
	t.Skip("Need software GPU on CI")
	r := testRenderer(t)
	defer r.Device.Release()

	fb, err := r.Framebuffer(image.Pt(4, 4), wgpu.TextureFormatBGRA8Unorm)
	require.NoError(t, err)
	defer fb.Release()

	border := Rgba8{R: 10, G: 20, B: 30, A: 255}
	center := Rgba8{R: 200, G: 100, B: 50, A: 255}
	centerTexels := []Rgba8{center, center, center, center}

	err = r.Submit([]Op{
		Clear(fb, border),
		Transfer(fb, centerTexels, image.Rect(1, 1, 3, 3)),
	})
	require.NoError(t, err)

	var got []Bgra8
	err = r.Read(fb, func(data []Bgra8) {
		got = append(got, data...)
	})
	require.NoError(t, err)
	require.Len(t, got, 16)

	// texels were written raw, so compare raw byte layouts
	asBgra := func(c Rgba8) Bgra8 {
		return Bgra8{B: c.R, G: c.G, R: c.B, A: c.A}
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := asBgra(border)
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = asBgra(center)
			}
			assert.Equal(t, want, got[y*4+x], "texel (%d,%d)", x, y)
		}
	}
}

func TestPassClearReadback(t *testing.T) {
	t.Skip("Need software GPU on CI")
	r := testRenderer(t)
	defer r.Device.Release()

	fb, err := r.Framebuffer(image.Pt(8, 8), wgpu.TextureFormatBGRA8Unorm)
	require.NoError(t, err)
	defer fb.Release()

	frame, err := r.Frame()
	require.NoError(t, err)
	pass := frame.Pass(ClearPass(NewRgba(1, 0, 0, 1)), fb)
	pass.End()
	require.NoError(t, r.Present(frame))

	err = r.Read(fb, func(data []Bgra8) {
		for i, px := range data {
			assert.Equal(t, uint8(255), px.R, "pixel %d", i)
			assert.Equal(t, uint8(0), px.G, "pixel %d", i)
			assert.Equal(t, uint8(0), px.B, "pixel %d", i)
			assert.Equal(t, uint8(255), px.A, "pixel %d", i)
		}
	})
	require.NoError(t, err)
}

func TestUniformRoundTrip(t *testing.T) {
	t.Skip("Need software GPU on CI")
	r := testRenderer(t)
	defer r.Device.Release()

	initial := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	buf, err := CreateUniformBuffer(r.Device, initial[:])
	require.NoError(t, err)
	defer buf.Release()
	assert.Equal(t, 4, buf.Size)
	assert.Equal(t, 16, buf.Count)

	payload := [16]float32{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}
	require.NoError(t, WriteUniforms(r.Device, buf, payload[:]))

	got := readBuffer(t, r.Device, buf.Buffer(), 64)
	assert.Equal(t, wgpu.ToBytes(payload[:]), got)
}

// constantsPipeline carries one matrix uniform; it reports an update
// only when marked dirty.
type constantsPipeline struct {
	PipelineCore
	payload [16]float32
	dirty   bool
}

func (p *constantsPipeline) Description() PipelineDescription {
	return PipelineDescription{
		VertexLayout: []VertexFormat{Floatx3, UBytex4},
		PipelineLayout: []Set{
			{{Binding: BindingTypeUniformBuffer, Stage: wgpu.ShaderStageVertex}},
		},
	}
}

func (p *constantsPipeline) Setup(pip *Pipeline, dev *Device) error {
	p.Pipeline = pip
	return nil
}

func (p *constantsPipeline) Prepare(context any) (*UniformBuffer, []byte, bool) {
	if !p.dirty {
		return nil, nil, false
	}
	return p.Uniforms, wgpu.ToBytes(p.payload[:]), true
}

func TestPrepareIdempotence(t *testing.T) {
	t.Skip("Need software GPU on CI")
	r := testRenderer(t)
	defer r.Device.Release()

	pip := &constantsPipeline{payload: ScreenTransformation(image.Pt(100, 50)), dirty: true}
	buf, err := CreateUniformBuffer(r.Device, make([]float32, 16))
	require.NoError(t, err)
	defer buf.Release()
	pip.Uniforms = buf

	// applying the same prepare twice must equal applying it once
	require.NoError(t, r.UpdatePipeline(pip, nil))
	require.NoError(t, r.UpdatePipeline(pip, nil))

	got := readBuffer(t, r.Device, buf.Buffer(), 64)
	want := pip.payload
	assert.Equal(t, wgpu.ToBytes(want[:]), got)

	pip.dirty = false
	_, _, ok := pip.Prepare(nil)
	assert.False(t, ok)
}

func TestFillBoundary(t *testing.T) {
	t.Skip("Need software GPU on CI")
	r := testRenderer(t)
	defer r.Device.Release()

	fb, err := r.Framebuffer(image.Pt(2, 2), wgpu.TextureFormatBGRA8Unorm)
	require.NoError(t, err)
	defer fb.Release()

	enc, err := r.Device.CommandEncoder()
	require.NoError(t, err)

	// one texel short of the area is a contract violation
	short := make([]Rgba8, 3)
	assert.Panics(t, func() {
		fb.Fill(short, r.Device, enc)
	})

	// exactly the area succeeds
	exact := make([]Rgba8, 4)
	for i := range exact {
		exact[i] = Rgba8{R: uint8(i), A: 255}
	}
	fb.Fill(exact, r.Device, enc)
	cmd, err := enc.Finish(nil)
	require.NoError(t, err)
	enc.Release()
	r.Device.Submit(cmd)

	err = r.Read(fb, func(data []Bgra8) {
		require.Len(t, data, 4)
		for i, px := range data {
			assert.Equal(t, uint8(i), px.B, "texel %d", i)
		}
	})
	require.NoError(t, err)
}

func TestBlitEqualAreaRejected(t *testing.T) {
	t.Skip("Need software GPU on CI")
	r := testRenderer(t)
	defer r.Device.Release()

	tx, err := r.Texture(image.Pt(8, 8), wgpu.TextureFormatRGBA8Unorm,
		wgpu.TextureUsageCopySrc|wgpu.TextureUsageCopyDst, false)
	require.NoError(t, err)
	defer tx.Release()

	enc, err := r.Device.CommandEncoder()
	require.NoError(t, err)
	defer enc.Release()

	assert.Panics(t, func() {
		tx.Blit(image.Rect(0, 0, 2, 2), image.Rect(4, 4, 6, 6), enc)
	})
}

func TestBindingGroupSlotCount(t *testing.T) {
	t.Skip("Need software GPU on CI")
	r := testRenderer(t)
	defer r.Device.Release()

	layout, err := r.Device.CreateBindingGroupLayout(0, []Binding{
		{Binding: BindingTypeUniformBuffer, Stage: wgpu.ShaderStageVertex},
		{Binding: BindingTypeUniformBuffer, Stage: wgpu.ShaderStageFragment},
	})
	require.NoError(t, err)
	defer layout.Release()
	assert.Equal(t, 2, layout.Size)
	assert.Equal(t, uint32(0), layout.SetIndex)

	buf, err := CreateUniformBuffer(r.Device, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	defer buf.Release()

	assert.Panics(t, func() {
		r.Device.CreateBindingGroup(layout, buf)
	})

	group, err := r.Device.CreateBindingGroup(layout, buf, buf)
	require.NoError(t, err)
	group.Release()
}
