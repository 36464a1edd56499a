// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexBuffer is an immutable GPU buffer of vertices.
type VertexBuffer struct {
	buffer *wgpu.Buffer

	// Size is the buffer length in bytes.
	Size uint64

	// Count is the number of vertices in the buffer.
	Count uint32
}

// Buffer returns the underlying driver buffer.
func (vb *VertexBuffer) Buffer() *wgpu.Buffer {
	return vb.buffer
}

// Release frees the driver-side buffer.
func (vb *VertexBuffer) Release() {
	if vb.buffer != nil {
		vb.buffer.Release()
		vb.buffer = nil
	}
}

// IndexBuffer is an immutable GPU buffer of 16-bit indices.
type IndexBuffer struct {
	buffer *wgpu.Buffer

	// Elements is the number of indices in the buffer.
	Elements uint32
}

// Buffer returns the underlying driver buffer.
func (ib *IndexBuffer) Buffer() *wgpu.Buffer {
	return ib.buffer
}

// Release frees the driver-side buffer.
func (ib *IndexBuffer) Release() {
	if ib.buffer != nil {
		ib.buffer.Release()
		ib.buffer = nil
	}
}

// UniformBuffer is a GPU buffer of shader uniforms. Its contents may be
// rewritten in place through [Device.UpdateUniformBuffer]; the new payload
// must keep the byte layout the buffer was created with. That contract is
// the caller's to uphold and is not checked here.
type UniformBuffer struct {
	buffer *wgpu.Buffer

	// Size is the byte size of one element.
	Size int

	// Count is the number of elements in the buffer.
	Count int
}

// Buffer returns the underlying driver buffer.
func (ub *UniformBuffer) Buffer() *wgpu.Buffer {
	return ub.buffer
}

// Release frees the driver-side buffer.
func (ub *UniformBuffer) Release() {
	if ub.buffer != nil {
		ub.buffer.Release()
		ub.buffer = nil
	}
}

func (ub *UniformBuffer) bindGroupEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: index,
		Buffer:  ub.buffer,
		Offset:  0,
		Size:    wgpu.WholeSize,
	}
}

// bufferMapAsyncError returns an error if the map status is not success.
func bufferMapAsyncError(status wgpu.BufferMapAsyncStatus) error {
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return errors.New("easygpu: BufferMapAsync was not successful")
	}
	return nil
}

// bufferReadSync maps the given buffer for reading and blocks, polling
// the device, until the driver signals map completion. The buffer's
// mapped range is valid once this returns without error.
func bufferReadSync(dev *Device, size int, buffer *wgpu.Buffer) error {
	done := false
	var status wgpu.BufferMapAsyncStatus
	err := buffer.MapAsync(wgpu.MapModeRead, 0, uint64(size), func(s wgpu.BufferMapAsyncStatus) {
		status = s
		done = true
	})
	if err != nil {
		return err
	}
	for !done {
		dev.Poll(true)
	}
	return bufferMapAsyncError(status)
}
