// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import "github.com/cogentcore/webgpu/wgpu"

// Sampler controls how textures are sampled in a shader. Created
// through [Device.CreateSampler]; clamps to edge on all axes.
type Sampler struct {
	sampler *wgpu.Sampler
}

// Sampler returns the underlying driver sampler.
func (s *Sampler) Sampler() *wgpu.Sampler {
	return s.sampler
}

// Release frees the driver-side sampler.
func (s *Sampler) Release() {
	if s.sampler != nil {
		s.sampler.Release()
		s.sampler = nil
	}
}

func (s *Sampler) bindGroupEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: index,
		Sampler: s.sampler,
	}
}
