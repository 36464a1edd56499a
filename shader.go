// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import "github.com/cogentcore/webgpu/wgpu"

// Shader is a compiled WGSL shader module. The source text is opaque to
// this layer; its vertex and fragment entry points must be named
// vs_main and fs_main.
type Shader struct {
	module *wgpu.ShaderModule
}

// Module returns the underlying driver shader module.
func (s *Shader) Module() *wgpu.ShaderModule {
	return s.module
}

// Release frees the driver-side module.
func (s *Shader) Release() {
	if s.module != nil {
		s.module.Release()
		s.module = nil
	}
}
