// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	theInstance  *wgpu.Instance
	instanceOnce sync.Once
)

// Instance returns the shared WebGPU instance, creating it on first use.
// All surfaces and adapters for this process are requested through it.
func Instance() *wgpu.Instance {
	instanceOnce.Do(func() {
		theInstance = wgpu.CreateInstance(nil)
	})
	return theInstance
}
