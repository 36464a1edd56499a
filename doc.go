// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package easygpu is a typed resource and render-command layer over WebGPU,
// based on https://github.com/cogentcore/webgpu.
//
// It gives callers typed handles for GPU memory objects (buffers, textures,
// samplers), compiled pipelines, and bound resource sets, plus a small
// command-recording model for issuing clear / fill / transfer / blit
// operations and render passes against a frame.
//
// A [Device] is the sole owner of the driver connection and the optional
// presentation surface; every other object is created through its factory
// methods. A [Renderer] wraps a Device with the per-frame lifecycle:
// acquire a [RenderFrame], record passes into a [Frame], update pipeline
// uniforms, present. Off-screen callers can instead submit a batch of
// canvas [Op] values, or read pixels back asynchronously from a
// [Framebuffer].
//
// Rectangles handed to Transfer use the usual image convention with the
// origin at the top left; the Y flip required by the driver's copy
// addressing is applied internally.
package easygpu
