// Copyright (c) 2025, The easygpu Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package easygpu

import "image"

// ScreenTransformation returns a column-major orthographic projection
// mapping pixel coordinates with the origin at the top left onto clip
// space, for a target of the given size. Suitable as the ortho uniform
// of a 2D pipeline.
func ScreenTransformation(size image.Point) [16]float32 {
	w := float32(size.X)
	h := float32(size.Y)
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// IdentityTransformation is the identity matrix, the usual initial
// payload for a transform uniform.
func IdentityTransformation() [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
