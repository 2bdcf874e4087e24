// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build goupil_f32

package numerics

// Float is the scalar floating point type used throughout the transport
// engine, single precision under the goupil_f32 build tag.
type Float = float32
