// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !goupil_f32

// package numerics implements the scalar type and small vector algebra
// shared by every other package of the transport engine.
package numerics

// Float is the scalar floating point type used throughout the transport
// engine. Build with -tags goupil_f32 to switch every array crossing the
// batch boundary to single precision.
type Float = float64
