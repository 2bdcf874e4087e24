// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rng specifies the random-number-stream contract: an external
// collaborator producing uniform floats in [0,1).
package rng

import (
	"math/rand"

	"github.com/kvernet/goupil/numerics"
)

// Stream produces uniform floats in [0,1). A batch call owns its Stream
// for the duration of the batch; no other caller may draw from it
// concurrently.
type Stream interface {
	Uniform() numerics.Float
}

// DefaultStream is a minimal math/rand-backed Stream, suitable for tests
// and as a CLI default. Deterministic given its seed.
type DefaultStream struct {
	seed  int64
	drawn int64
	src   *rand.Rand
}

// NewDefaultStream returns a stream seeded deterministically
func NewDefaultStream(seed int64) *DefaultStream {
	return &DefaultStream{seed: seed, src: rand.New(rand.NewSource(seed))}
}

// NewDefaultStreamAt reconstructs a stream positioned after `drawn` prior
// draws from the given seed, by replaying those draws against a freshly
// seeded source.
func NewDefaultStreamAt(seed, drawn int64) *DefaultStream {
	o := NewDefaultStream(seed)
	for i := int64(0); i < drawn; i++ {
		o.src.Float64()
	}
	o.drawn = drawn
	return o
}

// Seed returns the seed this stream was constructed with
func (o *DefaultStream) Seed() int64 { return o.seed }

// Drawn returns the number of values drawn so far
func (o *DefaultStream) Drawn() int64 { return o.drawn }

// Uniform implements Stream
func (o *DefaultStream) Uniform() numerics.Float {
	o.drawn++
	return numerics.Float(o.src.Float64())
}
