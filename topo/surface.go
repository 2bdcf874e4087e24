// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"

	"github.com/kvernet/goupil/numerics"
)

// Surface is an ordered composition of shared Map handles plus a scalar
// offset. Maps are never owned or mutated by the surface; their lifetime
// is the longest holder's.
type Surface struct {
	maps   []*Map
	offset numerics.Float
}

// NewSurface builds a surface from an ordered list of maps and an offset.
// A single map can be promoted implicitly: NewSurface(0, m) is a one-map
// surface with zero offset.
func NewSurface(offset numerics.Float, maps ...*Map) *Surface {
	cp := make([]*Map, len(maps))
	copy(cp, maps)
	return &Surface{maps: cp, offset: offset}
}

// Maps returns the surface's component maps, in evaluation order
func (o *Surface) Maps() []*Map {
	return o.maps
}

// Offset returns the surface's additive offset
func (o *Surface) Offset() numerics.Float {
	return o.offset
}

// Z evaluates z(x,y) as offset + max_i map_i(x,y) over maps defined at
// (x,y); ok is false if no component map is defined there.
func (o *Surface) Z(x, y numerics.Float) (z numerics.Float, ok bool) {
	first := true
	var best numerics.Float
	for _, m := range o.maps {
		v, defined := m.Z(x, y)
		if !defined {
			continue
		}
		if first || v > best {
			best = v
			first = false
		}
	}
	if first {
		return 0, false
	}
	return best + o.offset, true
}

// Add returns a new surface with the same maps and offset+delta
func (o *Surface) Add(delta numerics.Float) *Surface {
	return NewSurface(o.offset+delta, o.maps...)
}

// Sub returns a new surface with the same maps and offset-delta
func (o *Surface) Sub(delta numerics.Float) *Surface {
	return o.Add(-delta)
}

// FirstCrossing finds the smallest t in [0,tMax] at which the ray
// pos+t·dir crosses this surface's composite height field (offset +
// max_i map_i). A composite crossing always coincides with a crossing of
// whichever component map realises the max at that point, so candidates
// are found per-map via Map.FirstCrossing (shifting the ray by the
// surface's offset) and filtered to those where that map is genuinely the
// active maximiser.
func (o *Surface) FirstCrossing(pos, dir numerics.Vec3, tMax numerics.Float) (numerics.Float, bool) {
	posAdj := numerics.Vec3{pos.X(), pos.Y(), pos.Z() - o.offset}

	best := tMax
	found := false
	for _, m := range o.maps {
		t, ok := m.FirstCrossing(posAdj, dir, tMax)
		if !ok {
			continue
		}
		x := pos.X() + t*dir.X()
		y := pos.Y() + t*dir.Y()
		mz, mok := m.Z(x, y)
		compZ, compOk := o.Z(x, y)
		if !mok || !compOk {
			continue
		}
		if math.Abs(float64(mz+o.offset-compZ)) > 1e-6 {
			continue // another map is the active maximiser here; not a real composite crossing
		}
		if !found || t < best {
			best, found = t, true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}
