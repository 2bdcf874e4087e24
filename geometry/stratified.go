// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"math"

	"github.com/kvernet/goupil/density"
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/topo"
)

// StratifiedGeometry is the layered geometry variant: sector k lies
// between interface k (above) and interface k+1 (below).
// Top and bottom interfaces may be nil (unbounded, ±∞).
type StratifiedGeometry struct {
	batchGuard
	sectors  []Sector
	surfaces []*topo.Surface // len == len(sectors)+1
}

// NewStratifiedGeometry builds a layered geometry from an ordered sequence
// of sectors and the len(sectors)+1 interfaces separating them (the first
// and last may be nil for an unbounded top/bottom).
func NewStratifiedGeometry(sectors []Sector, surfaces []*topo.Surface) (*StratifiedGeometry, error) {
	if len(sectors) == 0 {
		return nil, goupilerr.InvalidArgument("stratified geometry: needs at least one sector")
	}
	if len(surfaces) != len(sectors)+1 {
		return nil, goupilerr.InvalidArgument("stratified geometry: expected %d interfaces for %d sectors, got %d", len(sectors)+1, len(sectors), len(surfaces))
	}
	return &StratifiedGeometry{
		sectors:  append([]Sector{}, sectors...),
		surfaces: append([]*topo.Surface{}, surfaces...),
	}, nil
}

// NumSectors implements Definition
func (o *StratifiedGeometry) NumSectors() int { return len(o.sectors) }

// Sector implements Definition
func (o *StratifiedGeometry) Sector(index int) (Sector, error) {
	if index < 0 || index >= len(o.sectors) {
		return Sector{}, goupilerr.InvalidArgument("stratified geometry: sector index %d out of range [0,%d)", index, len(o.sectors))
	}
	return o.sectors[index], nil
}

// UpdateSector implements Definition
func (o *StratifiedGeometry) UpdateSector(index int, materialIndex int, dens density.Model) error {
	if o.isBusy() {
		return goupilerr.InvalidArgument("stratified geometry: update_sector is not valid during an active batch")
	}
	if index < 0 || index >= len(o.sectors) {
		return goupilerr.InvalidArgument("stratified geometry: sector index %d out of range [0,%d)", index, len(o.sectors))
	}
	if materialIndex >= 0 {
		o.sectors[index].MaterialIndex = materialIndex
	}
	if dens != nil {
		o.sectors[index].Density = dens
	}
	return nil
}

// NewTracer implements Definition
func (o *StratifiedGeometry) NewTracer() Tracer {
	return &StratifiedTracer{def: o}
}

// ZValue is one interface height query result: Defined is false where no
// component map of that interface is defined at (x,y).
type ZValue struct {
	Z       numerics.Float
	Defined bool
}

// ZColumn returns the height of every interface at (x,y), in top-to-bottom
// order; used by external visualisation.
func (o *StratifiedGeometry) ZColumn(x, y numerics.Float) []ZValue {
	out := make([]ZValue, len(o.surfaces))
	for i, s := range o.surfaces {
		if s == nil {
			continue
		}
		z, ok := s.Z(x, y)
		out[i] = ZValue{Z: z, Defined: ok}
	}
	return out
}

// surfaceZ evaluates an interface's height at (x,y), treating a nil
// interface (unbounded) or an undefined one as ±∞ depending on whether it
// bounds a sector from above or below.
func surfaceZ(s *topo.Surface, x, y numerics.Float, top bool) numerics.Float {
	if s != nil {
		if z, ok := s.Z(x, y); ok {
			return z
		}
	}
	if top {
		return numerics.Float(math.Inf(1))
	}
	return numerics.Float(math.Inf(-1))
}

// SectorAt locates the sector containing pos: strict inequality at the
// top surface, non-strict at the bottom.
func (o *StratifiedGeometry) SectorAt(pos numerics.Vec3) (int, bool) {
	x, y, z := pos.X(), pos.Y(), pos.Z()
	for k := range o.sectors {
		top := surfaceZ(o.surfaces[k], x, y, true)
		bottom := surfaceZ(o.surfaces[k+1], x, y, false)
		if z < top && z >= bottom {
			return k, true
		}
	}
	return 0, false
}

// StratifiedTracer is the Tracer for a StratifiedGeometry: at each step it
// finds the closest intersection of the ray with the sector's bracketing
// interfaces via topo.Surface.FirstCrossing (itself a 2D DDA over each
// component map's grid with analytic per-cell bilinear-patch
// intersection).
type StratifiedTracer struct {
	def           *StratifiedGeometry
	pos           numerics.Vec3
	dir           numerics.Vec3
	sector        int
	outside       bool
	grazingStreak int
}

// Reset implements Tracer
func (o *StratifiedTracer) Reset(position, direction numerics.Vec3) error {
	if !direction.IsUnit(1e-6) {
		return goupilerr.InvalidArgument("stratified tracer: direction is not unit: %v", direction)
	}
	if !position.IsFinite() {
		return goupilerr.InvalidArgument("stratified tracer: position is not finite: %v", position)
	}
	o.pos, o.dir = position, direction
	o.grazingStreak = 0
	o.recomputeSector()
	return nil
}

func (o *StratifiedTracer) recomputeSector() {
	s, ok := o.def.SectorAt(o.pos)
	o.sector, o.outside = s, !ok
}

// Sector implements Tracer
func (o *StratifiedTracer) Sector() (int, bool) {
	if o.outside {
		return 0, false
	}
	return o.sector, true
}

// Position implements Tracer
func (o *StratifiedTracer) Position() numerics.Vec3 { return o.pos }

// Trace implements Tracer
func (o *StratifiedTracer) Trace(maxLength numerics.Float) (numerics.Float, error) {
	if maxLength < 0 {
		return 0, goupilerr.InvalidArgument("stratified tracer: negative maxLength %v", maxLength)
	}
	if o.outside {
		return maxLength, nil
	}

	top := o.def.surfaces[o.sector]
	bottom := o.def.surfaces[o.sector+1]

	step := maxLength
	if top != nil {
		if t, ok := top.FirstCrossing(o.pos, o.dir, maxLength); ok && t < step {
			step = t
		}
	}
	if bottom != nil {
		if t, ok := bottom.FirstCrossing(o.pos, o.dir, maxLength); ok && t < step {
			step = t
		}
	}
	if step < 0 {
		step = 0
	}
	return step, nil
}

// Update implements Tracer. A step shorter than GrazingEpsilon is treated
// as a grazing stall: the tracer nudges forward by GrazingEpsilon instead,
// bounding consecutive nudges at MaxGrazingSteps.
func (o *StratifiedTracer) Update(step numerics.Float, direction numerics.Vec3) error {
	if !direction.IsUnit(1e-6) {
		return goupilerr.InvalidArgument("stratified tracer: direction is not unit: %v", direction)
	}
	if step < 0 {
		step = 0
	}
	if step < GrazingEpsilon {
		o.grazingStreak++
		if o.grazingStreak > MaxGrazingSteps {
			return goupilerr.NumericalInstability("stratified tracer: exceeded %d consecutive grazing steps in sector %d", MaxGrazingSteps, o.sector)
		}
		step = GrazingEpsilon
	} else {
		o.grazingStreak = 0
	}
	o.pos = o.pos.AddScaled(o.dir, step)
	o.dir = direction
	o.recomputeSector()
	return nil
}
