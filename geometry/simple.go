// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"github.com/kvernet/goupil/density"
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/numerics"
)

// Simple is the unbounded single-sector geometry variant: exactly one
// sector of infinite extent.
type Simple struct {
	batchGuard
	sector Sector
}

// NewSimple returns a Simple geometry with the given material index and
// density model.
func NewSimple(materialIndex int, dens density.Model, description string) *Simple {
	return &Simple{sector: Sector{MaterialIndex: materialIndex, Density: dens, Description: description}}
}

// NumSectors implements Definition
func (o *Simple) NumSectors() int { return 1 }

// Sector implements Definition
func (o *Simple) Sector(index int) (Sector, error) {
	if index != 0 {
		return Sector{}, goupilerr.InvalidArgument("simple geometry: sector index %d out of range [0,1)", index)
	}
	return o.sector, nil
}

// UpdateSector implements Definition
func (o *Simple) UpdateSector(index int, materialIndex int, dens density.Model) error {
	if o.isBusy() {
		return goupilerr.InvalidArgument("simple geometry: update_sector is not valid during an active batch")
	}
	if index != 0 {
		return goupilerr.InvalidArgument("simple geometry: sector index %d out of range [0,1)", index)
	}
	if materialIndex >= 0 {
		o.sector.MaterialIndex = materialIndex
	}
	if dens != nil {
		o.sector.Density = dens
	}
	return nil
}

// NewTracer implements Definition
func (o *Simple) NewTracer() Tracer {
	return &SimpleTracer{}
}

// SimpleTracer is the Tracer for a Simple geometry: sector(position)=0
// everywhere, boundaries at infinity, so Trace always consumes the full
// requested length.
type SimpleTracer struct {
	pos numerics.Vec3
	dir numerics.Vec3
}

// Reset implements Tracer
func (o *SimpleTracer) Reset(position, direction numerics.Vec3) error {
	if !direction.IsUnit(1e-6) {
		return goupilerr.InvalidArgument("simple tracer: direction is not unit: %v", direction)
	}
	if !position.IsFinite() {
		return goupilerr.InvalidArgument("simple tracer: position is not finite: %v", position)
	}
	o.pos, o.dir = position, direction
	return nil
}

// Sector implements Tracer; the simple geometry has no outside region.
func (o *SimpleTracer) Sector() (int, bool) { return 0, true }

// Position implements Tracer
func (o *SimpleTracer) Position() numerics.Vec3 { return o.pos }

// Trace implements Tracer; unbounded extent means there is never a
// boundary to stop at short of maxLength.
func (o *SimpleTracer) Trace(maxLength numerics.Float) (numerics.Float, error) {
	if maxLength < 0 {
		return 0, goupilerr.InvalidArgument("simple tracer: negative maxLength %v", maxLength)
	}
	return maxLength, nil
}

// Update implements Tracer
func (o *SimpleTracer) Update(step numerics.Float, direction numerics.Vec3) error {
	if !direction.IsUnit(1e-6) {
		return goupilerr.InvalidArgument("simple tracer: direction is not unit: %v", direction)
	}
	o.pos = o.pos.AddScaled(o.dir, step)
	o.dir = direction
	return nil
}
