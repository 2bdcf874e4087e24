// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import "github.com/kvernet/goupil/density"

// Definition is a geometry definition: an enumeration of sectors plus the
// ability to construct a matching Tracer. Simple, StratifiedGeometry and
// ExternalGeometry are its three variants.
type Definition interface {
	NumSectors() int
	Sector(index int) (Sector, error)
	NewTracer() Tracer

	// UpdateSector mutates a sector's material index and/or density model.
	// materialIndex<0 and dens==nil each mean "leave unchanged". Forbidden
	// while a batch is active.
	UpdateSector(index int, materialIndex int, dens density.Model) error

	// BeginBatch/EndBatch bracket a batch driver's use of this definition,
	// enforcing the invariant that UpdateSector is rejected while a batch
	// is outstanding.
	BeginBatch()
	EndBatch()
}

// batchGuard is embedded by every Definition implementation to provide the
// shared BeginBatch/EndBatch/isBusy bookkeeping.
type batchGuard struct {
	busy bool
}

func (o *batchGuard) BeginBatch() { o.busy = true }
func (o *batchGuard) EndBatch()   { o.busy = false }
func (o *batchGuard) isBusy() bool { return o.busy }
