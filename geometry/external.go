// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"github.com/kvernet/goupil/density"
	"github.com/kvernet/goupil/goupilerr"
)

// ExternalBackend is the opaque native-provider contract an External
// geometry delegates to: it enumerates its own sectors and builds its own
// Tracer implementations. Implementations live outside this module;
// failures are reported as goupilerr.Io.
type ExternalBackend interface {
	NumSectors() int
	Sector(index int) (Sector, error)
	NewTracer() Tracer
	UpdateSector(index int, materialIndex int, dens density.Model) error
}

// ExternalGeometry wraps an ExternalBackend as a Definition, forwarding
// every query and delegating Tracer construction directly to the backend.
type ExternalGeometry struct {
	batchGuard
	backend ExternalBackend
}

// NewExternalGeometry wraps a native backend as a geometry Definition.
func NewExternalGeometry(backend ExternalBackend) (*ExternalGeometry, error) {
	if backend == nil {
		return nil, goupilerr.Io("external geometry: nil backend")
	}
	return &ExternalGeometry{backend: backend}, nil
}

// NumSectors implements Definition
func (o *ExternalGeometry) NumSectors() int { return o.backend.NumSectors() }

// Sector implements Definition
func (o *ExternalGeometry) Sector(index int) (Sector, error) {
	s, err := o.backend.Sector(index)
	if err != nil {
		return Sector{}, goupilerr.Io("external geometry: %v", err)
	}
	return s, nil
}

// UpdateSector implements Definition
func (o *ExternalGeometry) UpdateSector(index int, materialIndex int, dens density.Model) error {
	if o.isBusy() {
		return goupilerr.InvalidArgument("external geometry: update_sector is not valid during an active batch")
	}
	if err := o.backend.UpdateSector(index, materialIndex, dens); err != nil {
		return goupilerr.Io("external geometry: %v", err)
	}
	return nil
}

// NewTracer implements Definition by delegating straight to the backend,
// which owns the concrete Tracer type for its own format.
func (o *ExternalGeometry) NewTracer() Tracer {
	return o.backend.NewTracer()
}
