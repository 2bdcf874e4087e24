// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"github.com/kvernet/goupil/geometry"
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/material"
	"github.com/kvernet/goupil/rng"
	"github.com/kvernet/goupil/transport"
)

// Driver owns a geometry definition, a material registry, a random
// stream, settings and the physical-process models for the duration of
// one batch call; no other caller may mutate them concurrently.
// BeginBatch/EndBatch bracket every operation so
// geometry.Definition.UpdateSector is correctly rejected while a batch is
// outstanding.
type Driver struct {
	geom      geometry.Definition
	registry  material.Registry
	u         rng.Stream
	settings  *transport.Settings
	processes transport.Processes
}

// NewDriver builds a Driver over the given collaborators.
func NewDriver(geom geometry.Definition, registry material.Registry, u rng.Stream, settings *transport.Settings, processes transport.Processes) (*Driver, error) {
	if geom == nil {
		return nil, goupilerr.InvalidArgument("batch: driver requires a geometry definition")
	}
	if registry == nil {
		return nil, goupilerr.InvalidArgument("batch: driver requires a material registry")
	}
	if u == nil {
		return nil, goupilerr.InvalidArgument("batch: driver requires a random stream")
	}
	if settings == nil {
		return nil, goupilerr.InvalidArgument("batch: driver requires settings")
	}
	return &Driver{geom: geom, registry: registry, u: u, settings: settings, processes: processes}, nil
}
