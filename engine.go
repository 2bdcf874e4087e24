// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package goupil is the top-level Monte Carlo photon transport engine:
// Engine bundles a geometry definition, a material registry, a random
// stream, settings and physical-process models behind the three batch
// operations, grounded on fem.Main/fem.NewMain, which likewise bundles a
// simulation's domains, solver and summary behind the package's run entry
// points.
package goupil

import (
	"github.com/kvernet/goupil/batch"
	"github.com/kvernet/goupil/geometry"
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/material"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/persist"
	"github.com/kvernet/goupil/rng"
	"github.com/kvernet/goupil/transport"
)

// Engine is the top-level object a caller constructs once and reuses
// across batches. A batch call owns its RNG, geometry definition,
// registry and settings for the duration of the batch.
type Engine struct {
	geom      geometry.Definition
	registry  material.Registry
	stream    rng.Stream
	settings  *transport.Settings
	processes transport.Processes
}

// NewEngine builds an Engine over the given collaborators. processes may
// carry nil models for any process not enabled by settings.
func NewEngine(geom geometry.Definition, registry material.Registry, stream rng.Stream, settings *transport.Settings, processes transport.Processes) (*Engine, error) {
	if geom == nil {
		return nil, goupilerr.InvalidArgument("goupil: engine requires a geometry definition")
	}
	if registry == nil {
		return nil, goupilerr.InvalidArgument("goupil: engine requires a material registry")
	}
	if stream == nil {
		return nil, goupilerr.InvalidArgument("goupil: engine requires a random stream")
	}
	if settings == nil {
		return nil, goupilerr.InvalidArgument("goupil: engine requires settings")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Engine{geom: geom, registry: registry, stream: stream, settings: settings, processes: processes}, nil
}

// Settings returns the engine's settings, mutable in place between
// batches. Of the collaborators' mutators, only the geometry's
// UpdateSector is rejected during an active batch.
func (o *Engine) Settings() *transport.Settings { return o.settings }

// Registry returns the engine's material registry.
func (o *Engine) Registry() material.Registry { return o.registry }

// Geometry returns the engine's geometry definition.
func (o *Engine) Geometry() geometry.Definition { return o.geom }

// driver builds a fresh batch.Driver over the engine's current
// collaborators; Driver is a thin, stateless bundle (batch/driver.go), so
// rebuilding it per call costs nothing and always reflects the latest
// Settings/registry mutations.
func (o *Engine) driver() (*batch.Driver, error) {
	return batch.NewDriver(o.geom, o.registry, o.stream, o.settings, o.processes)
}

// Locate reports the sector index of each input photon state.
func (o *Engine) Locate(states []transport.PhotonState, probe batch.CancelProbe) ([]int, error) {
	d, err := o.driver()
	if err != nil {
		return nil, err
	}
	return d.Locate(states, probe)
}

// Trace reports the column-depth (or path-length) matrix accumulated by
// each input photon state across the sectors it crosses.
func (o *Engine) Trace(states []transport.PhotonState, lengths []numerics.Float, density bool, probe batch.CancelProbe) ([][]numerics.Float, error) {
	d, err := o.driver()
	if err != nil {
		return nil, err
	}
	return d.Trace(states, lengths, density, probe)
}

// Transport runs every input photon state to a terminating status,
// writing back its final PhotonState.
func (o *Engine) Transport(states []transport.PhotonState, sourceEnergies []numerics.Float, probe batch.CancelProbe) ([]transport.PhotonState, []transport.Status, error) {
	d, err := o.driver()
	if err != nil {
		return nil, err
	}
	return d.Transport(states, sourceEnergies, probe)
}

// Save serialises the engine's RNG state, registry, settings and
// compiled flag. Only engines built over an *rng.DefaultStream and an
// *material.InMemoryRegistry can be persisted; any other collaborator may
// be backed by a native physics call with no serialisable state of its
// own.
func (o *Engine) Save(enctype string) ([]byte, error) {
	stream, ok := o.stream.(*rng.DefaultStream)
	if !ok {
		return nil, goupilerr.InvalidArgument("goupil: engine's random stream is not a *rng.DefaultStream and cannot be persisted")
	}
	reg, ok := o.registry.(*material.InMemoryRegistry)
	if !ok {
		return nil, goupilerr.InvalidArgument("goupil: engine's registry is not a *material.InMemoryRegistry and cannot be persisted")
	}
	state := persist.EngineState{Stream: stream, Registry: reg, Settings: o.settings}
	return state.Save(enctype)
}

// LoadEngine reconstructs a functionally equivalent Engine from bytes
// previously produced by (*Engine).Save. Geometry is not part of the
// persisted state; it is treated as an external backend, so the caller
// supplies geom and processes afresh.
func LoadEngine(data []byte, enctype string, geom geometry.Definition, processes transport.Processes) (*Engine, error) {
	state, err := persist.Load(data, enctype)
	if err != nil {
		return nil, err
	}
	return NewEngine(geom, state.Registry, state.Stream, state.Settings, processes)
}
