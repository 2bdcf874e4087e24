// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/kvernet/goupil/density"
	"github.com/kvernet/goupil/geometry"
	"github.com/kvernet/goupil/material"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/physics/absorption"
	"github.com/kvernet/goupil/physics/compton"
	"github.com/kvernet/goupil/physics/rayleigh"
	"github.com/kvernet/goupil/topo"
	"github.com/kvernet/goupil/transport"
)

// job is the JSON job description consumed by this binary: geometry,
// registry, settings and input photon states, plus the single batch
// operation to run.
type job struct {
	Geometry  geometryJob     `json:"geometry"`
	Registry  json.RawMessage `json:"registry"`
	Settings  settingsJob     `json:"settings"`
	Seed      int64           `json:"seed"`
	Operation string          `json:"operation"` // "locate", "trace" or "transport"

	States         []transport.PhotonState `json:"states"`
	Lengths        []numerics.Float         `json:"lengths,omitempty"`
	Density        bool                     `json:"density,omitempty"`
	SourceEnergies []numerics.Float         `json:"source_energies,omitempty"`
}

// densityJob names a density.Model and its construction parameters
// (density.Model.Init's dbf.Params, supplied here as a flat name→value map
// rather than asking the caller to hand-assemble []*fun.P).
type densityJob struct {
	Model  string                    `json:"model"`
	Params map[string]numerics.Float `json:"params"`
}

func (o densityJob) build() (density.Model, error) {
	m, err := density.New(o.Model)
	if err != nil {
		return nil, err
	}
	var prms dbf.Params
	for name, value := range o.Params {
		prms = append(prms, &fun.P{N: name, V: float64(value)})
	}
	if err := m.Init(prms); err != nil {
		return nil, err
	}
	return m, nil
}

// sectorJob is one geometry.Sector as JSON.
type sectorJob struct {
	MaterialIndex int        `json:"material_index"`
	Density       densityJob `json:"density"`
	Description   string     `json:"description,omitempty"`
}

// surfaceJob describes a constant-height interface between two sectors
// (topo.NewConstantMap); a nil *surfaceJob means an unbounded (±∞) end.
// This is intentionally the common flat-layer case; arbitrary grid
// topography is built programmatically via topo.NewGridMap, not through
// this CLI.
type surfaceJob struct {
	Offset numerics.Float `json:"offset"`
	Height numerics.Float `json:"height"`
}

const surfaceExtent = 1e6 // large enough to cover any realistic job's (x,y) footprint

func (o *surfaceJob) build() (*topo.Surface, error) {
	if o == nil {
		return nil, nil
	}
	m, err := topo.NewConstantMap(-surfaceExtent, surfaceExtent, -surfaceExtent, surfaceExtent, o.Height)
	if err != nil {
		return nil, err
	}
	return topo.NewSurface(o.Offset, m), nil
}

// geometryJob builds either a Simple or a StratifiedGeometry.
type geometryJob struct {
	Kind     string        `json:"kind"` // "simple" or "stratified"
	Sector   sectorJob     `json:"sector,omitempty"`   // Kind=="simple"
	Sectors  []sectorJob   `json:"sectors,omitempty"`  // Kind=="stratified"
	Surfaces []*surfaceJob `json:"surfaces,omitempty"` // Kind=="stratified", len(Sectors)+1
}

func (o geometryJob) build() (geometry.Definition, error) {
	switch o.Kind {
	case "simple":
		dens, err := o.Sector.Density.build()
		if err != nil {
			return nil, err
		}
		return geometry.NewSimple(o.Sector.MaterialIndex, dens, o.Sector.Description), nil
	case "stratified":
		sectors := make([]geometry.Sector, len(o.Sectors))
		for i, s := range o.Sectors {
			dens, err := s.Density.build()
			if err != nil {
				return nil, err
			}
			sectors[i] = geometry.Sector{MaterialIndex: s.MaterialIndex, Density: dens, Description: s.Description}
		}
		surfaces := make([]*topo.Surface, len(o.Surfaces))
		for i, s := range o.Surfaces {
			surf, err := s.build()
			if err != nil {
				return nil, err
			}
			surfaces[i] = surf
		}
		return geometry.NewStratifiedGeometry(sectors, surfaces)
	default:
		return nil, chk.Err("job: unknown geometry.kind %q (expected \"simple\" or \"stratified\")", o.Kind)
	}
}

// settingsJob mirrors transport.Settings' external names as
// JSON-friendly strings, parsed against the same enumerators the engine
// itself recognises.
type settingsJob struct {
	Mode           string          `json:"mode,omitempty"`
	ComptonModel   string          `json:"compton_model,omitempty"`
	ComptonMode    string          `json:"compton_mode,omitempty"`
	ComptonMethod  string          `json:"compton_method,omitempty"`
	Rayleigh       bool            `json:"rayleigh,omitempty"`
	Absorption     string          `json:"absorption,omitempty"`
	Boundary       *int            `json:"boundary,omitempty"`
	EnergyMin      *numerics.Float `json:"energy_min,omitempty"`
	EnergyMax      *numerics.Float `json:"energy_max,omitempty"`
	LengthMax      *numerics.Float `json:"length_max,omitempty"`
	VolumeSources  bool            `json:"volume_sources,omitempty"`
}

func parseComptonMode(s string) (compton.Mode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return compton.ModeNone, nil
	case "direct":
		return compton.ModeDirect, nil
	case "adjoint":
		return compton.ModeAdjoint, nil
	case "inverse":
		return compton.ModeInverse, nil
	}
	return compton.ModeNone, chk.Err("job: unknown settings.compton_mode %q", s)
}

func parseComptonMethod(s string) (compton.Method, error) {
	switch strings.ToLower(s) {
	case "", "rejectionsampling":
		return compton.MethodRejectionSampling, nil
	case "inversetransform":
		return compton.MethodInverseTransform, nil
	}
	return compton.MethodRejectionSampling, chk.Err("job: unknown settings.compton_method %q", s)
}

func parseAbsorptionMode(s string) (absorption.Mode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return absorption.ModeNone, nil
	case "discrete":
		return absorption.ModeDiscrete, nil
	case "continuous":
		return absorption.ModeContinuous, nil
	}
	return absorption.ModeNone, chk.Err("job: unknown settings.absorption %q", s)
}

func (o settingsJob) build() (*transport.Settings, error) {
	settings := transport.NewSettings()
	if strings.EqualFold(o.Mode, "backward") {
		settings.SetMode(transport.ModeBackward)
	}
	comptonMode, err := parseComptonMode(o.ComptonMode)
	if err != nil {
		return nil, err
	}
	if err := settings.SetComptonMode(comptonMode); err != nil {
		return nil, err
	}
	comptonMethod, err := parseComptonMethod(o.ComptonMethod)
	if err != nil {
		return nil, err
	}
	if err := settings.SetComptonMethod(comptonMethod); err != nil {
		return nil, err
	}
	settings.SetComptonModel(o.ComptonModel)
	settings.SetRayleighMode(o.Rayleigh)
	absorptionMode, err := parseAbsorptionMode(o.Absorption)
	if err != nil {
		return nil, err
	}
	settings.SetAbsorptionMode(absorptionMode)
	if o.Boundary != nil {
		settings.SetBoundary(*o.Boundary)
	}
	settings.SetEnergyMin(o.EnergyMin)
	settings.SetEnergyMax(o.EnergyMax)
	settings.SetLengthMax(o.LengthMax)
	settings.SetVolumeSources(o.VolumeSources)
	return settings, nil
}

// buildProcesses constructs the physical-process models the settings call
// for, with example parameters; a production caller wanting non-default
// physics parameters configures the registry/settings instead, since this
// CLI is intentionally minimal.
func buildProcesses(settings *transport.Settings) (transport.Processes, error) {
	var procs transport.Processes
	if settings.ComptonMode() != compton.ModeNone {
		name := settings.ComptonModel()
		if name == "" {
			name = "klein-nishina"
		}
		m, err := compton.New(name)
		if err != nil {
			return procs, err
		}
		if err := m.Init(m.GetPrms(true)); err != nil {
			return procs, err
		}
		procs.Compton = m
	}
	if settings.RayleighMode() != rayleigh.ModeNone {
		m, err := rayleigh.New("form-factor")
		if err != nil {
			return procs, err
		}
		if err := m.Init(m.GetPrms(true)); err != nil {
			return procs, err
		}
		procs.Rayleigh = m
	}
	if settings.AbsorptionMode() != absorption.ModeNone {
		m, err := absorption.New("photoelectric")
		if err != nil {
			return procs, err
		}
		if err := m.Init(m.GetPrms(true)); err != nil {
			return procs, err
		}
		procs.Absorption = m
	}
	return procs, nil
}

func buildRegistry(raw json.RawMessage) (material.Registry, error) {
	if len(raw) == 0 {
		return material.NewInMemoryRegistry(), nil
	}
	return material.ReadRegistryJSON(raw)
}
