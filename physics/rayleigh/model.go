// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rayleigh implements Rayleigh (coherent) scattering sampling:
// elastic scattering off bound electrons, which changes the photon's
// direction but not its energy. Structured as the same
// Model/New/allocators triad as density.Model and physics/compton.Model,
// grounded on mdl/retention/model.go.
package rayleigh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/rng"
)

// Mode selects whether Rayleigh scattering is sampled
type Mode int

// rayleigh modes
const (
	ModeNone Mode = iota
	ModeFormFactor
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeFormFactor:
		return "FormFactor"
	}
	return "Unknown"
}

// Model implements a Rayleigh physical model. Rayleigh scattering is
// elastic: Sample only ever changes direction, never energy, and the
// weight multiplier is always 1 since the process is its own time-reverse.
type Model interface {
	Init(prms dbf.Params) error
	GetPrms(example bool) dbf.Params

	// CrossSection returns the total coherent-scattering cross-section at
	// the given photon energy.
	CrossSection(energy numerics.Float) numerics.Float

	// Sample draws a scattering angle and returns the deflected direction.
	Sample(u rng.Stream, mode Mode, energy numerics.Float, dir numerics.Vec3) (newDir numerics.Vec3, err error)
}

// New returns a new Rayleigh model by name
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'rayleigh' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models, filled by each model's init()
var allocators = map[string]func() Model{}
