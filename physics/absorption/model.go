// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package absorption implements the photon-absorption policy: the
// treatment applied once the transport agent selects absorption as the
// winning interaction channel among the partial cross-sections.
// Structured as the same Model/New/allocators triad as density.Model,
// physics/compton.Model and physics/rayleigh.Model, grounded on
// mdl/retention/model.go.
package absorption

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/kvernet/goupil/numerics"
)

// Mode selects the absorption treatment
type Mode int

// absorption modes
const (
	ModeNone Mode = iota
	ModeDiscrete
	ModeContinuous
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeDiscrete:
		return "Discrete"
	case ModeContinuous:
		return "Continuous"
	}
	return "Unknown"
}

// Model implements a photoelectric absorption model. Discrete absorption is
// a terminating interaction: when the transport agent's weighted draw over
// partial cross-sections selects absorption, the photon's history ends with
// status Absorbed. Continuous absorption instead lets the photon survive
// every step, applying an implicit-capture weight reduction proportional to
// the absorption optical depth crossed, the classic variance-reduction
// alternative to discrete killing.
type Model interface {
	Init(prms dbf.Params) error
	GetPrms(example bool) dbf.Params

	// CrossSection returns the macroscopic absorption cross-section at the
	// given photon energy.
	CrossSection(energy numerics.Float) numerics.Float

	// ContinuousWeight returns the implicit-capture survival weight for a
	// step of physical length crossing the given macroscopic absorption
	// cross-section. Only meaningful when mode is ModeContinuous; callers
	// under ModeDiscrete or ModeNone never call this.
	ContinuousWeight(macroXS, step numerics.Float) numerics.Float
}

// New returns a new absorption model by name
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'absorption' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models, filled by each model's init()
var allocators = map[string]func() Model{}
