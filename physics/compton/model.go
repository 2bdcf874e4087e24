// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package compton implements Compton-scattering sampling models: Direct
// (forward, analog), Adjoint and Inverse (backward) sampling of the
// Klein-Nishina differential cross-section. Structured as an open factory
// of named models, the same Model/New/allocators triad as density.Model,
// grounded on mdl/retention/model.go.
package compton

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/rng"
)

// Mode selects which Compton sampling PDF is used
type Mode int

// compton modes
const (
	ModeNone Mode = iota
	ModeDirect
	ModeAdjoint
	ModeInverse
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeDirect:
		return "Direct"
	case ModeAdjoint:
		return "Adjoint"
	case ModeInverse:
		return "Inverse"
	}
	return "Unknown"
}

// Method selects the numerical sampling technique
type Method int

// sampling methods
const (
	MethodRejectionSampling Method = iota
	MethodInverseTransform
)

func (m Method) String() string {
	switch m {
	case MethodRejectionSampling:
		return "RejectionSampling"
	case MethodInverseTransform:
		return "InverseTransform"
	}
	return "Unknown"
}

// Model implements a Compton physical model.
type Model interface {
	Init(prms dbf.Params) error
	GetPrms(example bool) dbf.Params

	// CrossSection returns the total (angle-integrated) cross-section at
	// the given photon energy, up to a model-specific constant
	// normalisation; the transport agent takes its Compton coefficient
	// from the Material Registry, not from this method.
	CrossSection(energy numerics.Float) numerics.Float

	// Sample draws one scattering event. mode selects the sampling PDF;
	// method selects the numerical technique for Direct/Adjoint (Inverse
	// always uses InverseTransform, enforced by transport.Settings).
	// Returns the updated photon energy, direction and a weight multiplier
	// (1 for analog Direct sampling; the forward/adjoint PDF ratio for
	// Adjoint/Inverse).
	Sample(u rng.Stream, mode Mode, method Method, energy numerics.Float, dir numerics.Vec3) (newEnergy numerics.Float, newDir numerics.Vec3, weight numerics.Float, err error)
}

// New returns a new Compton model by name
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'compton' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models, filled by each model's init()
var allocators = map[string]func() Model{}
