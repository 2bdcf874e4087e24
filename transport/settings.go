// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/physics/absorption"
	"github.com/kvernet/goupil/physics/compton"
	"github.com/kvernet/goupil/physics/rayleigh"
)

// Mode is the direction of sampling
type Mode int

// transport modes
const (
	ModeForward Mode = iota
	ModeBackward
)

func (m Mode) String() string {
	if m == ModeBackward {
		return "Backward"
	}
	return "Forward"
}

// BoundaryCondition is the optional "terminate on entering sector i"
// condition.
type BoundaryCondition struct {
	Enabled bool
	Sector  int
}

// Settings holds transport configuration. Fields are unexported; every
// mutation goes through a setter that maintains the mode/compton coercion
// invariants, grounded on inp.Simulation's derived-field fixups on
// assignment (inp/sim.go). A reader may assume the invariants hold without
// re-checking; Validate is provided for defensive call sites.
type Settings struct {
	mode           Mode
	comptonModel   string
	comptonMethod  compton.Method
	comptonMode    compton.Mode
	rayleighMode   rayleigh.Mode
	absorptionMode absorption.Mode
	boundary       BoundaryCondition
	energyMin      *numerics.Float
	energyMax      *numerics.Float
	lengthMax      *numerics.Float
	constraint     *numerics.Float
	volumeSources  bool
}

// NewSettings returns Settings with the engine defaults: Forward mode, no
// Compton/Rayleigh/absorption sampling, no bounds.
func NewSettings() *Settings {
	return &Settings{
		mode:          ModeForward,
		comptonMethod: compton.MethodRejectionSampling,
		comptonMode:   compton.ModeNone,
		rayleighMode:  rayleigh.ModeNone,
	}
}

// Mode returns the current transport mode
func (o *Settings) Mode() Mode { return o.mode }

// SetMode sets the transport mode, coercing compton_mode: setting
// Backward coerces Compton to {Adjoint, Inverse, None}; Forward coerces to
// {Direct, None}.
func (o *Settings) SetMode(mode Mode) {
	o.mode = mode
	if mode == ModeBackward {
		if o.comptonMode == compton.ModeDirect {
			o.comptonMode = compton.ModeNone
		}
	} else {
		if o.comptonMode == compton.ModeAdjoint || o.comptonMode == compton.ModeInverse {
			o.comptonMode = compton.ModeNone
		}
	}
}

// ComptonModel returns the configured Compton physical-model name
func (o *Settings) ComptonModel() string { return o.comptonModel }

// SetComptonModel sets the Compton physical-model name.
func (o *Settings) SetComptonModel(name string) { o.comptonModel = name }

// ComptonMode returns the configured Compton sampling mode
func (o *Settings) ComptonMode() compton.Mode { return o.comptonMode }

// SetComptonMode sets the Compton sampling mode. Inverse implies
// compton_method=InverseTransform and forces Backward mode; Direct forces
// Forward mode; Adjoint forces Backward mode.
func (o *Settings) SetComptonMode(mode compton.Mode) error {
	switch mode {
	case compton.ModeNone:
	case compton.ModeDirect:
		o.mode = ModeForward
	case compton.ModeAdjoint:
		o.mode = ModeBackward
	case compton.ModeInverse:
		o.mode = ModeBackward
		o.comptonMethod = compton.MethodInverseTransform
	default:
		return goupilerr.Domain("transport: unknown compton_mode %v", mode)
	}
	o.comptonMode = mode
	return nil
}

// ComptonMethod returns the configured Compton sampling method
func (o *Settings) ComptonMethod() compton.Method { return o.comptonMethod }

// SetComptonMethod sets the Compton sampling method; rejected if
// compton_mode is Inverse and method is not InverseTransform.
func (o *Settings) SetComptonMethod(method compton.Method) error {
	if o.comptonMode == compton.ModeInverse && method != compton.MethodInverseTransform {
		return goupilerr.InvalidArgument("transport: compton_mode=Inverse requires compton_method=InverseTransform")
	}
	o.comptonMethod = method
	return nil
}

// RayleighMode returns the configured Rayleigh mode
func (o *Settings) RayleighMode() rayleigh.Mode { return o.rayleighMode }

// SetRayleighMode sets whether Rayleigh scattering is sampled, enabling
// the form-factor model.
func (o *Settings) SetRayleighMode(enabled bool) {
	if enabled {
		o.rayleighMode = rayleigh.ModeFormFactor
	} else {
		o.rayleighMode = rayleigh.ModeNone
	}
}

// AbsorptionMode returns the configured absorption treatment
func (o *Settings) AbsorptionMode() absorption.Mode { return o.absorptionMode }

// SetAbsorptionMode sets the absorption treatment (None, Discrete or
// Continuous).
func (o *Settings) SetAbsorptionMode(mode absorption.Mode) { o.absorptionMode = mode }

// Boundary returns the configured boundary condition
func (o *Settings) Boundary() BoundaryCondition { return o.boundary }

// SetBoundary sets the "terminate on entering sector index" condition
func (o *Settings) SetBoundary(sectorIndex int) {
	o.boundary = BoundaryCondition{Enabled: true, Sector: sectorIndex}
}

// ClearBoundary removes the boundary condition
func (o *Settings) ClearBoundary() { o.boundary = BoundaryCondition{} }

// EnergyMin returns the minimum-energy termination threshold, or nil
func (o *Settings) EnergyMin() *numerics.Float { return o.energyMin }

// SetEnergyMin sets the minimum-energy termination threshold (nil clears)
func (o *Settings) SetEnergyMin(v *numerics.Float) { o.energyMin = v }

// EnergyMax returns the maximum-energy termination threshold, or nil
func (o *Settings) EnergyMax() *numerics.Float { return o.energyMax }

// SetEnergyMax sets the maximum-energy termination threshold (nil clears)
func (o *Settings) SetEnergyMax(v *numerics.Float) { o.energyMax = v }

// LengthMax returns the cumulative path-length cap, or nil
func (o *Settings) LengthMax() *numerics.Float { return o.lengthMax }

// SetLengthMax sets the cumulative path-length cap (nil clears)
func (o *Settings) SetLengthMax(v *numerics.Float) { o.lengthMax = v }

// Constraint returns the backward-sampling energy constraint, or nil
func (o *Settings) Constraint() *numerics.Float { return o.constraint }

// SetConstraint directly sets the backward-sampling energy constraint,
// used by the batch driver's per-photon source energies.
func (o *Settings) SetConstraint(v *numerics.Float) { o.constraint = v }

// VolumeSources returns whether volume-source semantics are enabled
func (o *Settings) VolumeSources() bool { return o.volumeSources }

// SetVolumeSources toggles constraint between null and 1.0.
func (o *Settings) SetVolumeSources(enabled bool) {
	o.volumeSources = enabled
	if enabled {
		v := numerics.Float(1.0)
		o.constraint = &v
	} else {
		o.constraint = nil
	}
}

// Snapshot is the gob/json-friendly projection of Settings, grounded on
// inp.Simulation's own plain-struct-of-values shape (inp/sim.go). Settings
// itself keeps its fields unexported to funnel mutation through the
// setters above, so persistence goes through this exported mirror instead
// of reflection.
type Snapshot struct {
	Mode           Mode
	ComptonModel   string
	ComptonMethod  compton.Method
	ComptonMode    compton.Mode
	RayleighMode   rayleigh.Mode
	AbsorptionMode absorption.Mode
	Boundary       BoundaryCondition
	EnergyMin      *numerics.Float
	EnergyMax      *numerics.Float
	LengthMax      *numerics.Float
	Constraint     *numerics.Float
	VolumeSources  bool
}

// Snapshot captures the current settings as a persistable value.
func (o *Settings) Snapshot() Snapshot {
	return Snapshot{
		Mode:           o.mode,
		ComptonModel:   o.comptonModel,
		ComptonMethod:  o.comptonMethod,
		ComptonMode:    o.comptonMode,
		RayleighMode:   o.rayleighMode,
		AbsorptionMode: o.absorptionMode,
		Boundary:       o.boundary,
		EnergyMin:      o.energyMin,
		EnergyMax:      o.energyMax,
		LengthMax:      o.lengthMax,
		Constraint:     o.constraint,
		VolumeSources:  o.volumeSources,
	}
}

// SettingsFromSnapshot reconstructs Settings from a previously captured
// Snapshot, bypassing the coercing setters (the snapshot is assumed
// already consistent; callers may still run Validate defensively).
func SettingsFromSnapshot(s Snapshot) *Settings {
	return &Settings{
		mode:           s.Mode,
		comptonModel:   s.ComptonModel,
		comptonMethod:  s.ComptonMethod,
		comptonMode:    s.ComptonMode,
		rayleighMode:   s.RayleighMode,
		absorptionMode: s.AbsorptionMode,
		boundary:       s.Boundary,
		energyMin:      s.EnergyMin,
		energyMax:      s.EnergyMax,
		lengthMax:      s.LengthMax,
		constraint:     s.Constraint,
		volumeSources:  s.VolumeSources,
	}
}

// Validate is the explicit defensive predicate for the mode/compton
// coercion invariants: readers reached only via the setters above may
// assume it holds, but callers constructing Settings by other means (e.g.
// deserialisation) should check it.
func (o *Settings) Validate() error {
	switch o.mode {
	case ModeForward:
		if o.comptonMode == compton.ModeAdjoint || o.comptonMode == compton.ModeInverse {
			return goupilerr.InvalidArgument("transport: Forward mode is incompatible with compton_mode=%v", o.comptonMode)
		}
		if o.constraint != nil && !o.volumeSources {
			return goupilerr.InvalidArgument("transport: Forward mode with a constraint requires volume_sources=true")
		}
	case ModeBackward:
		if o.comptonMode == compton.ModeDirect {
			return goupilerr.InvalidArgument("transport: Backward mode is incompatible with compton_mode=Direct")
		}
	default:
		return goupilerr.Domain("transport: unknown mode %v", o.mode)
	}
	if o.comptonMode == compton.ModeInverse && o.comptonMethod != compton.MethodInverseTransform {
		return goupilerr.InvalidArgument("transport: compton_mode=Inverse requires compton_method=InverseTransform")
	}
	return nil
}
