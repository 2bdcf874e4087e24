// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"math"

	"github.com/kvernet/goupil/geometry"
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/material"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/physics/absorption"
	"github.com/kvernet/goupil/physics/compton"
	"github.com/kvernet/goupil/physics/rayleigh"
	"github.com/kvernet/goupil/rng"
)

// maxAgentIterations bounds the number of step/interaction cycles one
// photon may take before Run reports NumericalInstability. Ordinary
// histories terminate in a handful of steps; this is a backstop against a
// pathological configuration (e.g. a near-zero macroscopic cross-section
// coupled with an unbounded geometry) rather than a physical limit.
const maxAgentIterations = 1 << 20

// Processes bundles the physical-interaction models an Agent samples from,
// weighted by their partial cross-sections. Rayleigh and Absorption may be
// nil when the corresponding Settings mode is None. Compton may be nil
// only for materials with a zero Compton cross-section: Run reports a
// Missing error when it draws a Compton event and no model is configured.
type Processes struct {
	Compton    compton.Model
	Rayleigh   rayleigh.Model
	Absorption absorption.Model
}

// Agent drives one photon's stochastic history to a terminating Status, a
// bounded step/interaction loop that plays the role of fem.Solver's
// Newton-iteration driver (fem/solver.go) in this domain: repeatedly ask a
// collaborator for the next increment, apply it, and check termination
// conditions, until a stopping criterion is met or the iteration cap is
// hit.
type Agent struct {
	geom      geometry.Definition
	registry  material.Registry
	u         rng.Stream
	settings  *Settings
	processes Processes
	tracer    geometry.Tracer
}

// NewAgent builds an Agent bound to one geometry definition, one material
// registry, one random stream and one settings object. The tracer is
// allocated once and reused across calls to Run via Tracer.Reset.
func NewAgent(geom geometry.Definition, registry material.Registry, u rng.Stream, settings *Settings, processes Processes) (*Agent, error) {
	if geom == nil {
		return nil, goupilerr.InvalidArgument("transport: agent requires a geometry definition")
	}
	if registry == nil {
		return nil, goupilerr.InvalidArgument("transport: agent requires a material registry")
	}
	if u == nil {
		return nil, goupilerr.InvalidArgument("transport: agent requires a random stream")
	}
	if settings == nil {
		return nil, goupilerr.InvalidArgument("transport: agent requires settings")
	}
	return &Agent{
		geom:      geom,
		registry:  registry,
		u:         u,
		settings:  settings,
		processes: processes,
		tracer:    geom.NewTracer(),
	}, nil
}

// Run transports one photon from its entry state to a terminating status.
// The returned PhotonState reflects the photon at the moment of
// termination, with the terminal Status reported separately (the
// non-terminal inFlight status is returned only alongside an error); a
// non-nil error means
// the history could not be completed at all (malformed settings, a
// failing collaborator, or exceeding maxAgentIterations) and is distinct
// from a terminal status.
func (o *Agent) Run(state PhotonState) (PhotonState, Status, error) {
	if err := o.settings.Validate(); err != nil {
		return state, inFlight, err
	}
	if err := state.Validate(); err != nil {
		return state, inFlight, err
	}
	if err := o.tracer.Reset(state.Position, state.Direction); err != nil {
		return state, inFlight, err
	}

	energy := state.Energy
	weight := state.Weight
	length := state.Length
	dir := state.Direction

	for iter := 0; ; iter++ {
		if iter >= maxAgentIterations {
			return o.pack(energy, dir, length, weight), inFlight,
				goupilerr.NumericalInstability("transport: photon did not terminate within %d steps", maxAgentIterations)
		}

		// step 1: locate
		sectorIdx, ok := o.tracer.Sector()
		if !ok {
			return o.pack(energy, dir, length, weight), Exit, nil
		}
		sector, err := o.geom.Sector(sectorIdx)
		if err != nil {
			return o.pack(energy, dir, length, weight), inFlight, err
		}

		// step 2: look up macroscopic coefficients at the current energy
		// and density
		xs, err := o.registry.CrossSectionAt(sector.MaterialIndex, energy)
		if err != nil {
			return o.pack(energy, dir, length, weight), inFlight, err
		}
		if sector.Density == nil {
			return o.pack(energy, dir, length, weight), inFlight,
				goupilerr.Missing("transport: sector %d has no density model", sectorIdx)
		}
		rho := sector.Density.Rho(o.tracer.Position())
		muTotal := xs.Total * rho

		// step 3: sample the exponential free-flight length
		ell := numerics.Float(math.Inf(1))
		if muTotal > 0 {
			ell = -numerics.Float(math.Log(float64(1-o.u.Uniform()))) / muTotal
		}

		// step 4: cap by the remaining length budget, if any, and trace
		ellMax := ell
		if o.settings.lengthMax != nil {
			remaining := *o.settings.lengthMax - length
			if remaining < 0 {
				remaining = 0
			}
			if remaining < ellMax {
				ellMax = remaining
			}
		}
		step, err := o.tracer.Trace(ellMax)
		if err != nil {
			return o.pack(energy, dir, length, weight), inFlight, err
		}

		if step < ell {
			// step 5: a sector boundary (or the length budget) was reached
			// before an interaction
			if err := o.tracer.Update(step, dir); err != nil {
				return o.pack(energy, dir, length, weight), inFlight, err
			}
			length += step
			if w, err := o.applyContinuousAbsorption(xs, rho, step, weight); err != nil {
				return o.pack(energy, dir, length, weight), inFlight, err
			} else {
				weight = w
			}
			if o.settings.boundary.Enabled {
				if idx, ok := o.tracer.Sector(); ok && idx == o.settings.boundary.Sector {
					return o.pack(energy, dir, length, weight), Boundary, nil
				}
			}
			if status, done := o.checkTermination(energy, length); done {
				return o.pack(energy, dir, length, weight), status, nil
			}
			continue
		}

		// step 6: an interaction occurs; sample its type among the
		// enabled processes, weighted by their partial cross-sections
		muCompton := xs.Compton * rho
		var muRayleigh, muAbsorbDiscrete numerics.Float
		if o.settings.rayleighMode != rayleigh.ModeNone {
			muRayleigh = xs.Rayleigh * rho
		}
		if o.settings.absorptionMode == absorption.ModeDiscrete {
			muAbsorbDiscrete = xs.Absorption * rho
		}
		muInteract := muCompton + muRayleigh + muAbsorbDiscrete

		if w, err := o.applyContinuousAbsorption(xs, rho, step, weight); err != nil {
			return o.pack(energy, dir, length, weight), inFlight, err
		} else {
			weight = w
		}

		if muInteract <= 0 {
			// every enabled process refused: a null step
			if err := o.tracer.Update(step, dir); err != nil {
				return o.pack(energy, dir, length, weight), inFlight, err
			}
			length += step
			if status, done := o.checkTermination(energy, length); done {
				return o.pack(energy, dir, length, weight), status, nil
			}
			continue
		}

		draw := o.u.Uniform() * muInteract
		switch {
		case draw < muCompton:
			if o.processes.Compton == nil {
				return o.pack(energy, dir, length, weight), inFlight,
					goupilerr.Missing("transport: compton_mode is set but no Compton model is configured")
			}
			newEnergy, newDir, w, err := o.processes.Compton.Sample(o.u, o.settings.comptonMode, o.settings.comptonMethod, energy, dir)
			if err != nil {
				return o.pack(energy, dir, length, weight), inFlight, err
			}
			energy, dir = newEnergy, newDir
			weight *= w
			if err := o.tracer.Update(step, dir); err != nil {
				return o.pack(energy, dir, length, weight), inFlight, err
			}

		case draw < muCompton+muRayleigh:
			if o.processes.Rayleigh == nil {
				return o.pack(energy, dir, length, weight), inFlight,
					goupilerr.Missing("transport: rayleigh is enabled but no Rayleigh model is configured")
			}
			newDir, err := o.processes.Rayleigh.Sample(o.u, o.settings.rayleighMode, energy, dir)
			if err != nil {
				return o.pack(energy, dir, length, weight), inFlight, err
			}
			dir = newDir
			if err := o.tracer.Update(step, dir); err != nil {
				return o.pack(energy, dir, length, weight), inFlight, err
			}

		default:
			// discrete absorption: the photon's history ends here
			if err := o.tracer.Update(step, dir); err != nil {
				return o.pack(energy, dir, length, weight), inFlight, err
			}
			length += step
			return o.pack(energy, dir, length, weight), Absorbed, nil
		}

		length += step
		if status, done := o.checkTermination(energy, length); done {
			return o.pack(energy, dir, length, weight), status, nil
		}
	}
}

// applyContinuousAbsorption applies the implicit-capture weight reduction
// for one committed step of physical length, when absorption is
// configured as Continuous. It is a no-op under Discrete or None.
func (o *Agent) applyContinuousAbsorption(xs material.CrossSection, rho, step, weight numerics.Float) (numerics.Float, error) {
	if o.settings.absorptionMode != absorption.ModeContinuous {
		return weight, nil
	}
	if o.processes.Absorption == nil {
		return weight, goupilerr.Missing("transport: absorption=Continuous is set but no absorption model is configured")
	}
	return weight * o.processes.Absorption.ContinuousWeight(xs.Absorption*rho, step), nil
}

// checkTermination evaluates the energy- and length-based stopping
// conditions common to every step. The backward constraint check is
// evaluated first since it only applies under Backward mode and takes
// precedence over the symmetric energy_min/energy_max bounds: the
// backward walk terminates when sampled energy crosses the constraint.
func (o *Agent) checkTermination(energy, length numerics.Float) (Status, bool) {
	if o.settings.mode == ModeBackward && o.settings.constraint != nil && energy >= *o.settings.constraint {
		return EnergyConstraint, true
	}
	if o.settings.energyMin != nil && energy < *o.settings.energyMin {
		return EnergyMin, true
	}
	if o.settings.energyMax != nil && energy > *o.settings.energyMax {
		return EnergyMax, true
	}
	if o.settings.lengthMax != nil && length >= *o.settings.lengthMax {
		return LengthMax, true
	}
	return inFlight, false
}

// pack assembles the current photon state from the agent's tracer and the
// loop-local scalars Run threads through its iterations.
func (o *Agent) pack(energy numerics.Float, dir numerics.Vec3, length, weight numerics.Float) PhotonState {
	return PhotonState{
		Energy:    energy,
		Position:  o.tracer.Position(),
		Direction: dir,
		Length:    length,
		Weight:    weight,
	}
}
