// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/transport"
)

// transportCancelInterval is the number of photons processed between
// cancellation polls.
const transportCancelInterval = 100

// Transport runs the Transport Agent over every input state, writing back
// the updated state and terminating status. Material tables are lazily
// compiled if required (material.Registry.Compile is idempotent).
// sourceEnergies, when non-nil, sets settings.constraint per photon from
// the matching entry before that photon is run, connecting adjoint
// trajectories to sources of a prescribed energy.
func (o *Driver) Transport(states []transport.PhotonState, sourceEnergies []numerics.Float, probe CancelProbe) ([]transport.PhotonState, []transport.Status, error) {
	if sourceEnergies != nil && len(sourceEnergies) != len(states) {
		return nil, nil, goupilerr.InvalidArgument("batch: transport: source_energies has %d entries for %d states", len(sourceEnergies), len(states))
	}
	if err := o.registry.Compile(); err != nil {
		return nil, nil, err
	}

	o.geom.BeginBatch()
	defer o.geom.EndBatch()

	agent, err := transport.NewAgent(o.geom, o.registry, o.u, o.settings, o.processes)
	if err != nil {
		return nil, nil, err
	}

	outStates := make([]transport.PhotonState, 0, len(states))
	outStatus := make([]transport.Status, 0, len(states))

	for i, s := range states {
		if checkCancel(probe, i, transportCancelInterval) {
			return outStates, outStatus, cancelledErr(i)
		}
		if sourceEnergies != nil {
			e := sourceEnergies[i]
			o.settings.SetConstraint(&e)
		}
		ps, status, err := agent.Run(s)
		if err != nil {
			return outStates, outStatus, err
		}
		outStates = append(outStates, ps)
		outStatus = append(outStatus, status)
	}
	return outStates, outStatus, nil
}
