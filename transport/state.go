// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package transport implements the per-photon state machine: Settings,
// PhotonState, Status and the Agent that drives one photon's stochastic
// life to a terminating status.
package transport

import (
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/numerics"
)

// PhotonState is the packed photon record crossing the batch boundary: a
// packed record of 9 floats with field order {energy, position[3],
// direction[3], length, weight}.
type PhotonState struct {
	Energy    numerics.Float
	Position  numerics.Vec3
	Direction numerics.Vec3
	Length    numerics.Float
	Weight    numerics.Float
}

// Validate checks the entry invariants: energy > 0, |direction| ≈ 1 on
// entry to transport, weight ≥ 0.
func (o PhotonState) Validate() error {
	if o.Energy <= 0 {
		return goupilerr.InvalidArgument("photon state: energy must be positive, got %v", o.Energy)
	}
	if !o.Direction.IsUnit(1e-6) {
		return goupilerr.InvalidArgument("photon state: direction is not unit: %v", o.Direction)
	}
	if !o.Position.IsFinite() {
		return goupilerr.InvalidArgument("photon state: position is not finite: %v", o.Position)
	}
	if o.Weight < 0 {
		return goupilerr.InvalidArgument("photon state: weight must be non-negative, got %v", o.Weight)
	}
	return nil
}
