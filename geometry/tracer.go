// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import "github.com/kvernet/goupil/numerics"

// GrazingEpsilon is the along-ray nudge a Tracer applies when a step
// resolves to (numerically) zero length at a grazing incidence.
const GrazingEpsilon numerics.Float = 1e-9

// MaxGrazingSteps bounds the number of consecutive zero-length steps a
// Tracer tolerates within one sector before reporting NumericalInstability.
const MaxGrazingSteps = 4

// Tracer is the contract common to all geometry variants: an ephemeral,
// per-photon scratch object tied to a Definition by shared borrow. Reused
// across photons via Reset to avoid per-photon heap allocation.
type Tracer interface {
	// Reset sets the tracer's position and direction and recomputes the
	// current sector. Fails if direction is not unit or position is not
	// finite.
	Reset(position, direction numerics.Vec3) error

	// Sector returns the current sector index, or ok=false if outside.
	Sector() (index int, ok bool)

	// Position returns the current position.
	Position() numerics.Vec3

	// Trace advances along the current direction up to maxLength or until
	// a sector boundary, whichever comes first, and returns the step
	// length actually taken. Does not mutate position; the caller applies
	// Update. A zero-length result is possible at a grazing or exact
	// boundary position; the Stratified tracer's Update reports
	// NumericalInstability once more than MaxGrazingSteps such steps occur
	// in a row.
	Trace(maxLength numerics.Float) (numerics.Float, error)

	// Update commits a step of the given length along the given direction,
	// recomputing the current sector. At exact boundary positions the
	// tracer reports the sector being entered, perturbing by
	// GrazingEpsilon if needed to break a zero-length stall.
	Update(step numerics.Float, direction numerics.Vec3) error
}
