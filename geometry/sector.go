// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geometry implements the three geometry-definition variants and
// the per-photon tracer contract: Simple, Stratified and External. Go has
// no sum types, so variant dispatch goes through an interface: each
// variant is a concrete type satisfying the Definition interface,
// the open-interface analogue used throughout this module (density.Model,
// physics/compton.Model).
package geometry

import "github.com/kvernet/goupil/density"

// Sector is a geometry's material assignment: a material-table index plus
// the density model governing column-depth integration within it.
type Sector struct {
	MaterialIndex int
	Density       density.Model
	Description   string
}
