// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/kvernet/goupil/numerics"
)

// Uniform implements a constant mass density ρ.
type Uniform struct {
	rho numerics.Float // g/cm³
}

// add model to factory
func init() {
	allocators["uniform"] = func() Model { return new(Uniform) }
}

// Init initialises model
func (o *Uniform) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "rho":
			o.rho = numerics.Float(p.V)
		default:
			return chk.Err("uniform: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Uniform) GetPrms(example bool) dbf.Params {
	return []*fun.P{
		{N: "rho", V: 1.0},
	}
}

// Rho returns the constant density
func (o Uniform) Rho(pos numerics.Vec3) numerics.Float {
	return o.rho
}

// ColumnDepth computes ρ·step
func (o Uniform) ColumnDepth(pos, dir numerics.Vec3, step numerics.Float) numerics.Float {
	return o.rho * step
}
