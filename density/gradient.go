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

// Gradient implements ρ(pos) = ρ0 + slope·(pos[axis] - origin), a linear
// density-vs-axis profile.
type Gradient struct {
	rho0   numerics.Float
	slope  numerics.Float
	axis   int // 0=x, 1=y, 2=z
	origin numerics.Float
}

// add model to factory
func init() {
	allocators["gradient"] = func() Model { return new(Gradient) }
}

// Init initialises model
func (o *Gradient) Init(prms dbf.Params) (err error) {
	o.axis = 2
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "rho0":
			o.rho0 = numerics.Float(p.V)
		case "slope":
			o.slope = numerics.Float(p.V)
		case "axis":
			o.axis = int(p.V)
		case "origin":
			o.origin = numerics.Float(p.V)
		default:
			return chk.Err("gradient: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.axis < 0 || o.axis > 2 {
		return chk.Err("gradient: axis must be 0, 1 or 2, got %d", o.axis)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Gradient) GetPrms(example bool) dbf.Params {
	return []*fun.P{
		{N: "rho0", V: 1.0},
		{N: "slope", V: -0.1},
		{N: "axis", V: 2},
		{N: "origin", V: 0.0},
	}
}

// Rho returns ρ0 + slope·(pos[axis]-origin)
func (o Gradient) Rho(pos numerics.Vec3) numerics.Float {
	return o.rho0 + o.slope*(pos[o.axis]-o.origin)
}

// ColumnDepth computes the closed-form linear integral of ρ(s) along the
// segment [pos, pos+step·dir]:
//
//	ρ(s) = ρ0 + slope·(pos[axis] + s·dir[axis] - origin)
//	∫_0^step ρ(s) ds = ρ(pos)·step + slope·dir[axis]·step²/2
func (o Gradient) ColumnDepth(pos, dir numerics.Vec3, step numerics.Float) numerics.Float {
	return o.Rho(pos)*step + o.slope*dir[o.axis]*step*step/2
}
