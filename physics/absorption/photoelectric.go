// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package absorption

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/kvernet/goupil/numerics"
)

func init() {
	allocators["photoelectric"] = func() Model { return new(Photoelectric) }
}

// Photoelectric approximates the photoelectric absorption cross-section by
// the well-known steep Z^5/E^3.5 scaling (valid away from absorption-edge
// structure), the simplest closed-form absorption law consistent with the
// spec's description of absorption as a low-energy-dominant process.
type Photoelectric struct {
	z     numerics.Float
	scale numerics.Float
}

// Init implements absorption.Model
func (o *Photoelectric) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "z":
			o.z = numerics.Float(p.V)
		case "scale":
			o.scale = numerics.Float(p.V)
		default:
			return chk.Err("photoelectric: unknown parameter %q", p.N)
		}
	}
	if o.z <= 0 {
		o.z = 8
	}
	if o.scale <= 0 {
		o.scale = 1e-3
	}
	return nil
}

// GetPrms implements absorption.Model
func (o *Photoelectric) GetPrms(example bool) dbf.Params {
	return []*fun.P{
		{N: "z", V: 8},
		{N: "scale", V: 1e-3},
	}
}

// CrossSection implements absorption.Model
func (o *Photoelectric) CrossSection(energy numerics.Float) numerics.Float {
	if energy <= 0 {
		return 0
	}
	zf := float64(o.z)
	ef := float64(energy)
	return o.scale * numerics.Float(math.Pow(zf, 5)/math.Pow(ef, 3.5))
}

// ContinuousWeight implements absorption.Model via the standard
// exponential implicit-capture survival probability exp(-μ·step).
func (o *Photoelectric) ContinuousWeight(macroXS, step numerics.Float) numerics.Float {
	if macroXS < 0 || step < 0 {
		return 1
	}
	return numerics.Float(math.Exp(-float64(macroXS * step)))
}
