// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rayleigh

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/rng"
)

func init() {
	allocators["form-factor"] = func() Model { return new(FormFactor) }
}

// FormFactor samples Rayleigh scattering from an angular distribution built
// from the classical (1+cos²θ) Thomson factor attenuated by an atomic
// form-factor falloff that sharpens with the material's atomic number and
// the photon energy, the standard coherent-scattering approximation. The
// scattering cosine is drawn by rejection sampling, mirrored on
// physics/compton.KleinNishina's own rejection loop.
type FormFactor struct {
	z            numerics.Float // effective atomic number of the scattering medium
	rejectTrials int
}

// Init implements rayleigh.Model
func (o *FormFactor) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "z":
			o.z = numerics.Float(p.V)
		case "rejecttrials":
			o.rejectTrials = int(p.V)
		default:
			return chk.Err("form-factor: unknown parameter %q", p.N)
		}
	}
	if o.z <= 0 {
		o.z = 8 // oxygen-like default, matches density.Tabulated's atmosphere flavour
	}
	if o.rejectTrials <= 0 {
		o.rejectTrials = 1000
	}
	return nil
}

// GetPrms implements rayleigh.Model
func (o *FormFactor) GetPrms(example bool) dbf.Params {
	return []*fun.P{
		{N: "z", V: 8},
		{N: "rejectTrials", V: 1000},
	}
}

// falloff is the squared atomic form factor approximation: it sharpens
// (favours forward scattering) with both Z and photon energy, through the
// momentum-transfer variable x = (E/mc²)·sqrt((1-cosθ)/2).
func falloff(cosTheta, energy, z numerics.Float) numerics.Float {
	x := (energy / 0.510998950) * numerics.Float(math.Sqrt(float64((1-cosTheta)/2)))
	b := z / 20
	return numerics.Float(math.Exp(-float64(b * x * x)))
}

// density is the unnormalised angular density in cosTheta
func density(cosTheta, energy, z numerics.Float) numerics.Float {
	return (1 + cosTheta*cosTheta) * falloff(cosTheta, energy, z)
}

// CrossSection implements rayleigh.Model by direct quadrature of density
// over cosTheta in [-1,1]; like physics/compton.KleinNishina.CrossSection,
// only ratios of this value are ever used by callers, so an unnormalised
// constant of proportionality is immaterial.
func (o *FormFactor) CrossSection(energy numerics.Float) numerics.Float {
	const n = 64
	sum := numerics.Float(0)
	dc := numerics.Float(2) / n
	for i := 0; i < n; i++ {
		c0 := -1 + numerics.Float(i)*dc
		c1 := c0 + dc
		sum += (density(c0, energy, o.z) + density(c1, energy, o.z)) / 2 * dc
	}
	return sum
}

// Sample implements rayleigh.Model
func (o *FormFactor) Sample(u rng.Stream, mode Mode, energy numerics.Float, dir numerics.Vec3) (newDir numerics.Vec3, err error) {
	if mode != ModeFormFactor {
		return numerics.Vec3{}, chk.Err("form-factor: mode %v does not sample an interaction", mode)
	}
	mx := density(1, energy, o.z) // forward direction bounds the density (monotone falloff in |θ|)
	if d := density(-1, energy, o.z); d > mx {
		mx = d
	}
	for trial := 0; trial < o.rejectTrials; trial++ {
		cosTheta := -1 + 2*u.Uniform()
		if u.Uniform()*mx <= density(cosTheta, energy, o.z) {
			phi := 2 * math.Pi * u.Uniform()
			return dir.Deflect(cosTheta, numerics.Float(phi)), nil
		}
	}
	return numerics.Vec3{}, chk.Err("form-factor: rejection sampling did not converge in %d trials", o.rejectTrials)
}
