// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compton

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/num"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/rng"
)

func init() {
	allocators["klein-nishina"] = func() Model { return new(KleinNishina) }
}

// ElectronMass is the electron rest energy, m_e c^2, in the same energy
// unit the caller uses throughout (MeV by convention).
const ElectronMass = 0.510998950

// KleinNishina samples the Klein-Nishina differential cross-section: the
// ratio k=E'/E of the scattered to incident photon energy is drawn either
// by rejection sampling against an envelope, or by inverting its
// cumulative distribution with a one-dimensional gosl/num.NlSolver
// root-find, mirrored on msolid/hyperelast1.go's CalcEps0 use of
// num.NlSolver.
type KleinNishina struct {
	rejectTrials int // 0 means "use the package default"
}

// Init implements compton.Model
func (o *KleinNishina) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "rejecttrials":
			o.rejectTrials = int(p.V)
		default:
			return chk.Err("klein-nishina: unknown parameter %q", p.N)
		}
	}
	if o.rejectTrials <= 0 {
		o.rejectTrials = 1000
	}
	return nil
}

// GetPrms implements compton.Model
func (o *KleinNishina) GetPrms(example bool) dbf.Params {
	return []*fun.P{
		{N: "rejectTrials", V: 1000},
	}
}

// alpha returns the reduced photon energy E/mc²
func alpha(energy numerics.Float) numerics.Float {
	return energy / ElectronMass
}

// kMin returns the minimum energy ratio (180° backscatter) for a given alpha
func kMin(a numerics.Float) numerics.Float {
	return 1 / (1 + 2*a)
}

// shape is the unnormalised Klein-Nishina density in k=E'/E at reduced
// energy a = E/mc² (the standard Compton formula, Klein & Nishina 1929).
func shape(k, a numerics.Float) numerics.Float {
	cosTheta := 1 - (1/k-1)/a
	sin2 := 1 - cosTheta*cosTheta
	if sin2 < 0 {
		sin2 = 0
	}
	return k + 1/k - sin2
}

// shapeMax bounds shape(k,a) over k in [kMin(a),1], attained at one of the
// two endpoints for this unimodal-at-the-boundary family.
func shapeMax(a numerics.Float) numerics.Float {
	lo := shape(kMin(a), a)
	hi := shape(1, a)
	if lo > hi {
		return lo
	}
	return hi
}

// CrossSection implements compton.Model via a direct quadrature of shape(k,a)
// over k in [kMin,1], adequate for the weighting uses in this package (the
// absolute normalisation cancels out of every sampling ratio computed here).
func (o *KleinNishina) CrossSection(energy numerics.Float) numerics.Float {
	a := alpha(energy)
	km := kMin(a)
	const n = 64
	sum := numerics.Float(0)
	dk := (1 - km) / n
	for i := 0; i < n; i++ {
		k0 := km + numerics.Float(i)*dk
		k1 := k0 + dk
		sum += (shape(k0, a) + shape(k1, a)) / 2 * dk
	}
	return sum / a
}

// sampleRejection draws k by rejection against the shape's own bound.
func (o *KleinNishina) sampleRejection(u rng.Stream, a numerics.Float) (numerics.Float, error) {
	km := kMin(a)
	mx := shapeMax(a)
	for trial := 0; trial < o.rejectTrials; trial++ {
		k := km + u.Uniform()*(1-km)
		if u.Uniform()*mx <= shape(k, a) {
			return k, nil
		}
	}
	return 0, chk.Err("klein-nishina: rejection sampling did not converge in %d trials", o.rejectTrials)
}

// sampleInverseTransform draws k by inverting the CDF of shape(.,a) via a
// one-dimensional Newton/trust-region solve (gosl/num.NlSolver), the same
// call shape as msolid/hyperelast1.go's CalcEps0: Init(ndim, ffcn, nil,
// jfcn, true, false, params), SetTols, Solve(x, silent).
func (o *KleinNishina) sampleInverseTransform(target, a numerics.Float) (numerics.Float, error) {
	km := float64(kMin(a))
	af := float64(a)

	// cdf(k) integrates shape(.,a) from km to k by a fixed fine quadrature;
	// norm is cdf(1).
	cdf := func(k float64) float64 {
		const n = 256
		dk := (k - km) / n
		sum := 0.0
		for i := 0; i < n; i++ {
			k0 := km + float64(i)*dk
			k1 := k0 + dk
			sum += (float64(shape(numerics.Float(k0), a)) + float64(shape(numerics.Float(k1), a))) / 2 * dk
		}
		return sum
	}
	norm := cdf(1.0)
	if norm <= 0 {
		return 0, chk.Err("klein-nishina: degenerate cross-section at alpha=%v", af)
	}

	var nls num.NlSolver
	defer nls.Clean()
	nls.Init(1, func(fx, x []float64) error {
		k := x[0]
		if k < km {
			k = km
		}
		if k > 1 {
			k = 1
		}
		fx[0] = cdf(k)/norm - target
		return nil
	}, nil, func(J [][]float64, x []float64) (err error) {
		k := x[0]
		J[0][0] = float64(shape(numerics.Float(k), a)) / norm
		return nil
	}, true, false, map[string]float64{"lSearch": 0})

	x := []float64{(km + 1) / 2}
	nls.SetTols(1e-9, 1e-9, 1e-12, num.EPS)
	if err := nls.Solve(x, true); err != nil {
		return 0, chk.Err("klein-nishina: inverse-transform solve failed: %v", err)
	}
	k := numerics.Float(x[0])
	if k < kMin(a) {
		k = kMin(a)
	}
	if k > 1 {
		k = 1
	}
	return k, nil
}

// sampleK draws k=E'/E at reduced energy a using the requested method.
func (o *KleinNishina) sampleK(u rng.Stream, method Method, a numerics.Float) (numerics.Float, error) {
	switch method {
	case MethodInverseTransform:
		return o.sampleInverseTransform(u.Uniform(), a)
	default:
		return o.sampleRejection(u, a)
	}
}

// Sample implements compton.Model.
func (o *KleinNishina) Sample(u rng.Stream, mode Mode, method Method, energy numerics.Float, dir numerics.Vec3) (newEnergy numerics.Float, newDir numerics.Vec3, weight numerics.Float, err error) {
	phi := 2 * math.Pi * u.Uniform()

	switch mode {
	case ModeDirect:
		a := alpha(energy)
		k, serr := o.sampleK(u, method, a)
		if serr != nil {
			return 0, numerics.Vec3{}, 0, serr
		}
		cosTheta := 1 - (1/k-1)/a
		newEnergy = k * energy
		newDir = dir.Deflect(cosTheta, numerics.Float(phi))
		weight = 1
		return newEnergy, newDir, weight, nil

	case ModeAdjoint, ModeInverse:
		// Inverse always uses InverseTransform sampling.
		if mode == ModeInverse {
			method = MethodInverseTransform
		}
		// energy here is E', the post-scatter energy of the time-reversed
		// trajectory. Sample k with E' standing in for the reference
		// energy, recover the precursor energy E=E'/k, then reweight by
		// the ratio of the true forward density (evaluated at the
		// recovered E) to the adjoint sampling density (evaluated at E').
		aPrime := alpha(energy)
		k, serr := o.sampleK(u, method, aPrime)
		if serr != nil {
			return 0, numerics.Vec3{}, 0, serr
		}
		precursor := energy / k
		aTrue := alpha(precursor)
		fwd := shape(k, aTrue) / aTrue
		adj := shape(k, aPrime) / aPrime
		if adj <= 0 {
			return 0, numerics.Vec3{}, 0, chk.Err("klein-nishina: degenerate adjoint density")
		}
		cosTheta := 1 - (1/k-1)/aPrime
		newEnergy = precursor
		// the backward trajectory retraces the forward scattering angle
		// about the reversed incoming direction.
		newDir = dir.Scale(-1).Deflect(cosTheta, numerics.Float(phi)).Scale(-1)
		weight = fwd / adj
		return newEnergy, newDir, weight, nil

	default:
		return 0, numerics.Vec3{}, 0, chk.Err("klein-nishina: mode %v does not sample an interaction", mode)
	}
}
