// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "math"

// Vec3 is a 3-component vector stored by value so that per-photon scratch
// state never allocates on the heap.
type Vec3 [3]Float

// NewVec3 builds a vector from its three components
func NewVec3(x, y, z Float) Vec3 {
	return Vec3{x, y, z}
}

// Add returns o+p
func (o Vec3) Add(p Vec3) Vec3 {
	return Vec3{o[0] + p[0], o[1] + p[1], o[2] + p[2]}
}

// Sub returns o-p
func (o Vec3) Sub(p Vec3) Vec3 {
	return Vec3{o[0] - p[0], o[1] - p[1], o[2] - p[2]}
}

// Scale returns o*s
func (o Vec3) Scale(s Float) Vec3 {
	return Vec3{o[0] * s, o[1] * s, o[2] * s}
}

// AddScaled returns o + p*s, the hot-path update used by the geometry
// tracer and transport agent to advance a position along a direction.
func (o Vec3) AddScaled(p Vec3, s Float) Vec3 {
	return Vec3{o[0] + p[0]*s, o[1] + p[1]*s, o[2] + p[2]*s}
}

// Dot returns o·p
func (o Vec3) Dot(p Vec3) Float {
	return o[0]*p[0] + o[1]*p[1] + o[2]*p[2]
}

// Cross returns o×p
func (o Vec3) Cross(p Vec3) Vec3 {
	return Vec3{
		o[1]*p[2] - o[2]*p[1],
		o[2]*p[0] - o[0]*p[2],
		o[0]*p[1] - o[1]*p[0],
	}
}

// Norm returns |o|.
func (o Vec3) Norm() Float {
	return Float(math.Sqrt(float64(o.Dot(o))))
}

// Unit returns o normalised, and false if o is degenerate (|o| ~ 0).
func (o Vec3) Unit() (Vec3, bool) {
	n := o.Norm()
	if n < 1e-300 {
		return Vec3{}, false
	}
	return o.Scale(1 / n), true
}

// IsUnit reports whether |o| is within tol of 1, the invariant expected of
// a photon direction on entry to transport.
func (o Vec3) IsUnit(tol Float) bool {
	d := o.Norm() - 1
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// IsFinite reports whether every component of o is finite.
func (o Vec3) IsFinite() bool {
	for _, c := range o {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// X, Y, Z are convenience accessors
func (o Vec3) X() Float { return o[0] }
func (o Vec3) Y() Float { return o[1] }
func (o Vec3) Z() Float { return o[2] }

// Deflect rotates a unit direction by polar angle theta (given as
// cosTheta) and azimuthal angle phi, used by the Compton/Rayleigh process
// samplers to turn a sampled scattering angle into a new photon direction.
// Builds an orthonormal frame (u,v,dir) via an arbitrary perpendicular
// seed, the standard "deflect about an axis" construction.
func (o Vec3) Deflect(cosTheta, phi Float) Vec3 {
	sinTheta := Float(math.Sqrt(float64(1 - cosTheta*cosTheta)))
	if sinTheta < 0 {
		sinTheta = 0
	}

	// pick a seed not parallel to o
	seed := Vec3{1, 0, 0}
	if math.Abs(float64(o[0])) > 0.9 {
		seed = Vec3{0, 1, 0}
	}
	u, _ := o.Cross(seed).Unit()
	v := o.Cross(u) // already unit since o, u orthonormal

	cosPhi := Float(math.Cos(float64(phi)))
	sinPhi := Float(math.Sin(float64(phi)))

	return o.Scale(cosTheta).
		Add(u.Scale(sinTheta * cosPhi)).
		Add(v.Scale(sinTheta * sinPhi))
}
