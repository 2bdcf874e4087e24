// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
	"github.com/kvernet/goupil/numerics"
)

// Tabulated implements a density field given as a monotone table of
// (height, density) pairs along a chosen axis, with piecewise-linear
// interpolation between samples. Column depth is accumulated by
// integrating the interpolated profile with gosl/ode, the same
// "swept-parameter accumulation" idiom as mdl/retention.Model.Update.
type Tabulated struct {
	axis   int
	height []numerics.Float
	rho    []numerics.Float
}

// add model to factory
func init() {
	allocators["tabulated"] = func() Model { return new(Tabulated) }
}

// Init initialises the model. Parameters "h0","rho0","h1","rho1",... give
// the table rows; "axis" selects the coordinate (default 2, z).
func (o *Tabulated) Init(prms dbf.Params) (err error) {
	o.axis = 2
	rows := map[int][2]numerics.Float{}
	for _, p := range prms {
		name := strings.ToLower(p.N)
		switch {
		case name == "axis":
			o.axis = int(p.V)
		case strings.HasPrefix(name, "h"):
			idx, e := parseTableIndex(name[1:])
			if e != nil {
				return chk.Err("tabulated: parameter named %q is incorrect\n", p.N)
			}
			row := rows[idx]
			row[0] = numerics.Float(p.V)
			rows[idx] = row
		case strings.HasPrefix(name, "rho"):
			idx, e := parseTableIndex(name[3:])
			if e != nil {
				return chk.Err("tabulated: parameter named %q is incorrect\n", p.N)
			}
			row := rows[idx]
			row[1] = numerics.Float(p.V)
			rows[idx] = row
		default:
			return chk.Err("tabulated: parameter named %q is incorrect\n", p.N)
		}
	}
	if len(rows) < 2 {
		return chk.Err("tabulated: need at least 2 table rows, got %d", len(rows))
	}
	indices := make([]int, 0, len(rows))
	for idx := range rows {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	o.height = make([]numerics.Float, len(indices))
	o.rho = make([]numerics.Float, len(indices))
	for k, idx := range indices {
		o.height[k] = rows[idx][0]
		o.rho[k] = rows[idx][1]
	}
	for k := 1; k < len(o.height); k++ {
		if o.height[k] <= o.height[k-1] {
			return chk.Err("tabulated: heights must be strictly increasing, row %d", k)
		}
	}
	return nil
}

func parseTableIndex(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, chk.Err("empty table index")
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, chk.Err("invalid table index %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// GetPrms gets (an example) of parameters: a 3-point table
func (o Tabulated) GetPrms(example bool) dbf.Params {
	return []*fun.P{
		{N: "axis", V: 2},
		{N: "h0", V: 0.0}, {N: "rho0", V: 1.225e-3},
		{N: "h1", V: 5000.0}, {N: "rho1", V: 7.36e-4},
		{N: "h2", V: 10000.0}, {N: "rho2", V: 4.14e-4},
	}
}

// Rho linearly interpolates the table at pos[axis], clamping outside the
// table's range (extrapolation by the edge value).
func (o Tabulated) Rho(pos numerics.Vec3) numerics.Float {
	return o.interp(pos[o.axis])
}

func (o Tabulated) interp(h numerics.Float) numerics.Float {
	n := len(o.height)
	if h <= o.height[0] {
		return o.rho[0]
	}
	if h >= o.height[n-1] {
		return o.rho[n-1]
	}
	i := sort.Search(n, func(k int) bool { return o.height[k] >= h }) - 1
	if i < 0 {
		i = 0
	}
	t := float64((h - o.height[i]) / (o.height[i+1] - o.height[i]))
	return o.rho[i] + numerics.Float(t)*(o.rho[i+1]-o.rho[i])
}

// ColumnDepth integrates ρ(s) ds for s in [0,step] along pos+s·dir by
// solving dC/dt = ρ(pos + t·step·dir)·step for t in [0,1] with a stiff
// ODE solver, mirroring mdl/retention.Model.Update's Radau5 usage.
func (o Tabulated) ColumnDepth(pos, dir numerics.Vec3, step numerics.Float) numerics.Float {
	if step == 0 {
		return 0
	}
	fcn := func(f []float64, dt, t float64, y []float64) error {
		s := numerics.Float(t) * step
		h := pos[o.axis] + s*dir[o.axis]
		f[0] = float64(o.interp(h) * step)
		return nil
	}
	jac := func(dfdy *la.Triplet, dt, t float64, y []float64) error {
		if dfdy.Max() == 0 {
			dfdy.Init(1, 1, 1)
		}
		dfdy.Start()
		dfdy.Put(0, 0, 0)
		return nil
	}
	var solver ode.Solver
	solver.Init("Radau5", 1, fcn, jac, nil, nil)
	solver.SetTol(1e-10, 1e-8)
	solver.Distr = false
	y := []float64{0}
	err := solver.Solve(y, 0, 1, 1, false)
	if err != nil {
		// fall back to the trapezoidal rule if the stiff solver balks
		// (e.g. a degenerate one-point table range)
		return (o.Rho(pos) + o.Rho(pos.AddScaled(dir, step))) / 2 * step
	}
	return numerics.Float(y[0])
}
