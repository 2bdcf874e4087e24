// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/kvernet/goupil/numerics"
)

func TestTabulated_interpolation(tst *testing.T) {
	chk.PrintTitle("Tabulated_interpolation")

	mdl, err := New("tabulated")
	if err != nil {
		tst.Fatal(err)
	}
	if err := mdl.Init(mdl.GetPrms(true)); err != nil {
		tst.Fatal(err)
	}

	// midpoint of the first segment should be the arithmetic mean for a
	// linear table
	pos := numerics.NewVec3(0, 0, 2500.0)
	rho := float64(mdl.Rho(pos))
	expected := (1.225e-3 + 7.36e-4) / 2
	chk.Scalar(tst, "rho midpoint", 1e-9, rho, expected)

	// below/above the table clamp to the edge values
	chk.Scalar(tst, "rho below table", 1e-15, float64(mdl.Rho(numerics.NewVec3(0, 0, -100))), 1.225e-3)
	chk.Scalar(tst, "rho above table", 1e-15, float64(mdl.Rho(numerics.NewVec3(0, 0, 20000))), 4.14e-4)
}

func TestTabulated_columnDepthMatchesUniformLimit(tst *testing.T) {
	chk.PrintTitle("Tabulated_columnDepthMatchesUniformLimit")

	// a table whose rows all have equal densities degenerates to the
	// uniform case
	mdl := new(Tabulated)
	prms := mdl.GetPrms(true)
	for _, p := range prms {
		switch p.N {
		case "rho0", "rho1", "rho2":
			p.V = 1.0
		}
	}
	if err := mdl.Init(prms); err != nil {
		tst.Fatal(err)
	}
	pos := numerics.NewVec3(0, 0, 100)
	dir := numerics.NewVec3(0, 0, 1)
	cd := float64(mdl.ColumnDepth(pos, dir, 10))
	chk.Scalar(tst, "uniform-limit column depth", 1e-6, cd, 10.0)
}

func TestTabulated_rejectsNonMonotoneHeights(tst *testing.T) {
	chk.PrintTitle("Tabulated_rejectsNonMonotoneHeights")

	mdl := new(Tabulated)
	prms := mdl.GetPrms(true)
	for _, p := range prms {
		if p.N == "h1" {
			p.V = -1 // breaks strict monotonicity with h0=0
		}
	}
	if err := mdl.Init(prms); err == nil {
		tst.Error("expected an error for non-monotone heights")
	}
}
