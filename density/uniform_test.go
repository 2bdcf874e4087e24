// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/kvernet/goupil/numerics"
)

func TestUniform_basic(tst *testing.T) {
	chk.PrintTitle("Uniform_basic")

	mdl, err := New("uniform")
	if err != nil {
		tst.Fatal(err)
	}
	err = mdl.Init(mdl.GetPrms(true))
	if err != nil {
		tst.Fatal(err)
	}
	pos := numerics.NewVec3(0, 0, 0)
	dir := numerics.NewVec3(0, 0, 1)
	chk.Scalar(tst, "rho", 1e-15, float64(mdl.Rho(pos)), 1.0)
	chk.Scalar(tst, "column depth", 1e-15, float64(mdl.ColumnDepth(pos, dir, 10.0)), 10.0)
	CheckColumnDepthDerivative(tst, mdl, pos, dir, 1e-8, chk.Verbose)
}

func TestUniform_unknownParam(tst *testing.T) {
	chk.PrintTitle("Uniform_unknownParam")
	mdl := new(Uniform)
	err := mdl.Init(mdl.GetPrms(true))
	if err != nil {
		tst.Fatal(err)
	}
	bad := mdl.GetPrms(true)
	bad[0].N = "bogus"
	if err := mdl.Init(bad); err == nil {
		tst.Error("expected an error for an unknown parameter")
	}
}

func TestNew_unknownModel(tst *testing.T) {
	chk.PrintTitle("New_unknownModel")
	if _, err := New("does-not-exist"); err == nil {
		tst.Error("expected an error for an unknown model")
	}
}
