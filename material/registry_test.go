// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func newTestRegistry(tst *testing.T) *InMemoryRegistry {
	reg := NewInMemoryRegistry()
	_, err := reg.AddMaterial(
		Definition{Name: "water", Model: "klein-nishina"},
		[]float64{0.01, 1.0, 10.0},
		[]CrossSection{
			{Total: 5.0, Compton: 0.1, Rayleigh: 4.8, Absorption: 0.1},
			{Total: 0.07, Compton: 0.07, Rayleigh: 0.0, Absorption: 0.0},
			{Total: 0.02, Compton: 0.02, Rayleigh: 0.0, Absorption: 0.0},
		},
	)
	if err != nil {
		tst.Fatal(err)
	}
	return reg
}

func TestRegistry_lookupAndInterp(tst *testing.T) {
	chk.PrintTitle("Registry_lookupAndInterp")
	reg := newTestRegistry(tst)

	if err := reg.Compile(); err != nil {
		tst.Fatal(err)
	}
	if err := reg.Compile(); err != nil { // idempotent
		tst.Fatal(err)
	}

	xs, err := reg.CrossSectionAt(0, 0.505) // midpoint of [0.01,1.0], inside the table range
	if err != nil {
		tst.Fatal(err)
	}
	if xs.Total <= 0.07 || xs.Total >= 5.0 {
		tst.Errorf("expected interpolated value between table rows, got %v", xs.Total)
	}

	// clamped outside range
	xsLow, _ := reg.CrossSectionAt(0, 0.0001)
	chk.Scalar(tst, "clamp low", 1e-15, xsLow.Total, 5.0)
	xsHigh, _ := reg.CrossSectionAt(0, 100.0)
	chk.Scalar(tst, "clamp high", 1e-15, xsHigh.Total, 0.02)
}

func TestRegistry_updateMaterialRoundtrip(tst *testing.T) {
	chk.PrintTitle("Registry_updateMaterialRoundtrip")
	reg := newTestRegistry(tst)

	newDef := Definition{Name: "heavy-water", Model: "klein-nishina", Extra: "D2O"}
	if err := reg.UpdateMaterial(0, newDef); err != nil {
		tst.Fatal(err)
	}
	got, err := reg.Material(0)
	if err != nil {
		tst.Fatal(err)
	}
	if got != newDef {
		tst.Errorf("expected %+v, got %+v", newDef, got)
	}
}

func TestRegistry_jsonRoundtrip(tst *testing.T) {
	chk.PrintTitle("Registry_jsonRoundtrip")
	reg := newTestRegistry(tst)

	data, err := WriteRegistryJSON(reg)
	if err != nil {
		tst.Fatal(err)
	}
	reg2, err := ReadRegistryJSON(data)
	if err != nil {
		tst.Fatal(err)
	}
	if reg2.NumMaterials() != reg.NumMaterials() {
		tst.Fatalf("expected %d materials, got %d", reg.NumMaterials(), reg2.NumMaterials())
	}
	xs1, _ := reg.CrossSectionAt(0, 1.0)
	xs2, _ := reg2.CrossSectionAt(0, 1.0)
	if xs1 != xs2 {
		tst.Errorf("round trip mismatch: %+v vs %+v", xs1, xs2)
	}
}

func TestRegistry_outOfRangeIndex(tst *testing.T) {
	chk.PrintTitle("Registry_outOfRangeIndex")
	reg := newTestRegistry(tst)
	if _, err := reg.Material(5); err == nil {
		tst.Error("expected an error for an out-of-range index")
	}
	if _, err := reg.CrossSectionAt(5, 1.0); err == nil {
		tst.Error("expected an error for an out-of-range index")
	}
}
