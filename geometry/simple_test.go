// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/kvernet/goupil/density"
	"github.com/kvernet/goupil/numerics"
)

func newUniform(tst *testing.T, rho numerics.Float) density.Model {
	m, err := density.New("uniform")
	if err != nil {
		tst.Fatal(err)
	}
	prms := m.GetPrms(true)
	prms[0].V = float64(rho)
	if err := m.Init(prms); err != nil {
		tst.Fatal(err)
	}
	return m
}

func TestSimple_straightPath(tst *testing.T) {
	chk.PrintTitle("Simple_straightPath")
	g := NewSimple(0, newUniform(tst, 1.0), "")
	if g.NumSectors() != 1 {
		tst.Fatal("expected exactly one sector")
	}

	tr := g.NewTracer()
	if err := tr.Reset(numerics.Vec3{0, 0, 0}, numerics.Vec3{0, 0, 1}); err != nil {
		tst.Fatal(err)
	}
	idx, ok := tr.Sector()
	if !ok || idx != 0 {
		tst.Fatalf("expected sector 0, got (%d,%v)", idx, ok)
	}

	step, err := tr.Trace(10)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "step", 1e-15, step, 10)

	if err := tr.Update(step, numerics.Vec3{0, 0, 1}); err != nil {
		tst.Fatal(err)
	}
	pos := tr.Position()
	chk.Scalar(tst, "z", 1e-15, pos.Z(), 10)
}

func TestSimple_sectorIndexOutOfRange(tst *testing.T) {
	chk.PrintTitle("Simple_sectorIndexOutOfRange")
	g := NewSimple(0, newUniform(tst, 1.0), "")
	if _, err := g.Sector(1); err == nil {
		tst.Error("expected an error for out-of-range sector index")
	}
}

func TestSimple_updateSectorRejectedDuringBatch(tst *testing.T) {
	chk.PrintTitle("Simple_updateSectorRejectedDuringBatch")
	g := NewSimple(0, newUniform(tst, 1.0), "")
	g.BeginBatch()
	defer g.EndBatch()
	if err := g.UpdateSector(0, 1, nil); err == nil {
		tst.Error("expected update_sector to be rejected during an active batch")
	}
}
