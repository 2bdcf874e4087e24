// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/topo"
)

// twoFlatLayers builds a two-layer fixture: sector 0 between the top
// interface at z=1.0 and a middle interface at z=0.0; sector 1 between
// the middle interface and an unbounded bottom.
func twoFlatLayers(tst *testing.T) *StratifiedGeometry {
	top, err := topo.NewConstantMap(-100, 100, -100, 100, 1.0)
	if err != nil {
		tst.Fatal(err)
	}
	middle, err := topo.NewConstantMap(-100, 100, -100, 100, 0.0)
	if err != nil {
		tst.Fatal(err)
	}
	sTop := topo.NewSurface(0, top)
	sMiddle := topo.NewSurface(0, middle)

	g, err := NewStratifiedGeometry(
		[]Sector{
			{MaterialIndex: 0, Density: newUniform(tst, 1.0)},
			{MaterialIndex: 1, Density: newUniform(tst, 1.0)},
		},
		[]*topo.Surface{sTop, sMiddle, nil},
	)
	if err != nil {
		tst.Fatal(err)
	}
	return g
}

func TestStratified_traceThroughOneLayer(tst *testing.T) {
	chk.PrintTitle("Stratified_traceThroughOneLayer")
	g := twoFlatLayers(tst)

	tr := g.NewTracer()
	if err := tr.Reset(numerics.Vec3{0, 0, 0.25}, numerics.Vec3{0, 0, 1}); err != nil {
		tst.Fatal(err)
	}
	idx, ok := tr.Sector()
	if !ok || idx != 0 {
		tst.Fatalf("expected sector 0, got (%d,%v)", idx, ok)
	}

	const huge = numerics.Float(1e6)
	accum := make([]numerics.Float, 2)
	for {
		s, ok := tr.Sector()
		if !ok {
			break
		}
		step, err := tr.Trace(huge)
		if err != nil {
			tst.Fatal(err)
		}
		accum[s] += step
		if err := tr.Update(step, numerics.Vec3{0, 0, 1}); err != nil {
			tst.Fatal(err)
		}
		if step == 0 {
			break
		}
	}
	chk.Scalar(tst, "sector0 depth", 1e-6, accum[0], 0.75)
	chk.Scalar(tst, "sector1 depth", 1e-6, accum[1], 0.0)
}

func TestStratified_locateOutside(tst *testing.T) {
	chk.PrintTitle("Stratified_locateOutside")
	g := twoFlatLayers(tst)
	tr := g.NewTracer()
	if err := tr.Reset(numerics.Vec3{0, 0, 2.0}, numerics.Vec3{0, 0, 1}); err != nil {
		tst.Fatal(err)
	}
	if _, ok := tr.Sector(); ok {
		tst.Error("expected outside above the top interface")
	}
}

func TestStratified_sectorAtBottomLayerIsUnbounded(tst *testing.T) {
	chk.PrintTitle("Stratified_sectorAtBottomLayerIsUnbounded")
	g := twoFlatLayers(tst)
	idx, ok := g.SectorAt(numerics.Vec3{0, 0, -500})
	if !ok || idx != 1 {
		tst.Fatalf("expected sector 1 (unbounded below), got (%d,%v)", idx, ok)
	}
}

func TestStratified_zColumn(tst *testing.T) {
	chk.PrintTitle("Stratified_zColumn")
	g := twoFlatLayers(tst)
	col := g.ZColumn(0, 0)
	if len(col) != 3 {
		tst.Fatalf("expected 3 interfaces, got %d", len(col))
	}
	if !col[0].Defined || !col[1].Defined || col[2].Defined {
		tst.Fatalf("unexpected definedness: %+v", col)
	}
	chk.Scalar(tst, "top", 1e-15, col[0].Z, 1.0)
	chk.Scalar(tst, "middle", 1e-15, col[1].Z, 0.0)
}

func TestStratified_mismatchedSurfaceCount(tst *testing.T) {
	chk.PrintTitle("Stratified_mismatchedSurfaceCount")
	if _, err := NewStratifiedGeometry([]Sector{{}}, []*topo.Surface{nil}); err == nil {
		tst.Error("expected an error: need len(sectors)+1 surfaces")
	}
}

func TestStratified_updateSectorRoundtrip(tst *testing.T) {
	chk.PrintTitle("Stratified_updateSectorRoundtrip")
	g := twoFlatLayers(tst)
	if err := g.UpdateSector(0, 9, nil); err != nil {
		tst.Fatal(err)
	}
	s, err := g.Sector(0)
	if err != nil {
		tst.Fatal(err)
	}
	if s.MaterialIndex != 9 {
		tst.Errorf("expected material index 9, got %d", s.MaterialIndex)
	}
}
