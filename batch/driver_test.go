// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/kvernet/goupil/density"
	"github.com/kvernet/goupil/geometry"
	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/material"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/physics/absorption"
	"github.com/kvernet/goupil/physics/compton"
	"github.com/kvernet/goupil/rng"
	"github.com/kvernet/goupil/topo"
	"github.com/kvernet/goupil/transport"
)

func uniformDensity(tst *testing.T) density.Model {
	m, err := density.New("uniform")
	if err != nil {
		tst.Fatal(err)
	}
	if err := m.Init(m.GetPrms(true)); err != nil {
		tst.Fatal(err)
	}
	return m
}

func emptyRegistry(tst *testing.T, rows int) material.Registry {
	reg := material.NewInMemoryRegistry()
	energies := []numerics.Float{0.001, 10}
	xs := []material.CrossSection{{}, {}}
	for i := 0; i < rows; i++ {
		if _, err := reg.AddMaterial(material.Definition{Name: "vacuum"}, energies, xs); err != nil {
			tst.Fatal(err)
		}
	}
	if err := reg.Compile(); err != nil {
		tst.Fatal(err)
	}
	return reg
}

// TestBatch_uniformHalfSpaceStraightPath traces a single photon straight
// up (+z) through a uniform medium and checks the recorded column depth.
func TestBatch_uniformHalfSpaceStraightPath(tst *testing.T) {
	chk.PrintTitle("Batch_uniformHalfSpaceStraightPath")
	g := geometry.NewSimple(0, uniformDensity(tst), "")
	driver, err := NewDriver(g, emptyRegistry(tst, 1), rng.NewDefaultStream(1), transport.NewSettings(), transport.Processes{})
	if err != nil {
		tst.Fatal(err)
	}

	states := []transport.PhotonState{{
		Energy:    1.0,
		Position:  numerics.Vec3{0, 0, 0},
		Direction: numerics.Vec3{0, 0, 1},
		Weight:    1.0,
	}}
	lengths := []numerics.Float{10.0}

	rows, err := driver.Trace(states, lengths, true, nil)
	if err != nil {
		tst.Fatal(err)
	}
	if len(rows) != 1 || len(rows[0]) != 1 {
		tst.Fatalf("expected a single (1,1) row, got %v", rows)
	}
	chk.Scalar(tst, "column depth", 1e-9, rows[0][0], 10.0)
}

// twoFlatLayers builds a two-layer stratified geometry fixture: a flat top
// surface at z=1 over a flat middle surface at z=0, with a second layer
// unbounded below it.
func twoFlatLayers(tst *testing.T) geometry.Definition {
	top, err := topo.NewConstantMap(-100, 100, -100, 100, 1.0)
	if err != nil {
		tst.Fatal(err)
	}
	middle, err := topo.NewConstantMap(-100, 100, -100, 100, 0.0)
	if err != nil {
		tst.Fatal(err)
	}
	g, err := geometry.NewStratifiedGeometry(
		[]geometry.Sector{
			{MaterialIndex: 0, Density: uniformDensity(tst)},
			{MaterialIndex: 1, Density: uniformDensity(tst)},
		},
		[]*topo.Surface{topo.NewSurface(0, top), topo.NewSurface(0, middle), nil},
	)
	if err != nil {
		tst.Fatal(err)
	}
	return g
}

// TestBatch_twoFlatStratifiedLayers traces and locates a photon entering
// the top layer of a two-layer stratified geometry.
func TestBatch_twoFlatStratifiedLayers(tst *testing.T) {
	chk.PrintTitle("Batch_twoFlatStratifiedLayers")
	g := twoFlatLayers(tst)
	driver, err := NewDriver(g, emptyRegistry(tst, 2), rng.NewDefaultStream(1), transport.NewSettings(), transport.Processes{})
	if err != nil {
		tst.Fatal(err)
	}

	states := []transport.PhotonState{{
		Energy:    1.0,
		Position:  numerics.Vec3{0, 0, 0.25},
		Direction: numerics.Vec3{0, 0, 1},
		Weight:    1.0,
	}}

	rows, err := driver.Trace(states, nil, false, nil)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "sector0 depth", 1e-6, rows[0][0], 0.75)
	chk.Scalar(tst, "sector1 depth", 1e-6, rows[0][1], 0.0)

	located, err := driver.Locate(states, nil)
	if err != nil {
		tst.Fatal(err)
	}
	if len(located) != 1 || located[0] != 0 {
		tst.Fatalf("expected locate=[0], got %v", located)
	}
}

// TestBatch_locateOutside locates a photon above the top layer and expects
// the outside sentinel.
func TestBatch_locateOutside(tst *testing.T) {
	chk.PrintTitle("Batch_locateOutside")
	g := twoFlatLayers(tst)
	driver, err := NewDriver(g, emptyRegistry(tst, 2), rng.NewDefaultStream(1), transport.NewSettings(), transport.Processes{})
	if err != nil {
		tst.Fatal(err)
	}

	states := []transport.PhotonState{{
		Energy:    1.0,
		Position:  numerics.Vec3{0, 0, 2.0},
		Direction: numerics.Vec3{0, 0, 1},
		Weight:    1.0,
	}}
	located, err := driver.Locate(states, nil)
	if err != nil {
		tst.Fatal(err)
	}
	if len(located) != 1 || located[0] != g.NumSectors() {
		tst.Fatalf("expected locate=[%d] (outside sentinel), got %v", g.NumSectors(), located)
	}
}

// TestBatch_forwardComptonTermination runs a forward photon through a
// dense, Compton-dominated medium until it is absorbed or falls below the
// minimum energy.
func TestBatch_forwardComptonTermination(tst *testing.T) {
	chk.PrintTitle("Batch_forwardComptonTermination")
	g := geometry.NewSimple(0, uniformDensity(tst), "")

	reg := material.NewInMemoryRegistry()
	energies := []numerics.Float{0.001, 10}
	// Compton dominates photoelectric absorption at 1 MeV by roughly two
	// orders of magnitude in real media; keep that ratio so the photon
	// almost certainly scatters down in energy before it is absorbed.
	row := material.CrossSection{Total: 1.01, Compton: 1.0, Absorption: 0.01}
	if _, err := reg.AddMaterial(material.Definition{Name: "dense"}, energies, []material.CrossSection{row, row}); err != nil {
		tst.Fatal(err)
	}

	settings := transport.NewSettings()
	if err := settings.SetComptonMode(compton.ModeDirect); err != nil {
		tst.Fatal(err)
	}
	settings.SetAbsorptionMode(absorption.ModeDiscrete)
	min := numerics.Float(0.05)
	settings.SetEnergyMin(&min)

	comptonModel, err := compton.New("klein-nishina")
	if err != nil {
		tst.Fatal(err)
	}
	if err := comptonModel.Init(comptonModel.GetPrms(true)); err != nil {
		tst.Fatal(err)
	}
	absorptionModel, err := absorption.New("photoelectric")
	if err != nil {
		tst.Fatal(err)
	}
	if err := absorptionModel.Init(absorptionModel.GetPrms(true)); err != nil {
		tst.Fatal(err)
	}

	driver, err := NewDriver(g, reg, rng.NewDefaultStream(42), settings, transport.Processes{Compton: comptonModel, Absorption: absorptionModel})
	if err != nil {
		tst.Fatal(err)
	}

	states := []transport.PhotonState{{
		Energy:    1.0,
		Position:  numerics.Vec3{0, 0, 0},
		Direction: numerics.Vec3{0, 0, 1},
		Weight:    1.0,
	}}

	outStates, outStatus, err := driver.Transport(states, nil, nil)
	if err != nil {
		tst.Fatal(err)
	}
	if len(outStatus) != 1 {
		tst.Fatalf("expected one status, got %d", len(outStatus))
	}
	if outStatus[0] != transport.Absorbed && outStatus[0] != transport.EnergyMin {
		tst.Fatalf("expected Absorbed or EnergyMin, got %v", outStatus[0])
	}
	if outStates[0].Energy >= 1.0 {
		tst.Errorf("expected energy strictly below 1.0 MeV, got %v", outStates[0].Energy)
	}
	chk.Scalar(tst, "weight", 1e-15, outStates[0].Weight, 1.0)
}

// TestBatch_backwardConstrained runs adjoint photons against an energy
// constraint and checks every photon terminates at or above it.
func TestBatch_backwardConstrained(tst *testing.T) {
	chk.PrintTitle("Batch_backwardConstrained")
	g := geometry.NewSimple(0, uniformDensity(tst), "")

	reg := material.NewInMemoryRegistry()
	energies := []numerics.Float{0.001, 10}
	row := material.CrossSection{Total: 1.0, Compton: 1.0}
	if _, err := reg.AddMaterial(material.Definition{Name: "medium"}, energies, []material.CrossSection{row, row}); err != nil {
		tst.Fatal(err)
	}

	settings := transport.NewSettings()
	if err := settings.SetComptonMode(compton.ModeAdjoint); err != nil {
		tst.Fatal(err)
	}
	constraint := numerics.Float(0.5)
	settings.SetConstraint(&constraint)

	comptonModel, err := compton.New("klein-nishina")
	if err != nil {
		tst.Fatal(err)
	}
	if err := comptonModel.Init(comptonModel.GetPrms(true)); err != nil {
		tst.Fatal(err)
	}

	driver, err := NewDriver(g, reg, rng.NewDefaultStream(99), settings, transport.Processes{Compton: comptonModel})
	if err != nil {
		tst.Fatal(err)
	}

	const n = 50
	states := make([]transport.PhotonState, n)
	for i := range states {
		states[i] = transport.PhotonState{
			Energy:    0.1,
			Position:  numerics.Vec3{0, 0, 0},
			Direction: numerics.Vec3{0, 0, 1},
			Weight:    1.0,
		}
	}

	outStates, outStatus, err := driver.Transport(states, nil, nil)
	if err != nil {
		tst.Fatal(err)
	}
	for i, status := range outStatus {
		if status != transport.EnergyConstraint {
			tst.Fatalf("photon %d: expected EnergyConstraint, got %v", i, status)
		}
		if outStates[i].Energy < constraint {
			tst.Errorf("photon %d: expected energy >= %v, got %v", i, constraint, outStates[i].Energy)
		}
	}
}

// TestBatch_cancellation exercises the cancellation path on a batch large
// enough that the probe fires before the batch completes.
func TestBatch_cancellation(tst *testing.T) {
	chk.PrintTitle("Batch_cancellation")
	g := geometry.NewSimple(0, uniformDensity(tst), "")
	settings := transport.NewSettings()
	lengthMax := numerics.Float(1.0)
	settings.SetLengthMax(&lengthMax)
	driver, err := NewDriver(g, emptyRegistry(tst, 1), rng.NewDefaultStream(1), settings, transport.Processes{})
	if err != nil {
		tst.Fatal(err)
	}

	const n = 5000
	states := make([]transport.PhotonState, n)
	for i := range states {
		states[i] = transport.PhotonState{
			Energy:    1.0,
			Position:  numerics.Vec3{0, 0, 0},
			Direction: numerics.Vec3{0, 0, 1},
			Weight:    1.0,
		}
	}

	calls := 0
	probe := func() bool {
		calls++
		return calls > 1 // abort on the second poll
	}

	outStates, outStatus, err := driver.Transport(states, nil, probe)
	if err == nil {
		tst.Fatal("expected a Cancelled error")
	}
	if !goupilerr.Is(err, goupilerr.CancelledKind) {
		tst.Errorf("expected a Cancelled error kind, got %v", err)
	}
	if len(outStates) == 0 {
		tst.Error("expected at least one already-written state")
	}
	if len(outStates) >= n {
		tst.Error("expected at least one untouched state")
	}
	_ = outStatus
}
