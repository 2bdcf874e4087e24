// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/physics/compton"
)

func TestSettings_defaults(tst *testing.T) {
	chk.PrintTitle("Settings_defaults")
	s := NewSettings()
	if s.Mode() != ModeForward {
		tst.Errorf("expected Forward by default, got %v", s.Mode())
	}
	if s.ComptonMode() != compton.ModeNone {
		tst.Errorf("expected compton_mode=None by default, got %v", s.ComptonMode())
	}
	if err := s.Validate(); err != nil {
		tst.Fatalf("defaults should validate: %v", err)
	}
}

func TestSettings_setComptonModeInverseForcesBackwardAndMethod(tst *testing.T) {
	chk.PrintTitle("Settings_setComptonModeInverseForcesBackwardAndMethod")
	s := NewSettings()
	if err := s.SetComptonMode(compton.ModeInverse); err != nil {
		tst.Fatal(err)
	}
	if s.Mode() != ModeBackward {
		tst.Errorf("expected Inverse to force Backward mode, got %v", s.Mode())
	}
	if s.ComptonMethod() != compton.MethodInverseTransform {
		tst.Errorf("expected Inverse to force InverseTransform method, got %v", s.ComptonMethod())
	}
}

func TestSettings_setModeCoercesComptonMode(tst *testing.T) {
	chk.PrintTitle("Settings_setModeCoercesComptonMode")
	s := NewSettings()
	if err := s.SetComptonMode(compton.ModeDirect); err != nil {
		tst.Fatal(err)
	}
	s.SetMode(ModeBackward)
	if s.ComptonMode() != compton.ModeNone {
		tst.Errorf("expected Backward to coerce Direct to None, got %v", s.ComptonMode())
	}

	if err := s.SetComptonMode(compton.ModeAdjoint); err != nil {
		tst.Fatal(err)
	}
	s.SetMode(ModeForward)
	if s.ComptonMode() != compton.ModeNone {
		tst.Errorf("expected Forward to coerce Adjoint to None, got %v", s.ComptonMode())
	}
}

func TestSettings_setComptonMethodRejectedUnderInverse(tst *testing.T) {
	chk.PrintTitle("Settings_setComptonMethodRejectedUnderInverse")
	s := NewSettings()
	if err := s.SetComptonMode(compton.ModeInverse); err != nil {
		tst.Fatal(err)
	}
	if err := s.SetComptonMethod(compton.MethodRejectionSampling); err == nil {
		tst.Error("expected rejection under compton_mode=Inverse")
	}
}

func TestSettings_setVolumeSourcesTogglesConstraint(tst *testing.T) {
	chk.PrintTitle("Settings_setVolumeSourcesTogglesConstraint")
	s := NewSettings()
	if s.Constraint() != nil {
		tst.Fatal("expected nil constraint by default")
	}
	s.SetVolumeSources(true)
	if s.Constraint() == nil {
		tst.Fatal("expected volume_sources=true to set a non-null constraint")
	}
	chk.Scalar(tst, "constraint", 1e-15, float64(*s.Constraint()), 1.0)
	s.SetVolumeSources(false)
	if s.Constraint() != nil {
		tst.Error("expected volume_sources=false to clear the constraint")
	}
}

func TestSettings_validateCatchesForwardAdjoint(tst *testing.T) {
	chk.PrintTitle("Settings_validateCatchesForwardAdjoint")
	s := NewSettings()
	s.comptonMode = compton.ModeAdjoint // bypass the coercing setter deliberately
	if err := s.Validate(); err == nil {
		tst.Error("expected Validate to reject Forward mode with compton_mode=Adjoint")
	}
}

func TestSettings_validateCatchesForwardConstraintWithoutVolumeSources(tst *testing.T) {
	chk.PrintTitle("Settings_validateCatchesForwardConstraintWithoutVolumeSources")
	s := NewSettings()
	v := numerics.Float(1.0)
	s.SetConstraint(&v)
	if err := s.Validate(); err == nil {
		tst.Error("expected Validate to reject a Forward constraint without volume_sources")
	}
}
