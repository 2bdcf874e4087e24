// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geometry

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/kvernet/goupil/density"
)

// fakeBackend is a minimal ExternalBackend for testing delegation; it
// simply wraps a Simple geometry.
type fakeBackend struct {
	inner *Simple
}

func (o *fakeBackend) NumSectors() int                   { return o.inner.NumSectors() }
func (o *fakeBackend) Sector(i int) (Sector, error)       { return o.inner.Sector(i) }
func (o *fakeBackend) NewTracer() Tracer                  { return o.inner.NewTracer() }
func (o *fakeBackend) UpdateSector(i int, m int, d density.Model) error {
	return o.inner.UpdateSector(i, m, d)
}

func TestExternal_delegatesToBackend(tst *testing.T) {
	chk.PrintTitle("External_delegatesToBackend")
	backend := &fakeBackend{inner: NewSimple(0, newUniform(tst, 1.0), "")}
	g, err := NewExternalGeometry(backend)
	if err != nil {
		tst.Fatal(err)
	}
	if g.NumSectors() != 1 {
		tst.Fatal("expected one delegated sector")
	}
	if err := g.UpdateSector(0, 3, nil); err != nil {
		tst.Fatal(err)
	}
	s, err := g.Sector(0)
	if err != nil {
		tst.Fatal(err)
	}
	if s.MaterialIndex != 3 {
		tst.Errorf("expected material index 3, got %d", s.MaterialIndex)
	}
}

func TestExternal_nilBackendRejected(tst *testing.T) {
	chk.PrintTitle("External_nilBackendRejected")
	if _, err := NewExternalGeometry(nil); err == nil {
		tst.Error("expected an error for a nil backend")
	}
}
