// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package density implements mass-density models attached to geometry
// sectors: a function from position (and path element) to column-depth
// contribution. Structured, like the teacher's mdl/retention, as an open
// factory of named models.
package density

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/kvernet/goupil/numerics"
)

// Model implements a mass-density field.
type Model interface {
	Init(prms dbf.Params) error     // initialises the model from named parameters
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	Rho(pos numerics.Vec3) numerics.Float // instantaneous density at pos
	ColumnDepth(pos, dir numerics.Vec3, step numerics.Float) numerics.Float // ∫ρ ds along [pos, pos+step·dir]
}

// New returns a new density model by name
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'density' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models, filled by each model's init()
var allocators = map[string]func() Model{}
