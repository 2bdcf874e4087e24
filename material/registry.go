// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package material specifies the Material Registry contract: an external
// collaborator yielding per-energy interaction coefficients, plus an
// in-memory reference implementation modelled on inp.MatDb.
package material

import (
	"encoding/json"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/kvernet/goupil/numerics"
)

// CrossSection holds the per-energy interaction coefficients a material
// registry yields for a given material and energy: a total macroscopic
// cross-section plus the partials the transport agent needs to choose an
// interaction type.
type CrossSection struct {
	Total      numerics.Float // cm²/g, total attenuation coefficient
	Compton    numerics.Float
	Rayleigh   numerics.Float
	Absorption numerics.Float
}

// Definition is a material's static description.
type Definition struct {
	Name  string `json:"name"`
	Model string `json:"model"` // name of the compton/cross-section model, e.g. "klein-nishina"
	Extra string `json:"extra"`
}

// Registry is the external collaborator contract: given a material index
// and an energy, it returns the macroscopic interaction coefficients.
// Implementations are free to back this with tabulated cross-sections,
// analytic formulas, or a call into a native physics library; the
// transport agent only depends on this interface.
type Registry interface {
	NumMaterials() int
	Material(index int) (Definition, error)
	CrossSectionAt(index int, energy numerics.Float) (CrossSection, error)
	UpdateMaterial(index int, def Definition) error
	Compile() error // lazily prepares internal lookup tables; idempotent
}

// table is one material's tabulated cross-sections, sorted by energy
type table struct {
	def      Definition
	energies []numerics.Float
	xs       []CrossSection
}

// InMemoryRegistry is a reference Registry implementation: a slice of
// materials each carrying a tabulated cross-section curve, with JSON
// round-trip support, the direct analogue of inp.MatDb / inp.ReadMat.
type InMemoryRegistry struct {
	tables   []*table
	compiled bool
}

// NewInMemoryRegistry returns an empty registry
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{}
}

// AddMaterial registers a new material with its tabulated cross-sections
// (must be supplied already sorted by increasing energy) and returns its
// index.
func (o *InMemoryRegistry) AddMaterial(def Definition, energies []numerics.Float, xs []CrossSection) (int, error) {
	if len(energies) == 0 || len(energies) != len(xs) {
		return 0, chk.Err("material: energies and cross-sections must be non-empty and same length")
	}
	for k := 1; k < len(energies); k++ {
		if energies[k] <= energies[k-1] {
			return 0, chk.Err("material: energies must be strictly increasing")
		}
	}
	o.tables = append(o.tables, &table{def: def, energies: append([]numerics.Float{}, energies...), xs: append([]CrossSection{}, xs...)})
	o.compiled = false
	return len(o.tables) - 1, nil
}

// NumMaterials implements Registry
func (o *InMemoryRegistry) NumMaterials() int { return len(o.tables) }

// Material implements Registry
func (o *InMemoryRegistry) Material(index int) (Definition, error) {
	if index < 0 || index >= len(o.tables) {
		return Definition{}, chk.Err("material: index %d out of range [0,%d)", index, len(o.tables))
	}
	return o.tables[index].def, nil
}

// UpdateMaterial implements Registry; preserves the cross-section table,
// only the static description changes.
func (o *InMemoryRegistry) UpdateMaterial(index int, def Definition) error {
	if index < 0 || index >= len(o.tables) {
		return chk.Err("material: index %d out of range [0,%d)", index, len(o.tables))
	}
	o.tables[index].def = def
	return nil
}

// Compile prepares lookup acceleration; calling it twice is a no-op. The
// in-memory reference implementation keeps its tables sorted from
// construction, so compilation only validates them.
func (o *InMemoryRegistry) Compile() error {
	if o.compiled {
		return nil
	}
	for i, t := range o.tables {
		if len(t.energies) == 0 {
			return chk.Err("material: material %d has no cross-section table", i)
		}
	}
	o.compiled = true
	return nil
}

// IsCompiled reports whether Compile has already run successfully.
func (o *InMemoryRegistry) IsCompiled() bool { return o.compiled }

// CrossSectionAt implements Registry by linear interpolation of the
// tabulated curve, clamped at the table's edges.
func (o *InMemoryRegistry) CrossSectionAt(index int, energy numerics.Float) (CrossSection, error) {
	if index < 0 || index >= len(o.tables) {
		return CrossSection{}, chk.Err("material: index %d out of range [0,%d)", index, len(o.tables))
	}
	t := o.tables[index]
	n := len(t.energies)
	if energy <= t.energies[0] {
		return t.xs[0], nil
	}
	if energy >= t.energies[n-1] {
		return t.xs[n-1], nil
	}
	i := sort.Search(n, func(k int) bool { return t.energies[k] >= energy }) - 1
	if i < 0 {
		i = 0
	}
	frac := float64((energy - t.energies[i]) / (t.energies[i+1] - t.energies[i]))
	lerp := func(a, b numerics.Float) numerics.Float {
		return a + numerics.Float(frac)*(b-a)
	}
	lo, hi := t.xs[i], t.xs[i+1]
	return CrossSection{
		Total:      lerp(lo.Total, hi.Total),
		Compton:    lerp(lo.Compton, hi.Compton),
		Rayleigh:   lerp(lo.Rayleigh, hi.Rayleigh),
		Absorption: lerp(lo.Absorption, hi.Absorption),
	}, nil
}

// jsonRow mirrors one tabulated row for JSON persistence
type jsonRow struct {
	Energy     numerics.Float `json:"energy"`
	Total      numerics.Float `json:"total"`
	Compton    numerics.Float `json:"compton"`
	Rayleigh   numerics.Float `json:"rayleigh"`
	Absorption numerics.Float `json:"absorption"`
}

type jsonMaterial struct {
	Definition
	Table []jsonRow `json:"table"`
}

// WriteRegistryJSON serialises the registry the way inp.MatDb is persisted
// as a `.mat` JSON file (inp/mat.go).
func WriteRegistryJSON(reg *InMemoryRegistry) ([]byte, error) {
	out := make([]jsonMaterial, len(reg.tables))
	for i, t := range reg.tables {
		rows := make([]jsonRow, len(t.energies))
		for k := range t.energies {
			rows[k] = jsonRow{t.energies[k], t.xs[k].Total, t.xs[k].Compton, t.xs[k].Rayleigh, t.xs[k].Absorption}
		}
		out[i] = jsonMaterial{Definition: t.def, Table: rows}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadRegistryJSON decodes a registry previously written by
// WriteRegistryJSON, mirroring inp.ReadMat's JSON decode of a `.mat`
// database.
func ReadRegistryJSON(data []byte) (*InMemoryRegistry, error) {
	var in []jsonMaterial
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, chk.Err("material: cannot parse registry JSON: %v", err)
	}
	reg := NewInMemoryRegistry()
	for _, m := range in {
		energies := make([]numerics.Float, len(m.Table))
		xs := make([]CrossSection, len(m.Table))
		for k, r := range m.Table {
			energies[k] = r.Energy
			xs[k] = CrossSection{r.Total, r.Compton, r.Rayleigh, r.Absorption}
		}
		if _, err := reg.AddMaterial(m.Definition, energies, xs); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// LoadRegistryJSONFile reads a registry JSON file from disk using
// gosl/io.ReadFile, the same file-reading idiom as inp.ReadMat.
func LoadRegistryJSONFile(path string) (*InMemoryRegistry, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("material: cannot read %q: %v", path, err)
	}
	return ReadRegistryJSON(b)
}
