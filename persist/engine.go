// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package persist serialises an engine's mutable state (RNG state,
// material registry, settings and compiled flag) as an opaque byte
// stream, grounded on fem.Domain's SaveSol/ReadSol and fem/fileio.go's
// GetEncoder/GetDecoder gob-or-json idiom, itself driven by
// inp.Simulation.EncType (inp/sim.go).
package persist

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"io"

	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/material"
	"github.com/kvernet/goupil/rng"
	"github.com/kvernet/goupil/transport"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder for enctype, defaulting to gob for any
// value other than "json" (mirrors inp.Simulation's EncType fixup).
func GetEncoder(w io.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder matching GetEncoder's choice
func GetDecoder(r io.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// normalizeEncType applies inp.Simulation's own EncType fixup: anything
// other than "json" is treated as "gob".
func normalizeEncType(enctype string) string {
	if enctype == "json" {
		return "json"
	}
	return "gob"
}

// wireState is the plain-data projection actually written to the stream.
// Only rng.DefaultStream and material.InMemoryRegistry are supported as
// the persisted RNG/registry implementations; the generic rng.Stream and
// material.Registry interfaces may be backed by a native library call with
// no serialisable state of its own.
type wireState struct {
	Seed         int64
	Drawn        int64
	Settings     transport.Snapshot
	Compiled     bool
	RegistryJSON []byte
}

// EngineState is the serialisable subset of a running engine: RNG
// position, registry contents, settings and compiled flag. It does not
// include geometry, which is treated as an external backend, reattached
// by the caller after Load.
type EngineState struct {
	Stream   *rng.DefaultStream
	Registry *material.InMemoryRegistry
	Settings *transport.Settings
}

// Save serialises o as an opaque byte stream in the given encoding
// ("gob" or "json"; anything else is treated as "gob", matching
// inp.Simulation.EncType's own fixup).
func (o *EngineState) Save(enctype string) ([]byte, error) {
	if o.Stream == nil || o.Registry == nil || o.Settings == nil {
		return nil, goupilerr.InvalidArgument("persist: cannot save an engine state with a nil stream, registry or settings")
	}
	regJSON, err := material.WriteRegistryJSON(o.Registry)
	if err != nil {
		return nil, err
	}
	w := wireState{
		Seed:         o.Stream.Seed(),
		Drawn:        o.Stream.Drawn(),
		Settings:     o.Settings.Snapshot(),
		Compiled:     o.Registry.IsCompiled(),
		RegistryJSON: regJSON,
	}
	var buf bytes.Buffer
	enc := GetEncoder(&buf, normalizeEncType(enctype))
	if err := enc.Encode(w); err != nil {
		return nil, goupilerr.Io("persist: cannot encode engine state: %v", err)
	}
	return buf.Bytes(), nil
}

// Load reconstructs a functionally equivalent EngineState from a byte
// stream previously produced by Save. The RNG stream is replayed from its
// seed to its persisted draw count, so the returned stream's next
// Uniform() call yields exactly the value the original would have.
func Load(data []byte, enctype string) (*EngineState, error) {
	dec := GetDecoder(bytes.NewReader(data), normalizeEncType(enctype))
	var w wireState
	if err := dec.Decode(&w); err != nil {
		return nil, goupilerr.Io("persist: cannot decode engine state: %v", err)
	}
	reg, err := material.ReadRegistryJSON(w.RegistryJSON)
	if err != nil {
		return nil, err
	}
	if w.Compiled {
		if err := reg.Compile(); err != nil {
			return nil, err
		}
	}
	return &EngineState{
		Stream:   rng.NewDefaultStreamAt(w.Seed, w.Drawn),
		Registry: reg,
		Settings: transport.SettingsFromSnapshot(w.Settings),
	}, nil
}
