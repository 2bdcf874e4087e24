// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command goupil is a minimal batch driver: it reads a JSON job
// description (geometry, registry, settings, input photon states), builds
// an Engine, runs the requested locate/trace/transport operation, and
// writes the result to stdout, mirroring the panic-recovery and coloured
// error reporting of the teacher's root main.go.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/kvernet/goupil"
	"github.com/kvernet/goupil/rng"
	"github.com/kvernet/goupil/transport"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	io.PfWhite("\ngoupil -- Monte Carlo photon transport\n\n")
	io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a job filename. Ex.: job.json")
		return
	}
	fnamepath := flag.Arg(0)

	buf, err := io.ReadFile(fnamepath)
	if err != nil {
		chk.Panic("cannot read job file %q: %v", fnamepath, err)
		return
	}

	var j job
	if err := json.Unmarshal(buf, &j); err != nil {
		chk.Panic("cannot parse job file %q: %v", fnamepath, err)
		return
	}

	result, err := runJob(&j)
	if err != nil {
		chk.Panic("%v", err)
		return
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		chk.Panic("cannot encode result: %v", err)
		return
	}
	io.Pf("%s\n", out)
}

// runJob builds the Engine described by j and executes the single
// requested batch operation.
func runJob(j *job) (interface{}, error) {
	geom, err := j.Geometry.build()
	if err != nil {
		return nil, err
	}
	registry, err := buildRegistry(j.Registry)
	if err != nil {
		return nil, err
	}
	settings, err := j.Settings.build()
	if err != nil {
		return nil, err
	}
	processes, err := buildProcesses(settings)
	if err != nil {
		return nil, err
	}
	seed := j.Seed
	if seed == 0 {
		seed = 1
	}
	stream := rng.NewDefaultStream(seed)

	engine, err := goupil.NewEngine(geom, registry, stream, settings, processes)
	if err != nil {
		return nil, err
	}

	switch j.Operation {
	case "locate":
		return engine.Locate(j.States, nil)
	case "trace":
		return engine.Trace(j.States, j.Lengths, j.Density, nil)
	case "transport":
		states, status, err := engine.Transport(j.States, j.SourceEnergies, nil)
		if err != nil {
			return nil, err
		}
		statusNames := make([]string, len(status))
		for i, s := range status {
			statusNames[i] = s.String()
		}
		return struct {
			States []transport.PhotonState `json:"states"`
			Status []string                `json:"status"`
		}{states, statusNames}, nil
	default:
		return nil, chk.Err("job: unknown operation %q (expected \"locate\", \"trace\" or \"transport\")", j.Operation)
	}
}
