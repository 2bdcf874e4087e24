// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"math"

	"github.com/kvernet/goupil/goupilerr"
	"github.com/kvernet/goupil/numerics"
	"github.com/kvernet/goupil/transport"
)

// traceCancelInterval is the number of inner steps between cancellation
// polls; the counter spans every step across every input state, not just
// the outer per-photon loop.
const traceCancelInterval = 1000

// maxTraceStepsPerPhoton backstops an unbounded geometry traced with no
// length budget (e.g. a Simple geometry, which has no outside region) so
// a misconfigured call fails fast instead of looping forever.
const maxTraceStepsPerPhoton = 1 << 20

// Trace reports, for each input state, the column depth (or raw path
// length, if density is false) accumulated in every sector crossed along
// the straight-line trajectory from entry to exit or to the optional
// per-photon length budget. lengths may be nil to trace to geometric
// exhaustion.
func (o *Driver) Trace(states []transport.PhotonState, lengths []numerics.Float, density bool, probe CancelProbe) ([][]numerics.Float, error) {
	if lengths != nil && len(lengths) != len(states) {
		return nil, goupilerr.InvalidArgument("batch: trace: lengths has %d entries for %d states", len(lengths), len(states))
	}

	o.geom.BeginBatch()
	defer o.geom.EndBatch()

	out := make([][]numerics.Float, 0, len(states))
	tracer := o.geom.NewTracer()
	numSectors := o.geom.NumSectors()
	ticks := 0

	for i, s := range states {
		if err := tracer.Reset(s.Position, s.Direction); err != nil {
			return out, err
		}
		row := make([]numerics.Float, numSectors)

		remaining := numerics.Float(math.Inf(1))
		hasLength := lengths != nil
		if hasLength {
			remaining = lengths[i]
		}

		for iter := 0; ; iter++ {
			if iter >= maxTraceStepsPerPhoton {
				return out, goupilerr.NumericalInstability("batch: trace: photon %d did not exhaust its geometry within %d steps", i, maxTraceStepsPerPhoton)
			}
			if checkCancel(probe, ticks, traceCancelInterval) {
				return out, cancelledErr(len(out))
			}
			ticks++

			sector, ok := tracer.Sector()
			if !ok {
				break
			}
			step, err := tracer.Trace(remaining)
			if err != nil {
				return out, err
			}
			if density {
				sec, err := o.geom.Sector(sector)
				if err != nil {
					return out, err
				}
				if sec.Density == nil {
					return out, goupilerr.Missing("batch: trace: sector %d has no density model", sector)
				}
				row[sector] += sec.Density.ColumnDepth(tracer.Position(), s.Direction, step)
			} else {
				row[sector] += step
			}
			if err := tracer.Update(step, s.Direction); err != nil {
				return out, err
			}
			if hasLength {
				remaining -= step
				if remaining <= 0 {
					break
				}
			}
		}
		out = append(out, row)
	}
	return out, nil
}
