// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"github.com/kvernet/goupil/transport"
)

// locateCancelInterval is the number of photons processed between
// cancellation polls.
const locateCancelInterval = 1000

// Locate resets the tracer at each input state and reports its sector
// index, or the sentinel NumSectors() for outside. Photons are processed
// in increasing index order.
func (o *Driver) Locate(states []transport.PhotonState, probe CancelProbe) ([]int, error) {
	o.geom.BeginBatch()
	defer o.geom.EndBatch()

	out := make([]int, 0, len(states))
	tracer := o.geom.NewTracer()
	outside := o.geom.NumSectors()

	for i, s := range states {
		if checkCancel(probe, i, locateCancelInterval) {
			return out, cancelledErr(i)
		}
		if err := tracer.Reset(s.Position, s.Direction); err != nil {
			return out, err
		}
		idx, ok := tracer.Sector()
		if !ok {
			out = append(out, outside)
			continue
		}
		out = append(out, idx)
	}
	return out, nil
}
