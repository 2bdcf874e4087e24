// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package batch implements the vector batch driver: locate, trace and
// transport run per-photon loops over large arrays of photon states with
// cooperative cancellation, grounded on fem/main.go's Main orchestrator
// (owns domains/solver for the run) and its progress-message idiom.
package batch

import "github.com/kvernet/goupil/goupilerr"

// CancelProbe is a host-supplied callback the driver polls periodically;
// a true result aborts the batch with a Cancelled error. A nil probe
// disables cancellation.
type CancelProbe func() bool

// checkCancel reports whether probe signals cancellation, polled every
// interval completed items. n==0 never polls, so the very first item is
// never rejected before any work is done.
func checkCancel(probe CancelProbe, n, interval int) bool {
	if probe == nil || n == 0 || n%interval != 0 {
		return false
	}
	return probe()
}

// cancelledErr reports a Cancelled error after n items of a batch have
// already been written; those already-written output entries remain.
func cancelledErr(n int) error {
	return goupilerr.Cancelled("batch: cancelled by host after %d items", n)
}
