// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package density

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/kvernet/goupil/numerics"
)

// CheckColumnDepthDerivative verifies that ColumnDepth's derivative with
// respect to step matches Rho(pos) at step=0, by central finite
// differences, the same chk.DerivScaSca idiom as
// mdl/retention/testing.go's checkDerivs.
func CheckColumnDepthDerivative(tst *testing.T, mdl Model, pos, dir numerics.Vec3, tol float64, verbose bool) {
	ana := float64(mdl.Rho(pos))
	chk.DerivScaSca(tst, "dColumnDepth/dstep @ 0", tol, ana, 0, 1e-3, verbose, func(step float64) (float64, error) {
		return float64(mdl.ColumnDepth(pos, dir, numerics.Float(step))), nil
	})
}
