// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
	"github.com/kvernet/goupil/numerics"
)

// PlotSurfaces emits a matplotlib script tracing a cross-section of a set
// of interfaces along the line y=y0, x in [xmin,xmax], following the same
// plt.Plot/plt.Gll idiom as mdl/retention/plot.go's Plot/PlotEnd.
func PlotSurfaces(surfaces []*Surface, labels []string, y0, xmin, xmax numerics.Float, npts int, args []string) {
	X := utl.LinSpace(float64(xmin), float64(xmax), npts)
	for k, s := range surfaces {
		Z := make([]float64, npts)
		for i, x := range X {
			z, ok := s.Z(numerics.Float(x), y0)
			if ok {
				Z[i] = float64(z)
			} else {
				Z[i] = math.NaN() // gap in the plotted trace
			}
		}
		label := io.Sf("surface_%d", k)
		if k < len(labels) {
			label = labels[k]
		}
		style := "'k-'"
		if k < len(args) {
			style = args[k]
		}
		plt.Plot(X, Z, io.Sf("%s, label='%s', clip_on=0", style, label))
	}
}

// PlotEnd finalises and optionally shows a topography cross-section plot
func PlotEnd(show bool) {
	plt.Gll("$x$", "$z$", "")
	if show {
		plt.Show()
	}
}
