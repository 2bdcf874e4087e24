// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package topo implements topography maps and surfaces: bilinear-
// interpolated height fields and their layered composition.
package topo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/kvernet/goupil/numerics"
)

// Map is a rectangular height field, dense grid or degenerate constant.
// Immutable after construction: safe to share by reference across any
// number of Surfaces.
type Map struct {
	xmin, xmax numerics.Float
	ymin, ymax numerics.Float
	nx, ny     int        // grid shape; ny==0 means a degenerate constant map
	z          [][]Float64 // z[i][j], i in [0,ny), j in [0,nx)
	constant   numerics.Float
	zmin, zmax numerics.Float
}

// Float64 is the grid's storage type: grids are always stored and
// interpolated in float64 and cast on read.
type Float64 = float64

// NewConstantMap returns a degenerate map returning the same height
// everywhere within [xmin,xmax]×[ymin,ymax].
func NewConstantMap(xmin, xmax, ymin, ymax numerics.Float, height numerics.Float) (*Map, error) {
	if xmax <= xmin || ymax <= ymin {
		return nil, chk.Err("topo: degenerate domain [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
	}
	return &Map{
		xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax,
		constant: height, zmin: height, zmax: height,
	}, nil
}

// NewGridMap returns a dense map over [xmin,xmax]×[ymin,ymax] with a
// (ny,nx) grid of heights, z[i][j] at row i (y-direction), column j
// (x-direction).
func NewGridMap(xmin, xmax, ymin, ymax numerics.Float, z [][]float64) (*Map, error) {
	if xmax <= xmin || ymax <= ymin {
		return nil, chk.Err("topo: degenerate domain [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
	}
	ny := len(z)
	if ny < 2 {
		return nil, chk.Err("topo: grid map needs at least 2 rows, got %d", ny)
	}
	nx := len(z[0])
	if nx < 2 {
		return nil, chk.Err("topo: grid map needs at least 2 columns, got %d", nx)
	}
	grid := la.MatAlloc(ny, nx)
	zmin, zmax := z[0][0], z[0][0]
	for i := 0; i < ny; i++ {
		if len(z[i]) != nx {
			return nil, chk.Err("topo: ragged grid at row %d", i)
		}
		la.VecCopy(grid[i], 1, z[i])
		for j := 0; j < nx; j++ {
			if z[i][j] < zmin {
				zmin = z[i][j]
			}
			if z[i][j] > zmax {
				zmax = z[i][j]
			}
		}
	}
	return &Map{
		xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax,
		nx: nx, ny: ny, z: grid,
		zmin: numerics.Float(zmin), zmax: numerics.Float(zmax),
	}, nil
}

// IsDegenerate reports whether this is a constant map
func (o *Map) IsDegenerate() bool { return o.ny == 0 }

// Bounds returns the map's rectangular domain
func (o *Map) Bounds() (xmin, xmax, ymin, ymax numerics.Float) {
	return o.xmin, o.xmax, o.ymin, o.ymax
}

// ZRange returns the cached [zmin,zmax] of the map
func (o *Map) ZRange() (zmin, zmax numerics.Float) {
	return o.zmin, o.zmax
}

// Contains reports whether (x,y) lies within the map's rectangular domain
func (o *Map) Contains(x, y numerics.Float) bool {
	return x >= o.xmin && x <= o.xmax && y >= o.ymin && y <= o.ymax
}

// Z evaluates z(x,y); ok is false if (x,y) is outside the domain.
func (o *Map) Z(x, y numerics.Float) (z numerics.Float, ok bool) {
	if !o.Contains(x, y) {
		return 0, false
	}
	if o.IsDegenerate() {
		return o.constant, true
	}

	// normalised coordinates in [0, nx-1] x [0, ny-1]
	u := float64(x-o.xmin) / float64(o.xmax-o.xmin) * float64(o.nx-1)
	v := float64(y-o.ymin) / float64(o.ymax-o.ymin) * float64(o.ny-1)

	j := int(u)
	i := int(v)
	if j >= o.nx-1 {
		j = o.nx - 2
	}
	if i >= o.ny-1 {
		i = o.ny - 2
	}
	du := u - float64(j)
	dv := v - float64(i)

	z00 := o.z[i][j]
	z10 := o.z[i][j+1]
	z01 := o.z[i+1][j]
	z11 := o.z[i+1][j+1]

	top := z00*(1-du) + z10*du
	bot := z01*(1-du) + z11*du
	return numerics.Float(top*(1-dv) + bot*dv), true
}

// cell locates the (i,j) cell and the local (u,v) in [0,1]² containing
// (x,y), used by the stratified tracer's DDA to find the patch it is
// currently traversing. ok is false outside the domain or for a
// degenerate map (no cells to walk).
func (o *Map) cell(x, y numerics.Float) (i, j int, u, v float64, ok bool) {
	if o.IsDegenerate() || !o.Contains(x, y) {
		return 0, 0, 0, 0, false
	}
	fu := float64(x-o.xmin) / float64(o.xmax-o.xmin) * float64(o.nx-1)
	fv := float64(y-o.ymin) / float64(o.ymax-o.ymin) * float64(o.ny-1)
	j = int(fu)
	i = int(fv)
	if j >= o.nx-1 {
		j = o.nx - 2
	}
	if i >= o.ny-1 {
		i = o.ny - 2
	}
	return i, j, fu - float64(j), fv - float64(i), true
}

// corners returns the four grid-corner heights of cell (i,j)
func (o *Map) corners(i, j int) (z00, z10, z01, z11 float64) {
	return o.z[i][j], o.z[i][j+1], o.z[i+1][j], o.z[i+1][j+1]
}

// cellBounds returns the (x,y) bounds of cell (i,j)
func (o *Map) cellBounds(i, j int) (x0, x1, y0, y1 numerics.Float) {
	dx := (o.xmax - o.xmin) / numerics.Float(o.nx-1)
	dy := (o.ymax - o.ymin) / numerics.Float(o.ny-1)
	x0 = o.xmin + numerics.Float(j)*dx
	x1 = x0 + dx
	y0 = o.ymin + numerics.Float(i)*dy
	y1 = y0 + dy
	return
}

// intersectCell solves, within cell (i,j) and for t restricted to
// [tEnter,tExit], the analytic quadratic obtained by substituting the ray
// pos+t·dir into the cell's bilinear patch H(a,b) (a,b the cell-local
// normalised coordinates, themselves linear in t). Returns the smallest
// valid root, if any.
func (o *Map) intersectCell(pos, dir numerics.Vec3, i, j int, tEnter, tExit numerics.Float) (numerics.Float, bool) {
	x0, x1, y0, y1 := o.cellBounds(i, j)
	z00, z10, z01, z11 := o.corners(i, j)

	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	a0 := float64(pos.X()-x0) / dx
	b0 := float64(pos.Y()-y0) / dy
	aSlope := float64(dir.X()) / dx
	bSlope := float64(dir.Y()) / dy

	A1 := z10 - z00
	A2 := z01 - z00
	k := z00 - z10 - z01 + z11

	h0 := z00 + A1*a0 + A2*b0 + k*a0*b0
	h1 := A1*aSlope + A2*bSlope + k*(a0*bSlope+b0*aSlope)
	h2 := k * aSlope * bSlope

	pz := float64(pos.Z())
	dz := float64(dir.Z())

	// f(t) = -h2*t^2 + (dz-h1)*t + (pz-h0) = 0
	Aq := -h2
	Bq := dz - h1
	Cq := pz - h0

	const eps = 1e-12
	roots := make([]float64, 0, 2)
	if math.Abs(Aq) < eps {
		if math.Abs(Bq) < eps {
			return 0, false
		}
		roots = append(roots, -Cq/Bq)
	} else {
		disc := Bq*Bq - 4*Aq*Cq
		if disc < 0 {
			return 0, false
		}
		sq := math.Sqrt(disc)
		roots = append(roots, (-Bq+sq)/(2*Aq), (-Bq-sq)/(2*Aq))
	}

	lo := float64(tEnter) + eps
	hi := float64(tExit)
	best := 0.0
	found := false
	for _, t := range roots {
		if t < lo || t > hi {
			continue
		}
		if !found || t < best {
			best, found = t, true
		}
	}
	if !found {
		return 0, false
	}
	return numerics.Float(best), true
}

// FirstCrossing finds the smallest t in [0,tMax] at which the ray
// pos+t·dir crosses this map's height field, by walking the grid
// cell-by-cell along the ray's (x,y) projection (a 2D DDA) and, within
// each visited cell, solving the cell's analytic bilinear-patch
// intersection. Returns ok=false if the ray leaves the map's domain, or
// exhausts tMax, without crossing.
func (o *Map) FirstCrossing(pos, dir numerics.Vec3, tMax numerics.Float) (numerics.Float, bool) {
	if o.IsDegenerate() {
		if dir.Z() == 0 {
			return 0, false
		}
		t := (o.constant - pos.Z()) / dir.Z()
		if t < 0 || t > tMax {
			return 0, false
		}
		x := pos.X() + t*dir.X()
		y := pos.Y() + t*dir.Y()
		if !o.Contains(x, y) {
			return 0, false
		}
		return t, true
	}

	i, j, _, _, ok := o.cell(pos.X(), pos.Y())
	if !ok {
		return 0, false
	}

	tEnter := numerics.Float(0)
	for tEnter < tMax {
		x0, x1, y0, y1 := o.cellBounds(i, j)

		tExit := tMax
		nextI, nextJ := i, j
		if dir.X() > 0 {
			if tx := (x1 - pos.X()) / dir.X(); tx < tExit {
				tExit, nextI, nextJ = tx, i, j+1
			}
		} else if dir.X() < 0 {
			if tx := (x0 - pos.X()) / dir.X(); tx < tExit {
				tExit, nextI, nextJ = tx, i, j-1
			}
		}
		if dir.Y() > 0 {
			if ty := (y1 - pos.Y()) / dir.Y(); ty < tExit {
				tExit, nextI, nextJ = ty, i+1, j
			}
		} else if dir.Y() < 0 {
			if ty := (y0 - pos.Y()) / dir.Y(); ty < tExit {
				tExit, nextI, nextJ = ty, i-1, j
			}
		}

		if t, ok := o.intersectCell(pos, dir, i, j, tEnter, tExit); ok {
			return t, true
		}
		if tExit >= tMax {
			return 0, false
		}
		if nextI < 0 || nextI > o.ny-2 || nextJ < 0 || nextJ > o.nx-2 {
			return 0, false
		}
		i, j, tEnter = nextI, nextJ, tExit
	}
	return 0, false
}
