// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationBetween returns the orthonormal rotation tensor mapping the
// (normalized) vector `from` onto the (normalized) vector `to`, via
// Rodrigues' rotation formula. replica.LoadGeneration calls it with
// the replica's normal vector and the configured common-ground
// direction.
func RotationBetween(from, to Vec) *mat.Dense {
	checkDim(len(from), len(to))
	d := len(from)
	a := from.Normalize()
	b := to.Normalize()

	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	dot = clamp(dot, -1, 1)

	if d != 3 {
		// General-dimension fallback: identity unless the vectors are
		// already anti/parallel, since Rodrigues' formula is a 3D
		// construction. The replica orientation pipeline only ever runs
		// with d==3.
		if dot > 1-1e-12 {
			return Identity(d)
		}
	}

	if dot > 1-1e-12 {
		return Identity(3)
	}
	if dot < -1+1e-12 {
		// 180 degree rotation: pick any axis orthogonal to a.
		axis := anyOrthogonal(a)
		return axisAngle(axis, math.Pi)
	}

	// cross product axis, sin(theta) = |axis|, cos(theta) = dot
	axis := Vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
	sinT := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	cosT := dot

	// Rodrigues' formula: R = I + sinT*K + (1-cosT)*K^2, with K the
	// cross-product (skew-symmetric) matrix of the *unit* axis.
	u := axis.Scale(1 / sinT)
	K := mat.NewDense(3, 3, []float64{
		0, -u[2], u[1],
		u[2], 0, -u[0],
		-u[1], u[0], 0,
	})
	var K2 mat.Dense
	K2.Mul(K, K)

	r := Identity(3)
	var term mat.Dense
	term.Scale(sinT, K)
	r.Add(r, &term)
	term.Scale(1-cosT, &K2)
	r.Add(r, &term)
	return r
}

func anyOrthogonal(v Vec) Vec {
	// pick the coordinate axis least aligned with v, then orthogonalize
	idx := 0
	min := math.Abs(v[0])
	for i := 1; i < len(v); i++ {
		if math.Abs(v[i]) < min {
			min = math.Abs(v[i])
			idx = i
		}
	}
	e := NewVec(len(v))
	e[idx] = 1
	dot := 0.0
	for i := range v {
		dot += v[i] * e[i]
	}
	out := e.Add(v.Scale(-dot))
	return out.Normalize()
}

func axisAngle(u Vec, theta float64) *mat.Dense {
	s, c := math.Sin(theta), math.Cos(theta)
	K := mat.NewDense(3, 3, []float64{
		0, -u[2], u[1],
		u[2], 0, -u[0],
		-u[1], u[0], 0,
	})
	var K2 mat.Dense
	K2.Mul(K, K)
	r := Identity(3)
	var term mat.Dense
	term.Scale(s, K)
	r.Add(r, &term)
	term.Scale(1-c, &K2)
	r.Add(r, &term)
	return r
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
