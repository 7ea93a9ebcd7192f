// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestRotationBetweenIsOrthonormal(tst *testing.T) {
	chk.PrintTitle("RotationBetweenIsOrthonormal")
	cases := []struct{ from, to Vec }{
		{Vec{1, 0, 0}, Vec{0, 1, 0}},
		{Vec{1, 0, 0}, Vec{0, 0, 1}},
		{Vec{1, 2, 3}, Vec{-1, 0, 2}},
		{Vec{1, 0, 0}, Vec{-1, 0, 0}}, // anti-parallel
		{Vec{1, 0, 0}, Vec{1, 0, 0}},  // parallel
	}
	for _, c := range cases {
		r := RotationBetween(c.from, c.to)
		var rrT mat2
		rrT.mulTranspose(r)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want := 0.0
				if i == j {
					want = 1.0
				}
				chk.Scalar(tst, "R Rᵀ == I", 1e-9, rrT.at(i, j), want)
			}
		}
	}
}

func TestRotationBetweenMapsFromToTo(tst *testing.T) {
	chk.PrintTitle("RotationBetweenMapsFromToTo")
	from := Vec{1, 0, 0}
	to := Vec{0, 1, 0}
	r := RotationBetween(from, to)
	mapped := applyRotation(r, from.Normalize())
	toN := to.Normalize()
	for i := 0; i < 3; i++ {
		chk.Scalar(tst, "R*from == to", 1e-9, mapped[i], toN[i])
	}
}

// mat2/applyRotation are small test-local helpers avoiding an extra
// gonum import just to multiply a 3x3 by its own transpose or by a
// vector.
type mat2 [3][3]float64

func (m *mat2) mulTranspose(r interface {
	At(i, j int) float64
}) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += r.At(i, k) * r.At(j, k)
			}
			m[i][j] = sum
		}
	}
}

func (m *mat2) at(i, j int) float64 { return m[i][j] }

func applyRotation(r interface{ At(i, j int) float64 }, v Vec) Vec {
	out := NewVec(3)
	for i := 0; i < 3; i++ {
		var sum float64
		for j := 0; j < 3; j++ {
			sum += r.At(i, j) * v[j]
		}
		out[i] = sum
	}
	return out
}
