// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tensor implements the rank-1/2/4 tensors over a small fixed
// dimension d (typically 3) used throughout the HMM dispatch core:
// Vec (rank-1), Sym2 (symmetric rank-2), Sym4 (symmetric rank-4,
// packed). Storage is backed by gonum.org/v1/gonum/mat, following
// msolid's own convention of representing stiffness as a dense
// D [][]float64 matrix (here Sym4's packed 21-in-3D form).
package tensor

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Vec is a rank-1 tensor (per-axis reference length, normal vectors,
// common-ground direction).
type Vec []float64

// NewVec returns a zeroed rank-1 tensor of dimension d.
func NewVec(d int) Vec { return make(Vec, d) }

// Add returns the element-wise sum.
func (v Vec) Add(w Vec) Vec {
	checkDim(len(v), len(w))
	out := NewVec(len(v))
	for i := range v {
		out[i] = v[i] + w[i]
	}
	return out
}

// Scale returns v scaled by f.
func (v Vec) Scale(f float64) Vec {
	out := NewVec(len(v))
	for i := range v {
		out[i] = v[i] * f
	}
	return out
}

// Normalize returns v/‖v‖.
func (v Vec) Normalize() Vec {
	var n float64
	for _, x := range v {
		n += x * x
	}
	n = math.Sqrt(n)
	if n == 0 {
		chk.Panic("tensor: cannot normalize the zero vector")
	}
	return v.Scale(1 / n)
}

func checkDim(a, b int) {
	if a != b {
		chk.Panic("tensor: dimension mismatch (%d != %d)", a, b)
	}
}

// pairs enumerates the d(d+1)/2 independent (i,j), i<=j index pairs of
// a symmetric rank-2 tensor of dimension d, in row-major order. This is
// the packing used by Sym4's Voigt-like packed storage (Sym2 is stored
// as a full d x d SymDense).
func pairs(d int) [][2]int {
	var ps [][2]int
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			ps = append(ps, [2]int{i, j})
		}
	}
	return ps
}

func packedIndex(d, i, j int) int {
	if i > j {
		i, j = j, i
	}
	for idx, p := range pairs(d) {
		if p[0] == i && p[1] == j {
			return idx
		}
	}
	chk.Panic("tensor: invalid index pair (%d,%d) for dimension %d", i, j, d)
	return -1
}

// Identity returns the d x d identity matrix as a *mat.Dense, the
// default rotation for replicas whose flake count is not exactly 1.
func Identity(d int) *mat.Dense {
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}
	return m
}
