// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import "gonum.org/v1/gonum/mat"

// Sym2 is a symmetric rank-2 tensor (stress, strain) of dimension d,
// stored packed (6 independent components in 3D) via gonum's SymDense.
type Sym2 struct {
	d int
	m *mat.SymDense
}

// NewSym2 returns a zeroed symmetric rank-2 tensor of dimension d.
func NewSym2(d int) *Sym2 {
	return &Sym2{d: d, m: mat.NewSymDense(d, nil)}
}

// Dim returns d.
func (s *Sym2) Dim() int { return s.d }

// At returns component (i,j); At(i,j) == At(j,i) by construction.
func (s *Sym2) At(i, j int) float64 { return s.m.At(i, j) }

// Set assigns component (i,j) (and, implicitly, (j,i)).
func (s *Sym2) Set(i, j int, v float64) { s.m.SetSym(i, j, v) }

// Clone returns an independent copy.
func (s *Sym2) Clone() *Sym2 {
	out := NewSym2(s.d)
	out.m.CopySym(s.m)
	return out
}

// Add returns s + o.
func (s *Sym2) Add(o *Sym2) *Sym2 {
	checkDim(s.d, o.d)
	out := NewSym2(s.d)
	out.m.AddSym(s.m, o.m)
	return out
}

// Sub returns s - o.
func (s *Sym2) Sub(o *Sym2) *Sym2 {
	checkDim(s.d, o.d)
	neg := o.Scale(-1)
	return s.Add(neg)
}

// Scale returns s scaled by f.
func (s *Sym2) Scale(f float64) *Sym2 {
	out := NewSym2(s.d)
	out.m.ScaleSym(f, s.m)
	return out
}

// Transpose returns a copy of s: a symmetric tensor equals its transpose.
func (s *Sym2) Transpose() *Sym2 { return s.Clone() }

// Symmetrize projects a general dense rank-2 tensor onto its symmetric
// part, 1/2 (T + T^T).
func Symmetrize(t *mat.Dense) *Sym2 {
	r, c := t.Dims()
	checkDim(r, c)
	out := NewSym2(r)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			out.Set(i, j, 0.5*(t.At(i, j)+t.At(j, i)))
		}
	}
	return out
}

// Dense returns the full d x d dense representation.
func (s *Sym2) Dense() *mat.Dense {
	m := mat.NewDense(s.d, s.d, nil)
	m.CopySym(s.m)
	return m
}

// RotateSym2 applies the similarity transform R T Rᵀ.
// rotate(rotate(T, R), Rᵀ) == T to floating-point tolerance because
// matrix multiplication by R then Rᵀ exactly undoes an orthonormal R.
func RotateSym2(t *Sym2, r *mat.Dense) *Sym2 {
	var tmp, rotated mat.Dense
	tmp.Mul(r, t.Dense())
	rotated.Mul(&tmp, r.T())
	return Symmetrize(&rotated)
}
