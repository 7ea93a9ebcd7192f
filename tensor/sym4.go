// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import "gonum.org/v1/gonum/mat"

// Sym4 is a symmetric rank-4 tensor (tangent stiffness) of dimension d,
// packed into a SymDense of size d(d+1)/2 (21 independent components
// in 3D), indexed by the packed (i,j)/(k,l) pairs from pairs(d).
// Full four-index access is exposed via At/Set.
type Sym4 struct {
	d  int
	ps [][2]int
	m  *mat.SymDense
}

// NewSym4 returns a zeroed symmetric rank-4 tensor of dimension d.
func NewSym4(d int) *Sym4 {
	ps := pairs(d)
	return &Sym4{d: d, ps: ps, m: mat.NewSymDense(len(ps), nil)}
}

// Dim returns d.
func (t *Sym4) Dim() int { return t.d }

// At returns component (i,j,k,l), honoring the minor symmetries
// (i,j)<->(j,i), (k,l)<->(l,k) and the major symmetry (ij)<->(kl).
func (t *Sym4) At(i, j, k, l int) float64 {
	a := packedIndex(t.d, i, j)
	b := packedIndex(t.d, k, l)
	return t.m.At(a, b)
}

// Set assigns component (i,j,k,l), implicitly setting every index
// permutation the tensor's symmetries identify with it.
func (t *Sym4) Set(i, j, k, l int, v float64) {
	a := packedIndex(t.d, i, j)
	b := packedIndex(t.d, k, l)
	t.m.SetSym(a, b, v)
}

// Clone returns an independent copy.
func (t *Sym4) Clone() *Sym4 {
	out := NewSym4(t.d)
	out.m.CopySym(t.m)
	return out
}

// Add returns t + o.
func (t *Sym4) Add(o *Sym4) *Sym4 {
	checkDim(t.d, o.d)
	out := NewSym4(t.d)
	out.m.AddSym(t.m, o.m)
	return out
}

// Scale returns t scaled by f.
func (t *Sym4) Scale(f float64) *Sym4 {
	out := NewSym4(t.d)
	out.m.ScaleSym(f, t.m)
	return out
}

// full expands the packed representation into a dense d^4 array for
// the brute-force rotation contraction below.
func (t *Sym4) full() [][][][]float64 {
	d := t.d
	out := make([][][][]float64, d)
	for i := range out {
		out[i] = make([][][]float64, d)
		for j := range out[i] {
			out[i][j] = make([][]float64, d)
			for k := range out[i][j] {
				out[i][j][k] = make([]float64, d)
				for l := 0; l < d; l++ {
					out[i][j][k][l] = t.At(i, j, k, l)
				}
			}
		}
	}
	return out
}

// RotateSym4 applies the standard rank-4 similarity transform,
// T'_ijkl = R_im R_jn R_kp R_lq T_mnpq. Because this is
// a direct four-fold contraction with the orthonormal rotation matrix,
// RotateSym4(RotateSym4(T, R), Rᵀ) == T to floating-point tolerance:
// summing R_im R_im' over m collapses to the identity for orthonormal
// R, for every index independently.
func RotateSym4(t *Sym4, r *mat.Dense) *Sym4 {
	d := t.d
	full := t.full()
	out := NewSym4(d)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			for k := 0; k < d; k++ {
				for l := k; l < d; l++ {
					var sum float64
					for m := 0; m < d; m++ {
						for n := 0; n < d; n++ {
							rim := r.At(i, m)
							rjn := r.At(j, n)
							if rim == 0 || rjn == 0 {
								continue
							}
							for p := 0; p < d; p++ {
								rkp := r.At(k, p)
								if rkp == 0 {
									continue
								}
								for q := 0; q < d; q++ {
									sum += rim * rjn * rkp * r.At(l, q) * full[m][n][p][q]
								}
							}
						}
					}
					out.Set(i, j, k, l, sum)
				}
			}
		}
	}
	return out
}
