// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spline implements the strain-history spline comparator: an
// appendable per-cell strain/stress history, cubic-spline resampling
// to a fixed point count, L2 comparison between two histories, and an
// MPI all-pairs ring-exchange protocol comparing histories across
// every rank.
package spline

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// MaxRecvDoubles bounds the single reusable receive buffer the ring
// exchange uses: payloads beyond this are a programming error, not a
// runtime condition to recover from.
const MaxRecvDoubles = 2000

// nComponents is the number of independent symmetric strain/stress
// components tracked per sample (xx, yy, zz, xy, xz, yz).
const nComponents = 6

// Strain6D is an appendable strain/stress history for one cell. Only
// the most recent stress sample is kept; every appended strain sample
// is retained for splining.
type Strain6D struct {
	CellID string

	strain [nComponents][]float64
	stress [nComponents]float64
}

// NewStrain6D starts an empty history for the named cell.
func NewStrain6D(cellID string) *Strain6D {
	return &Strain6D{CellID: cellID}
}

// Append adds one sample's six strain components and records the six
// stress components as the most recent (overwriting any previous
// one).
func (s *Strain6D) Append(strain, stress [nComponents]float64) {
	for k := 0; k < nComponents; k++ {
		s.strain[k] = append(s.strain[k], strain[k])
	}
	s.stress = stress
}

// NSamples reports how many strain samples have been appended.
func (s *Strain6D) NSamples() int { return len(s.strain[0]) }

// Splinify fits a cubic spline per component over the parametric
// interval [0,1] (nodes t_n = n/(N-1)) and evaluates it at K
// uniformly spaced points u_k = k/(K-1), interleaving the six
// components per sample: [xx_0, yy_0, zz_0, xy_0, xz_0, yz_0, xx_1, ...].
// Requires at least 3 appended samples.
func (s *Strain6D) Splinify(K int) []float64 {
	n := s.NSamples()
	if n < 3 {
		chk.Panic("spline: %s: need >= 3 samples to splinify, have %d", s.CellID, n)
	}
	if K < 2 {
		chk.Panic("spline: %s: K must be >= 2, got %d", s.CellID, K)
	}

	nodes := make([]float64, n)
	for i := 0; i < n; i++ {
		nodes[i] = float64(i) / float64(n-1)
	}

	out := make([]float64, nComponents*K)
	for k := 0; k < nComponents; k++ {
		var pc interp.NotAKnotCubic
		if err := pc.Fit(nodes, s.strain[k]); err != nil {
			chk.Panic("spline: %s: component %d: %v", s.CellID, k, err)
		}
		for u := 0; u < K; u++ {
			t := float64(u) / float64(K-1)
			out[u*nComponents+k] = pc.Predict(t)
		}
	}
	return out
}

// Stress returns the most recently appended stress sample.
func (s *Strain6D) Stress() [nComponents]float64 { return s.stress }

// CompareL2 returns the Euclidean norm of the componentwise
// difference between two splines of equal length. Mismatched lengths
// are a configuration error.
func CompareL2(a, b []float64) float64 {
	if len(a) != len(b) {
		chk.Panic("spline: CompareL2: mismatched lengths %d != %d", len(a), len(b))
	}
	return floats.Distance(a, b, 2)
}
