// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spline

import (
	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

// Comparison is one pairwise L2 comparison between two cell histories,
// carrying enough to identify which two histories and which ranks
// they came from. OtherRank is the rank holding the other history (this
// rank itself for a local pair). OtherCellID is set only for local
// pairs: the exchange does not carry cell IDs, so a history received
// from another rank is identified by OtherRank and OtherStress, and
// OtherStress is set only for such cross-rank pairs. Every unordered
// pair produces exactly one Comparison; Exceeds records whether its
// distance exceeded the caller's threshold, but the value itself is
// always reported.
type Comparison struct {
	LocalCellID string
	OtherCellID string
	OtherRank   int
	OtherStress [nComponents]float64
	L2Distance  float64
	Exceeds     bool
}

// CompareHistoriesWithAllRanks runs an all-pairs ring-exchange
// protocol: for every offset i in [0,N), exchange splined histories
// with the rank at distance i and compare every received payload
// against every local history, plus (at i=0) the local unordered
// pairwise comparisons. K is the number of points each history is
// splined to before comparison. Every unordered pair of histories
// yields exactly one Comparison, regardless of threshold; a cross-rank
// pair is returned only on the higher of its two ranks. Every
// non-blocking send is paired with an explicit Wait via
// mpix.SendWaitFloat64s, so no send is left unacknowledged before its
// buffer is reused.
func CompareHistoriesWithAllRanks(comm *mpix.Communicator, local []*Strain6D, K int, threshold float64) []Comparison {
	n := comm.Size()
	r := comm.Rank()

	localSplines := make([][]float64, len(local))
	for i, h := range local {
		localSplines[i] = h.Splinify(K)
	}

	var comparisons []Comparison

	for i := 0; i < n; i++ {
		t := (r + i) % n
		s := modNeg(r-i, n)

		if i == 0 {
			comparisons = append(comparisons, comparePairwise(local, localSplines, threshold, r)...)
			continue
		}

		comm.SendWaitUint(t, uint32(len(local)))
		for j, h := range local {
			comm.SendWaitUint(t, uint32(len(localSplines[j])))
			comm.SendWaitFloat64s(t, localSplines[j])
			stress := h.Stress()
			comm.SendWaitFloat64s(t, stress[:])
		}

		count := int(comm.RecvUint(s))
		buf := make([]float64, 0, MaxRecvDoubles)
		for j := 0; j < count; j++ {
			length := int(comm.RecvUint(s))
			if length > MaxRecvDoubles {
				panic("spline: received payload exceeds MaxRecvDoubles")
			}
			buf = buf[:length]
			comm.RecvFloat64s(s, buf)
			var stress [nComponents]float64
			comm.RecvFloat64s(s, stress[:])
			if s > r {
				continue // the higher rank of the two records this pair
			}

			for k, h := range local {
				hs := localSplines[k]
				if len(hs) != len(buf) {
					continue
				}
				d := CompareL2(hs, buf)
				comparisons = append(comparisons, Comparison{
					LocalCellID: h.CellID,
					OtherRank:   s,
					OtherStress: stress,
					L2Distance:  d,
					Exceeds:     d > threshold,
				})
			}
		}
	}
	return comparisons
}

func comparePairwise(local []*Strain6D, splined [][]float64, threshold float64, rank int) []Comparison {
	var out []Comparison
	for a := 0; a < len(local); a++ {
		for b := a + 1; b < len(local); b++ {
			d := CompareL2(splined[a], splined[b])
			out = append(out, Comparison{
				LocalCellID: local[a].CellID,
				OtherCellID: local[b].CellID,
				OtherRank:   rank,
				L2Distance:  d,
				Exceeds:     d > threshold,
			})
		}
	}
	return out
}

// modNeg is non-negative modulo: (-1) mod 3 == 2, not -1.
func modNeg(x, n int) int {
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}
