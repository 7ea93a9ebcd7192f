// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spline

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

// TestCompareHistoriesSingleRankIsLocalPairwise exercises the i=0
// self pass only (t==s, the only reachable branch on a single-process
// communicator): every unordered local pair is compared, and exactly
// one Comparison is returned per pair regardless of threshold.
func TestCompareHistoriesSingleRankIsLocalPairwise(tst *testing.T) {
	chk.PrintTitle("CompareHistoriesSingleRankIsLocalPairwise")

	mk := func(id string, scale float64) *Strain6D {
		h := NewStrain6D(id)
		for i := 0; i < 4; i++ {
			v := float64(i) * scale
			h.Append([6]float64{v, 0, 0, 0, 0, 0}, [6]float64{})
		}
		return h
	}

	closeHist := mk("cellA", 1.0)
	near := mk("cellB", 1.0000001)
	far := mk("cellC", 100.0)

	comm := mpix.FakeWorld(1, 0)
	comparisons := CompareHistoriesWithAllRanks(comm, []*Strain6D{closeHist, near, far}, 8, 1e-3)

	const wantPairs = 3 // C(3,2)
	if len(comparisons) != wantPairs {
		tst.Fatalf("expected %d pairwise comparisons, got %d: %+v", wantPairs, len(comparisons), comparisons)
	}

	foundFarExceeds := false
	for _, c := range comparisons {
		isFarPair := c.OtherCellID == "cellC" || c.LocalCellID == "cellC"
		isNearPair := (c.LocalCellID == "cellA" && c.OtherCellID == "cellB") ||
			(c.LocalCellID == "cellB" && c.OtherCellID == "cellA")
		if isFarPair && c.Exceeds {
			foundFarExceeds = true
		}
		if isNearPair && c.Exceeds {
			tst.Errorf("expected cellA/cellB to be near-identical, got exceeding comparison %+v", c)
		}
	}
	if !foundFarExceeds {
		tst.Errorf("expected cellC's comparisons to exceed the threshold")
	}
}
