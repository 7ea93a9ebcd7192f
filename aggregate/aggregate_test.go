// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggregate

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/yunkb/DeaLAMMPS/dispatch"
	"github.com/yunkb/DeaLAMMPS/replica"
	"github.com/yunkb/DeaLAMMPS/store"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

// TestStoreSingleReplicaNoBias covers a single material, single
// replica, single cell, zero init_stress, identity rotam: the
// aggregated stress must equal the raw MD-reported stress.
func TestStoreSingleReplicaNoBias(tst *testing.T) {
	chk.PrintTitle("StoreSingleReplicaNoBias")
	dim := 3
	macroOut := tst.TempDir()
	nanoTmp := tst.TempDir()

	cat := &replica.Catalog{Dim: dim, Materials: []string{"clay"}, NRepl: 1, Records: []*replica.Data{
		{Mat: "clay", Repl: 1, Rotam: tensor.Identity(dim), InitStress: tensor.NewSym2(dim)},
	}}
	pu := &dispatch.PendingUpdate{CellID: []string{"cellA"}, CellMat: []string{"clay"}}

	_, stressFile, _ := dispatch.JobPaths(macroOut, nanoTmp, "1", "cellA", "clay", 1)
	raw := tensor.NewSym2(dim)
	raw.Set(0, 0, 1.0)
	if err := store.WriteSym2(stressFile, raw); err != nil {
		tst.Fatal(err)
	}

	if err := Store(pu, cat, "1", macroOut, nanoTmp, 0, 1); err != nil {
		tst.Fatal(err)
	}

	out, err := store.ReadSym2(filepath.Join(macroOut, "last.cellA.stress"), dim)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "stress[0][0]", 1e-12, out.At(0, 0), 1.0)
	chk.Scalar(tst, "stress[1][1]", 1e-12, out.At(1, 1), 0.0)
}

// TestStoreBiasRemoval checks that init_stress is subtracted before
// averaging.
func TestStoreBiasRemoval(tst *testing.T) {
	chk.PrintTitle("StoreBiasRemoval")
	dim := 3
	macroOut := tst.TempDir()
	nanoTmp := tst.TempDir()

	bias := tensor.NewSym2(dim)
	bias.Set(0, 0, 0.5)
	cat := &replica.Catalog{Dim: dim, Materials: []string{"clay"}, NRepl: 1, Records: []*replica.Data{
		{Mat: "clay", Repl: 1, Rotam: tensor.Identity(dim), InitStress: bias},
	}}
	pu := &dispatch.PendingUpdate{CellID: []string{"cellA"}, CellMat: []string{"clay"}}

	_, stressFile, _ := dispatch.JobPaths(macroOut, nanoTmp, "1", "cellA", "clay", 1)
	raw := tensor.NewSym2(dim)
	raw.Set(0, 0, 1.5)
	if err := store.WriteSym2(stressFile, raw); err != nil {
		tst.Fatal(err)
	}

	if err := Store(pu, cat, "1", macroOut, nanoTmp, 0, 1); err != nil {
		tst.Fatal(err)
	}

	out, err := store.ReadSym2(filepath.Join(macroOut, "last.cellA.stress"), dim)
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "debiased stress", 1e-12, out.At(0, 0), 1.0)
}

// TestStoreOwnershipByModulo checks the `c mod |P|` ownership rule:
// with two processes and two cells, each process stores exactly one.
func TestStoreOwnershipByModulo(tst *testing.T) {
	chk.PrintTitle("StoreOwnershipByModulo")
	dim := 3
	macroOut := tst.TempDir()
	nanoTmp := tst.TempDir()

	cat := &replica.Catalog{Dim: dim, Materials: []string{"clay"}, NRepl: 1, Records: []*replica.Data{
		{Mat: "clay", Repl: 1, Rotam: tensor.Identity(dim), InitStress: tensor.NewSym2(dim)},
	}}
	pu := &dispatch.PendingUpdate{CellID: []string{"cellA", "cellB"}, CellMat: []string{"clay", "clay"}}

	for _, cell := range []string{"cellA", "cellB"} {
		_, stressFile, _ := dispatch.JobPaths(macroOut, nanoTmp, "1", cell, "clay", 1)
		raw := tensor.NewSym2(dim)
		raw.Set(0, 0, 1.0)
		if err := store.WriteSym2(stressFile, raw); err != nil {
			tst.Fatal(err)
		}
	}

	if err := Store(pu, cat, "1", macroOut, nanoTmp, 0, 2); err != nil {
		tst.Fatal(err)
	}
	if !store.FileExists(filepath.Join(macroOut, "last.cellA.stress")) {
		tst.Errorf("rank 0 should have stored cellA")
	}
	if store.FileExists(filepath.Join(macroOut, "last.cellB.stress")) {
		tst.Errorf("rank 0 should not have stored cellB")
	}
}
