// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/yunkb/DeaLAMMPS/replica"
	"github.com/yunkb/DeaLAMMPS/store"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

func TestReadPendingUpdates(tst *testing.T) {
	chk.PrintTitle("ReadPendingUpdates")
	dir := tst.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "last.qpupdates"), []byte("c1\nc2\nc3\n"), 0644); err != nil {
		tst.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "last.matqpupdates"), []byte("clay\nclay\nsand\n"), 0644); err != nil {
		tst.Fatal(err)
	}
	pu, err := ReadPendingUpdates(dir)
	if err != nil {
		tst.Fatal(err)
	}
	if len(pu.CellID) != 3 || pu.CellMat[2] != "sand" {
		tst.Errorf("got %+v", pu)
	}
}

func TestReadPendingUpdatesMissingFilesYieldsEmpty(tst *testing.T) {
	chk.PrintTitle("ReadPendingUpdatesMissingFilesYieldsEmpty")
	pu, err := ReadPendingUpdates(tst.TempDir())
	if err != nil {
		tst.Fatal(err)
	}
	if len(pu.CellID) != 0 {
		tst.Errorf("expected no pending updates, got %d", len(pu.CellID))
	}
}

func TestPlanOwnershipAndArgOrder(tst *testing.T) {
	chk.PrintTitle("PlanOwnershipAndArgOrder")
	dim := 3
	macroOut := tst.TempDir()

	cellStrain := tensor.NewSym2(dim)
	cellStrain.Set(0, 0, 0.01)
	if err := store.WriteSym2(filepath.Join(macroOut, "last.cellA.upstrain"), cellStrain); err != nil {
		tst.Fatal(err)
	}

	cat := buildTestCatalog(dim)
	pu := &PendingUpdate{CellID: []string{"cellA"}, CellMat: []string{"clay"}}

	p := &Planner{
		Dim: dim, MacroStateLocOut: macroOut, NanoLogLocTmp: tst.TempDir(),
		NanoStateLocOut: "nout", NanoStateLocRes: "nres", NanoLogLocHom: "hom", MDScriptsDir: "scripts",
		MDTimestepLength: 0.001, MDTemperature: 300, MDStepsPerSample: 10, MDStrainRate: 1e-4, ForceField: "reax",
	}

	// nMDBatches=2: imdrun=c*nrepl+r=0*2+0=0 for r=0, owning batch 0;
	// imdrun=1 for r=1, owning batch 1. myColor=0, myBatchRank=0.
	jobs := Plan(p, pu, cat, "42", 2, 0, 0, true, false)
	if len(jobs) != 1 {
		tst.Fatalf("got %d jobs, want 1 (only replica 0 owned by color 0)", len(jobs))
	}
	job := jobs[0]
	if job.Repl != 1 || job.CellID != "cellA" || job.Material != "clay" {
		tst.Errorf("unexpected job %+v", job)
	}
	wantArgsLen := 18
	if len(job.Args) != wantArgsLen {
		tst.Errorf("got %d args, want %d", len(job.Args), wantArgsLen)
	}
	if job.Args[0] != "cellA" || job.Args[1] != "42" || job.Args[2] != "clay" {
		tst.Errorf("args prefix mismatch: %v", job.Args[:3])
	}
	if job.Args[16] != "1" || job.Args[17] != "0" {
		tst.Errorf("output_homog/checkpoint_save mismatch: %v", job.Args[16:18])
	}

	if !store.FileExists(job.StrainInputFile) {
		tst.Errorf("expected strain input file to be written at %s", job.StrainInputFile)
	}
}

// buildTestCatalog builds a minimal 1-material, 2-replica catalog
// with identity rotations and unit initial lengths, enough to drive
// Plan's scaling step without a full replica.LoadGeneration call.
func buildTestCatalog(dim int) *replica.Catalog {
	cat := &replica.Catalog{Dim: dim, Materials: []string{"clay"}, NRepl: 2}
	mkData := func(repl int) *replica.Data {
		return &replica.Data{
			Mat: "clay", Repl: repl,
			InitLength: tensor.Vec{1, 1, 1},
			Rotam:      tensor.Identity(dim),
		}
	}
	cat.Records = []*replica.Data{mkData(1), mkData(2)}
	return cat
}
