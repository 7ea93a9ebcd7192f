// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replica

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/yunkb/DeaLAMMPS/store"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

func TestAverageDensityAndStiffness(tst *testing.T) {
	chk.PrintTitle("AverageDensityAndStiffness")
	dim := 3
	cat := &Catalog{Dim: dim, Materials: []string{"clay"}, NRepl: 2}

	stiffA := tensor.NewSym4(dim)
	stiffA.Set(0, 0, 0, 0, 4.0)
	stiffB := tensor.NewSym4(dim)
	stiffB.Set(0, 0, 0, 0, 6.0)

	cat.Records = []*Data{
		{Mat: "clay", Repl: 1, Rho: 100, InitStiff: stiffA, Rotam: tensor.Identity(dim)},
		{Mat: "clay", Repl: 2, Rho: 200, InitStiff: stiffB, Rotam: tensor.Identity(dim)},
	}

	chk.Scalar(tst, "avg density", 1e-12, cat.AverageDensity(0), 150.0)
	avgStiff := cat.AverageSym4(0)
	chk.Scalar(tst, "avg stiffness 0000", 1e-9, avgStiff.At(0, 0, 0, 0), 5.0)

	dir := tst.TempDir()
	if err := Average(cat, dir); err != nil {
		tst.Fatal(err)
	}

	density, err := store.ReadScalar(filepath.Join(dir, "init.clay.density"))
	if err != nil {
		tst.Fatal(err)
	}
	chk.Scalar(tst, "persisted density", 1e-12, density, 150.0)
}

func TestAverageSym4SkipsMissingStiffness(tst *testing.T) {
	chk.PrintTitle("AverageSym4SkipsMissingStiffness")
	dim := 3
	stiffA := tensor.NewSym4(dim)
	stiffA.Set(0, 0, 0, 0, 4.0)
	cat := &Catalog{Dim: dim, Materials: []string{"clay"}, NRepl: 2, Records: []*Data{
		{Mat: "clay", Repl: 1, InitStiff: stiffA, Rotam: tensor.Identity(dim)},
		{Mat: "clay", Repl: 2, InitStiff: nil, Rotam: tensor.Identity(dim)},
	}}
	avg := cat.AverageSym4(0)
	// divided by NRepl (2), not by the count of present records
	chk.Scalar(tst, "avg with one missing", 1e-9, avg.At(0, 0, 0, 0), 2.0)
}
