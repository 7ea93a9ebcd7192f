// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package replica implements the replica catalog and orientation
// pipeline: loading per-(material, replica) reference data, computing
// rotation tensors to the common-ground frame, and averaging
// tensor-valued quantities across a replica ensemble.
package replica

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"

	"github.com/yunkb/DeaLAMMPS/store"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

// Data is one immutable record per (material, replica-index) pair,
// populated during initialization.
type Data struct {
	Mat    string // material identifier
	Repl   int    // 1-based replica index
	Rho    float64
	NFlakes int

	InitLength tensor.Vec
	InitStress *tensor.Sym2
	InitStiff  *tensor.Sym4

	// Rotam rotates replica-local tensors to the common-ground frame.
	Rotam *mat.Dense
}

// Catalog is the ensemble of Data records, laid out with replica index
// inner, material outer: index m*nrepl+r.
type Catalog struct {
	Dim       int
	Materials []string
	NRepl     int
	Records   []*Data
}

// At returns the record for material index m, replica index r (0-based).
func (c *Catalog) At(m, r int) *Data { return c.Records[m*c.NRepl+r] }

// ByNames returns the record for the named material and 1-based
// replica number.
func (c *Catalog) ByNames(mat string, repl1 int) *Data {
	for i, m := range c.Materials {
		if m == mat {
			return c.At(i, repl1-1)
		}
	}
	chk.Panic("replica: unknown material %q", mat)
	return nil
}

// LoadGeneration loads, for every (material, replica), a JSON
// configuration file, failing fast if missing, extracts
// relative_density and Nsheets, and computes the replica's rotation
// tensor to the common-ground frame.
func LoadGeneration(dim int, nanoStateLocIn string, materials []string, nrepl int, cgDir tensor.Vec) *Catalog {
	cat := &Catalog{Dim: dim, Materials: materials, NRepl: nrepl}
	cat.Records = make([]*Data, len(materials)*nrepl)

	for im, mat := range materials {
		for ir := 0; ir < nrepl; ir++ {
			repl := ir + 1
			filename := io.Sf("%s/%s_%d.json", nanoStateLocIn, mat, repl)
			if !store.FileExists(filename) {
				chk.Panic("Missing data for replica #%d of material %s.", repl, mat)
			}

			tree, err := store.ReadJSON(filename)
			if err != nil {
				chk.Panic("Invalid JSON replica data input file (%s): %v", filename, err)
			}

			d := &Data{Mat: mat, Repl: repl}

			rdensity, ok := store.JSONPath(tree, "relative_density")
			if !ok {
				chk.Panic("Missing relative_density in %s", filename)
			}
			d.Rho = atof(rdensity) * 1000.0

			numflakes, ok := store.JSONPath(tree, "Nsheets")
			if !ok {
				chk.Panic("Missing Nsheets in %s", filename)
			}
			d.NFlakes = atoi(numflakes)

			if d.NFlakes == 1 {
				xs, _ := store.JSONPath(tree, "normal_vector", "1", "x")
				ys, _ := store.JSONPath(tree, "normal_vector", "1", "y")
				zs, _ := store.JSONPath(tree, "normal_vector", "1", "z")
				nvrep := tensor.Vec{atof(xs), atof(ys), atof(zs)}
				d.Rotam = tensor.RotationBetween(nvrep, cgDir)
			} else {
				d.Rotam = tensor.Identity(dim)
			}

			cat.Records[im*nrepl+ir] = d
		}
	}
	return cat
}

// LoadEquilibration loads, for every record, init_length/init_stress/
// init_stiff and copies a binary "system" file into the output
// directory. Missing files are reported but do not abort the run.
func LoadEquilibration(cat *Catalog, nanoStateLocIn, nanoStateLocOut string) {
	for _, d := range cat.Records {
		base := io.Sf("%s/init.%s_%d", nanoStateLocIn, d.Mat, d.Repl)

		lengthFile := base + ".length"
		if store.FileExists(lengthFile) {
			v, err := store.ReadVec(lengthFile, cat.Dim)
			if err != nil {
				chk.Panic("%v", err)
			}
			d.InitLength = v
		} else {
			io.Pfred("Missing equilibrated initial length data for material %s replica #%d\n", d.Mat, d.Repl)
		}

		stressFile := base + ".stress"
		if store.FileExists(stressFile) {
			v, err := store.ReadSym2(stressFile, cat.Dim)
			if err != nil {
				chk.Panic("%v", err)
			}
			d.InitStress = v
		} else {
			io.Pfred("Missing equilibrated initial stress data for material %s replica #%d\n", d.Mat, d.Repl)
		}

		stiffFile := base + ".stiff"
		if store.FileExists(stiffFile) {
			v, err := store.ReadSym4(stiffFile, cat.Dim)
			if err != nil {
				chk.Panic("%v", err)
			}
			d.InitStiff = v
		} else {
			io.Pfred("Missing equilibrated initial stiffness data for material %s replica #%d\n", d.Mat, d.Repl)
		}

		systemFile := base + ".bin"
		if store.FileExists(systemFile) {
			if err := CopySystemFile(systemFile, io.Sf("%s/init.%s_%d.bin", nanoStateLocOut, d.Mat, d.Repl)); err != nil {
				io.Pfred("Failed copying equilibrated system for material %s replica #%d: %v\n", d.Mat, d.Repl, err)
			}
		} else {
			io.Pfred("Missing equilibrated initial system for material %s replica #%d\n", d.Mat, d.Repl)
		}
	}
}

func atof(s string) float64 {
	v, err := parseFloat(s)
	if err != nil {
		chk.Panic("replica: cannot parse float %q: %v", s, err)
	}
	return v
}

func atoi(s string) int {
	v, err := parseFloat(s)
	if err != nil {
		chk.Panic("replica: cannot parse int %q: %v", s, err)
	}
	return int(v)
}
