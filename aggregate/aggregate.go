// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aggregate implements the result aggregator: per cell,
// reading back per-replica stress, removing the equilibrium bias,
// rotating to the common-ground frame, averaging over replicas, and
// cleaning up the job's scratch files.
package aggregate

import (
	"log"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/yunkb/DeaLAMMPS/dispatch"
	"github.com/yunkb/DeaLAMMPS/replica"
	"github.com/yunkb/DeaLAMMPS/store"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

// Store reads back every replica's MD stress response for each
// pending update, de-biases and rotates it into the common-ground
// frame, and writes the per-cell average. Every pending update is
// owned by exactly one process, by `c mod |P|` on the parent
// communicator — a different ownership rule from the batch-based one
// dispatch.Plan uses, so it reconstructs job paths independently via
// dispatch.JobPaths rather than consulting the Planner's job list.
func Store(pu *dispatch.PendingUpdate, cat *replica.Catalog, timeID, macroStateLocOut, nanoLogLocTmp string, parentRank, parentSize int) error {
	ncupd := len(pu.CellID)
	for c := 0; c < ncupd; c++ {
		if c%parentSize != parentRank {
			continue
		}
		if err := storeOne(pu, cat, c, timeID, macroStateLocOut, nanoLogLocTmp); err != nil {
			log.Printf("ERROR: aggregate cell %s: %v", pu.CellID[c], err)
			continue
		}
	}
	return nil
}

func storeOne(pu *dispatch.PendingUpdate, cat *replica.Catalog, c int, timeID, macroStateLocOut, nanoLogLocTmp string) error {
	cellID := pu.CellID[c]
	matName := pu.CellMat[c]
	matIdx := materialIndex(cat.Materials, matName)

	cgStress := tensor.NewSym2(cat.Dim)
	nOK := 0

	for r := 0; r < cat.NRepl; r++ {
		numrepl := r + 1
		strainFile, stressFile, logDir := dispatch.JobPaths(macroStateLocOut, nanoLogLocTmp, timeID, cellID, matName, numrepl)

		if !store.FileExists(stressFile) {
			log.Printf("ERROR: missing stress output for cell %s replica #%d", cellID, numrepl)
			continue
		}

		replStress, err := store.ReadSym2(stressFile, cat.Dim)
		if err != nil {
			log.Printf("ERROR: %v", err)
			continue
		}

		d := cat.At(matIdx, r)
		debiased := replStress
		if d.InitStress != nil {
			debiased = replStress.Sub(d.InitStress)
		}
		cgStress = cgStress.Add(d.RotateToCommon(debiased))
		nOK++

		os.Remove(strainFile)
		os.Remove(stressFile)
		os.RemoveAll(logDir)
	}

	if nOK == 0 {
		return chk.Err("aggregate: cell %s: no replica stress outputs available", cellID)
	}
	cgStress = cgStress.Scale(1.0 / float64(cat.NRepl))

	outFile := macroStateLocOut + "/last." + cellID + ".stress"
	return store.WriteSym2(outFile, cgStress)
}

func materialIndex(materials []string, name string) int {
	for i, m := range materials {
		if m == name {
			return i
		}
	}
	return -1
}
