// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch implements the per-step dispatch planner: reading
// the pending-update manifest, producing per-(cell, replica) job
// descriptors, and assigning them to batches.
package dispatch

import (
	"bufio"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/yunkb/DeaLAMMPS/replica"
	"github.com/yunkb/DeaLAMMPS/store"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

// JobDescriptor is one (cell, replica) MD invocation.
type JobDescriptor struct {
	ImdRun int // c*nrepl + r, owning batch is ImdRun mod nMDBatches

	CellID   string
	TimeID   string
	Material string
	Repl     int // 1-based

	LogDir          string
	StrainInputFile string
	StressOutFile   string

	Args []string // MD-engine argument vector
}

// PendingUpdate is the ordered list of per-step cell updates read from
// the two manifest files.
type PendingUpdate struct {
	CellID []string
	CellMat []string
}

// ReadPendingUpdates reads last.qpupdates / last.matqpupdates.
func ReadPendingUpdates(macroStateLocOut string) (*PendingUpdate, error) {
	cellFile := macroStateLocOut + "/last.qpupdates"
	matFile := macroStateLocOut + "/last.matqpupdates"

	cellID, err := readLines(cellFile)
	if err != nil {
		return &PendingUpdate{}, nil // mirrors "unable to open" -> ncupd stays 0
	}
	cellMat, err := readLines(matFile)
	if err != nil {
		return &PendingUpdate{}, nil
	}
	n := len(cellID)
	if len(cellMat) < n {
		n = len(cellMat)
	}
	return &PendingUpdate{CellID: cellID[:n], CellMat: cellMat[:n]}, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// Planner holds the per-step scratch state (strain/stress file paths,
// per-job log directories, MD argument vectors) and the static
// configuration needed to build job descriptors. The scratch state is
// per-step, not configuration, and Reset clears it at the start of
// every step.
type Planner struct {
	Dim              int
	NanoLogLocTmp    string
	MacroStateLocOut string
	NanoStateLocOut  string
	NanoStateLocRes  string
	NanoLogLocHom    string
	MDScriptsDir     string

	MDTimestepLength float64
	MDTemperature    float64
	MDStepsPerSample int
	MDStrainRate     float64
	ForceField       string

	jobs []JobDescriptor
}

// Reset clears per-step scratch state.
func (p *Planner) Reset() { p.jobs = nil }

// JobPaths computes the three per-(cell,replica) artifact paths shared
// by the planner and the aggregator, so both sides agree on naming
// without the aggregator needing its own copy of the Planner's state.
func JobPaths(macroStateLocOut, nanoLogLocTmp, timeID, cellID, cellMat string, numrepl int) (strainFile, stressFile, logDir string) {
	strainFile = io.Sf("%s/last.%s.%d.upstrain", macroStateLocOut, cellID, numrepl)
	stressFile = io.Sf("%s/last.%s.%d.stress", macroStateLocOut, cellID, numrepl)
	logDir = io.Sf("%s/%s.%s.%s_%d", nanoLogLocTmp, timeID, cellID, cellMat, numrepl)
	return
}

// Plan builds the job descriptors owned by this process's batch: for
// update c and replica r it computes imdrun and keeps the job only when
// imdrun mod nMDBatches equals myColor. On the batch's rank 0 it also
// reads the cell's common-ground strain, rotates it to the replica
// frame, scales it into a length variation by init_length, writes the
// job's strain input file and creates the job's log directory. Every
// batch member gets the job's argument vector.
func Plan(p *Planner, pu *PendingUpdate, cat *replica.Catalog, timeID string, nMDBatches, myColor, myBatchRank int, outputHomog, checkpointSave bool) []JobDescriptor {
	p.Reset()
	ncupd := len(pu.CellID)
	nrepl := cat.NRepl

	p.jobs = make([]JobDescriptor, 0, ncupd*nrepl)

	for c := 0; c < ncupd; c++ {
		matIdx := materialIndex(cat.Materials, pu.CellMat[c])
		for r := 0; r < nrepl; r++ {
			numrepl := r + 1
			imdrun := c*nrepl + r

			strainFile, stressFile, logDir := JobPaths(p.MacroStateLocOut, p.NanoLogLocTmp, timeID, pu.CellID[c], pu.CellMat[c], numrepl)
			job := JobDescriptor{
				ImdRun:          imdrun,
				CellID:          pu.CellID[c],
				TimeID:          timeID,
				Material:        pu.CellMat[c],
				Repl:            numrepl,
				StrainInputFile: strainFile,
				StressOutFile:   stressFile,
				LogDir:          logDir,
			}

			owningBatch := imdrun % nMDBatches
			if owningBatch != myColor {
				continue
			}

			d := cat.At(matIdx, r)

			if myBatchRank == 0 {
				cellStrainFile := io.Sf("%s/last.%s.upstrain", p.MacroStateLocOut, pu.CellID[c])
				cgStrain, err := store.ReadSym2(cellStrainFile, p.Dim)
				if err != nil {
					chk.Panic("dispatch: %v", err)
				}

				locStrain := d.RotateToReplica(cgStrain)
				locStrain = scaleByLength(locStrain, d.InitLength, p.Dim)

				if err := store.WriteSym2(job.StrainInputFile, locStrain); err != nil {
					chk.Panic("dispatch: %v", err)
				}
				if err := os.MkdirAll(job.LogDir, 0755); err != nil {
					chk.Panic("dispatch: cannot create log dir %s: %v", job.LogDir, err)
				}
			}

			job.Args = []string{
				job.CellID, job.TimeID, job.Material,
				p.NanoStateLocOut, p.NanoStateLocRes, p.NanoLogLocHom, job.LogDir, p.MDScriptsDir,
				job.StrainInputFile, job.StressOutFile,
				itoa(job.Repl),
				ftoa(p.MDTimestepLength), ftoa(p.MDTemperature), itoa(p.MDStepsPerSample), ftoa(p.MDStrainRate),
				p.ForceField,
				btoa(outputHomog), btoa(checkpointSave),
			}

			p.jobs = append(p.jobs, job)
		}
	}
	return p.jobs
}

// scaleByLength resizes a strain tensor by the replica's initial
// length into a displacement-like quantity: diagonal (i,i) scaled by
// init_length[i], off-diagonal (i,(i+1)%d) scaled by
// init_length[(i+2)%d].
func scaleByLength(strain *tensor.Sym2, length tensor.Vec, d int) *tensor.Sym2 {
	out := strain.Clone()
	for i := 0; i < d; i++ {
		out.Set(i, i, strain.At(i, i)*length[i])
	}
	for i := 0; i < d; i++ {
		j := (i + 1) % d
		k := (i + 2) % d
		out.Set(i, j, strain.At(i, j)*length[k])
	}
	return out
}

func materialIndex(materials []string, name string) int {
	for i, m := range materials {
		if m == name {
			return i
		}
	}
	chk.Panic("dispatch: unknown material %q", name)
	return -1
}
