// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hmm implements the top-level orchestrator: catalog loading,
// batch partitioning, and the per-step plan/execute/aggregate cycle.
package hmm

import (
	"context"
	"log"

	"github.com/cpmech/gosl/io"

	"github.com/yunkb/DeaLAMMPS/aggregate"
	"github.com/yunkb/DeaLAMMPS/dispatch"
	"github.com/yunkb/DeaLAMMPS/exec"
	"github.com/yunkb/DeaLAMMPS/internal/applog"
	"github.com/yunkb/DeaLAMMPS/internal/config"
	"github.com/yunkb/DeaLAMMPS/internal/mpix"
	"github.com/yunkb/DeaLAMMPS/pool"
	"github.com/yunkb/DeaLAMMPS/replica"
	"github.com/yunkb/DeaLAMMPS/spline"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

// Sync is the per-run state that survives across timesteps — the
// parent communicator, the replica catalog, the dispatch planner, and
// (when enabled) the strain-history comparator state.
type Sync struct {
	Parent *mpix.Communicator
	Cfg    *config.Init

	Catalog *replica.Catalog
	Planner *dispatch.Planner
	Exec    exec.Executor

	histories map[string]*spline.Strain6D
}

// NewSync constructs an uninitialized orchestrator bound to the
// parent communicator. Call Init before the first Update.
func NewSync(parent *mpix.Communicator, cfg *config.Init, executor exec.Executor) *Sync {
	return &Sync{
		Parent:    parent,
		Cfg:       cfg,
		Exec:      executor,
		histories: make(map[string]*spline.Strain6D),
	}
}

// Init runs the one-time initialization sequence: restart log
// recovery, both replica-catalog passes, and the equilibration
// average.
func (s *Sync) Init() error {
	if err := applog.Init(s.Cfg.NanoLogLoc, "dealammps", s.Parent.Rank()); err != nil {
		return err
	}

	s.Restart()

	cg := tensor.Vec(s.Cfg.CommonGround)
	s.Catalog = replica.LoadGeneration(s.Cfg.Dim, s.Cfg.NanoStateLocIn, s.Cfg.Materials, int(s.Cfg.NReplicas), cg)
	replica.LoadEquilibration(s.Catalog, s.Cfg.NanoStateLocIn, s.Cfg.NanoStateLocOut)

	if err := replica.Average(s.Catalog, s.Cfg.MacroStateLocOut); err != nil {
		return err
	}

	s.Planner = &dispatch.Planner{
		Dim:              s.Cfg.Dim,
		NanoLogLocTmp:    s.Cfg.NanoLogLocTmp,
		MacroStateLocOut: s.Cfg.MacroStateLocOut,
		NanoStateLocOut:  s.Cfg.NanoStateLocOut,
		NanoStateLocRes:  s.Cfg.NanoStateLocRes,
		NanoLogLocHom:    s.Cfg.NanoLogLocHom,
		MDScriptsDir:     s.Cfg.MDScriptsDirectory,
		MDTimestepLength: s.Cfg.MDTimestepLength,
		MDTemperature:    s.Cfg.MDTemperature,
		MDStepsPerSample: s.Cfg.MDStepsPerSample,
		MDStrainRate:     s.Cfg.MDStrainRate,
		ForceField:       s.Cfg.ForceField,
	}
	return nil
}

// Update runs one coupling step: plan, barrier, execute, barrier,
// aggregate. timeID is the FE collaborator's step identifier, used to
// key this step's scratch file names.
func (s *Sync) Update(ctx context.Context, timeID string, step int) error {
	pu, err := dispatch.ReadPendingUpdates(s.Cfg.MacroStateLocOut)
	if err != nil {
		return err
	}
	if len(pu.CellID) == 0 {
		return nil
	}

	batch, nMDBatches, _, myColor := pool.Partition(s.Parent, len(pu.CellID)*s.Catalog.NRepl,
		s.Cfg.BatchNNodesMin, s.Cfg.MachinePPN)

	outputHomog := s.Cfg.FreqOutputHomog > 0 && step%s.Cfg.FreqOutputHomog == 0
	checkpointSave := s.Cfg.FreqCheckpoint > 0 && step%s.Cfg.FreqCheckpoint == 0

	jobs := dispatch.Plan(s.Planner, pu, s.Catalog, timeID, nMDBatches, myColor, batch.Rank(), outputHomog, checkpointSave)

	s.Parent.Barrier()

	if err := s.Exec.Execute(ctx, jobs, batch); err != nil {
		log.Printf("ERROR: executor: %v", err)
	}

	s.Parent.Barrier()

	if err := aggregate.Store(pu, s.Catalog, timeID, s.Cfg.MacroStateLocOut, s.Cfg.NanoLogLocTmp,
		s.Parent.Rank(), s.Parent.Size()); err != nil {
		return err
	}

	if s.Cfg.HistoryCompareEvery > 0 && step%s.Cfg.HistoryCompareEvery == 0 {
		s.CompareHistories(pu)
	}

	return nil
}

// CompareHistories updates this rank's per-cell strain/stress
// histories from the step's pending updates and, if at least one
// history has enough samples to splinify, runs the all-pairs ring
// comparison.
func (s *Sync) CompareHistories(pu *dispatch.PendingUpdate) {
	const splineK = 32
	const threshold = 1e-6

	for _, cellID := range pu.CellID {
		strainFile := io.Sf("%s/last.%s.upstrain", s.Cfg.MacroStateLocOut, cellID)
		stressFile := io.Sf("%s/last.%s.stress", s.Cfg.MacroStateLocOut, cellID)

		h, ok := s.histories[cellID]
		if !ok {
			h = spline.NewStrain6D(cellID)
			s.histories[cellID] = h
		}

		strainT, err := readSym2AsSix(strainFile, s.Cfg.Dim)
		if err != nil {
			continue
		}
		stressT, err := readSym2AsSix(stressFile, s.Cfg.Dim)
		if err != nil {
			continue
		}
		h.Append(strainT, stressT)
	}

	var ready []*spline.Strain6D
	for _, h := range s.histories {
		if h.NSamples() >= 3 {
			ready = append(ready, h)
		}
	}
	if len(ready) == 0 {
		return
	}

	comparisons := spline.CompareHistoriesWithAllRanks(s.Parent, ready, splineK, threshold)
	for _, c := range comparisons {
		if !c.Exceeds {
			continue
		}
		log.Printf("history mismatch: cell %s vs rank %d cell %s: L2=%g", c.LocalCellID, c.OtherRank, c.OtherCellID, c.L2Distance)
	}
}
