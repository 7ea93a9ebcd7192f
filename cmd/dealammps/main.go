// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dealammps is the SPMD driver binary for the MD dispatch and
// aggregation core: it initializes the replica catalog once, then
// services the step requests written by the FE collaborator for the
// number of steps given as the second command-line argument.
// Structure follows gofem's own main.go
// (mpi.Start/Stop, chk.Panic on bad input, a recover-and-report
// deferred handler).
package main

import (
	"context"
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/yunkb/DeaLAMMPS/exec"
	"github.com/yunkb/DeaLAMMPS/hmm"
	"github.com/yunkb/DeaLAMMPS/internal/applog"
	"github.com/yunkb/DeaLAMMPS/internal/config"
	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			if mpix.World().Rank() == 0 {
				chk.Verbose = true
				io.PfRed("ERROR: %v\n", err)
			}
		}
		applog.Flush()
		mpix.Stop()
	}()
	mpix.Start()

	world := mpix.World()
	if world.Rank() == 0 {
		io.PfWhite("\nDeaLAMMPS -- MD dispatch and aggregation core\n\n")
	}

	flag.Parse()
	if len(flag.Args()) < 2 {
		chk.Panic("usage: dealammps <config.json> <n_steps>")
	}
	cfgPath := flag.Arg(0)
	nSteps := io.Atoi(flag.Arg(1))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		chk.Panic("%v", err)
	}

	executor := newExecutor(cfg, world.Rank() == 0)

	s := hmm.NewSync(world, cfg, executor)
	if err := s.Init(); err != nil {
		chk.Panic("init failed: %v", err)
	}

	ctx := context.Background()
	for step := cfg.StartStep; step < cfg.StartStep+nSteps; step++ {
		timeID := io.Sf("%d", step)
		if err := s.Update(ctx, timeID, step); err != nil {
			chk.Panic("step %d failed: %v", step, err)
		}
	}
}

// newExecutor picks the in-process or external-scheduler execution
// strategy per the use_external_scheduler initialization parameter.
func newExecutor(cfg *config.Init, isGlobalRank0 bool) exec.Executor {
	if !cfg.UseExternalScheduler {
		return exec.InProcess{Engine: stubMDEngine}
	}
	return exec.ExternalScheduler{
		ScriptsDir:       cfg.NanoLogLocTmp,
		ManifestPath:     io.Sf("%s/job_manifest.ndjson", cfg.MacroStateLocOut),
		OptimizerScript:  cfg.OptimizerScript,
		PilotJobManager:  cfg.PilotJobManager,
		IsGlobalRank0:    isGlobalRank0,
		MacroStateLocOut: cfg.MacroStateLocOut,
		NanoStateLocOut:  cfg.NanoStateLocOut,
		NanoLogLocTmp:    cfg.NanoLogLocTmp,
		NReplicas:        int(cfg.NReplicas),
	}
}
