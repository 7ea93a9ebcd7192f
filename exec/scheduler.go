// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"

	osexec "os/exec"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/yunkb/DeaLAMMPS/dispatch"
	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

// manifestEntry is one job's record in the pilot-job manifest.
type manifestEntry struct {
	CellID   string   `json:"cell_id"`
	Material string   `json:"material"`
	Replica  int      `json:"replica"`
	LogDir   string   `json:"log_dir"`
	Args     []string `json:"args"`
	Script   string   `json:"script"`
}

// ExternalScheduler dispatches jobs through an external pilot-job
// manager instead of running the MD engine in-process. Every batch
// rank writes its own shell script and manifest entry for the jobs
// its batch owns; only global rank 0 invokes the optimizer and
// submits the manifest to the pilot-job manager.
type ExternalScheduler struct {
	ScriptsDir      string // where per-job shell scripts are written
	ManifestPath    string // where the combined job-list manifest is written
	OptimizerScript string // external allocation optimizer
	PilotJobManager string // the submission command, e.g. "bjobs-submit"
	IsGlobalRank0   bool

	// Fields mirroring the optimizer's CLI contract:
	// "optimizer <macroOut> 1 <nrepl> <time_id> <nanoOut> <nanoLogTmp> <manifest>".
	MacroStateLocOut string
	NanoStateLocOut  string
	NanoLogLocTmp    string
	NReplicas        int
	TimeID           string
}

var _ Executor = ExternalScheduler{}

// Execute writes a shell script and manifest entry per job, then —
// only on global rank 0 — runs the optimizer over the manifest and
// submits the resulting job list to the pilot-job manager.
func (e ExternalScheduler) Execute(ctx context.Context, jobs []dispatch.JobDescriptor, batch *mpix.Communicator) error {
	entries := make([]manifestEntry, 0, len(jobs))
	for _, job := range jobs {
		script, err := e.writeScript(job)
		if err != nil {
			log.Printf("ERROR: cannot write job script %s.%s r%d: %v", job.CellID, job.Material, job.Repl, err)
			continue
		}
		entries = append(entries, manifestEntry{
			CellID:   job.CellID,
			Material: job.Material,
			Replica:  job.Repl,
			LogDir:   job.LogDir,
			Args:     job.Args,
			Script:   script,
		})
	}

	if err := e.appendManifest(entries); err != nil {
		return chk.Err("exec: cannot write manifest: %v", err)
	}

	if !e.IsGlobalRank0 {
		return nil
	}
	return e.generateAndSubmit(ctx)
}

// writeScript emits a POSIX shell script invoking the MD engine with
// this job's argument vector, kept as a human-inspectable fallback
// alongside the JSON manifest entry.
func (e ExternalScheduler) writeScript(job dispatch.JobDescriptor) (string, error) {
	path := io.Sf("%s/bash_%s_%s_%d.sh", e.ScriptsDir, job.CellID, job.Material, job.Repl)
	var buf bytes.Buffer
	buf.WriteString("#!/bin/sh\n")
	buf.WriteString("strain_md")
	for _, a := range job.Args {
		buf.WriteString(" '" + strings.ReplaceAll(a, "'", `'\''`) + "'")
	}
	buf.WriteString("\n")
	if err := os.WriteFile(path, buf.Bytes(), 0755); err != nil {
		return "", err
	}
	return path, nil
}

// appendManifest appends this batch's entries to the shared
// newline-delimited JSON manifest the optimizer later reads.
func (e ExternalScheduler) appendManifest(entries []manifestEntry) error {
	f, err := os.OpenFile(e.ManifestPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// generateAndSubmit runs the external optimizer over the manifest,
// parses its single printed integer, and on a positive allocation
// submits the manifest to the pilot-job manager. A negative allocation
// or malformed output is a configuration error and aborts the
// process; a non-zero submission exit is logged but does not abort
// the step.
func (e ExternalScheduler) generateAndSubmit(ctx context.Context) error {
	out, err := osexec.CommandContext(ctx, e.OptimizerScript,
		e.MacroStateLocOut, "1", strconv.Itoa(e.NReplicas), e.TimeID,
		e.NanoStateLocOut, e.NanoLogLocTmp, e.ManifestPath).Output()
	if err != nil {
		chk.Panic("exec: optimizer script failed: %v", err)
	}
	allocated, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		chk.Panic("exec: cannot parse optimizer output %q: %v", out, err)
	}
	if allocated < 0 {
		chk.Panic("exec: optimizer reported fatal allocation %d", allocated)
	}
	if allocated == 0 {
		return nil
	}

	cmd := osexec.CommandContext(ctx, e.PilotJobManager, e.ManifestPath)
	if err := cmd.Run(); err != nil {
		log.Printf("ERROR: pilot job manager exited non-zero: %v", err)
	}
	return nil
}
