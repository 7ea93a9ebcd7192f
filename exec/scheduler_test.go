// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/yunkb/DeaLAMMPS/dispatch"
	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

// TestExternalSchedulerWritesScriptsAndManifest exercises the
// non-rank-0 path: scripts and manifest entries are written, but the
// optimizer and pilot-job manager are never invoked.
func TestExternalSchedulerWritesScriptsAndManifest(tst *testing.T) {
	chk.PrintTitle("ExternalSchedulerWritesScriptsAndManifest")
	dir := tst.TempDir()
	e := ExternalScheduler{
		ScriptsDir:    dir,
		ManifestPath:  filepath.Join(dir, "manifest.ndjson"),
		IsGlobalRank0: false,
	}
	jobs := []dispatch.JobDescriptor{
		{CellID: "c1", Material: "clay", Repl: 1, LogDir: dir, Args: []string{"c1", "1", "clay"}},
	}
	if err := e.Execute(nil, jobs, mpix.FakeWorld(1, 0)); err != nil {
		tst.Fatal(err)
	}

	scriptPath := filepath.Join(dir, "bash_c1_clay_1.sh")
	if _, err := os.Stat(scriptPath); err != nil {
		tst.Errorf("expected script at %s: %v", scriptPath, err)
	}

	f, err := os.Open(e.ManifestPath)
	if err != nil {
		tst.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
	}
	if n != 1 {
		tst.Errorf("expected 1 manifest entry, got %d", n)
	}
}
