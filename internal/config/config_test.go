// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestLoadDefaultsDimTo3(tst *testing.T) {
	chk.PrintTitle("LoadDefaultsDimTo3")
	dir := tst.TempDir()
	path := filepath.Join(dir, "init.json")
	if err := os.WriteFile(path, []byte(`{"n_replicas": 4, "materials": ["clay"]}`), 0644); err != nil {
		tst.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		tst.Fatal(err)
	}
	if cfg.Dim != 3 {
		tst.Errorf("Dim = %d, want 3", cfg.Dim)
	}
	if cfg.NReplicas != 4 {
		tst.Errorf("NReplicas = %d, want 4", cfg.NReplicas)
	}
}

func TestLoadMissingFile(tst *testing.T) {
	chk.PrintTitle("LoadMissingFile")
	if _, err := Load(filepath.Join(tst.TempDir(), "missing.json")); err == nil {
		tst.Errorf("expected an error for a missing config file")
	}
}

func TestLoadMalformedJSON(tst *testing.T) {
	chk.PrintTitle("LoadMalformedJSON")
	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		tst.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		tst.Errorf("expected an error for malformed JSON")
	}
}
