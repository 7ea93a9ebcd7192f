// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the initialization parameters the FE
// collaborator supplies once per run, as a flat JSON-tagged struct.
package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Init holds every initialization parameter the driver needs once, up
// front, for the whole run.
type Init struct {
	StartStep int `json:"start_step"` // start_timestep

	MDTimestepLength float64 `json:"md_timestep_length"`
	MDTemperature    float64 `json:"md_temperature"`
	MDStepsPerSample int     `json:"md_nsteps_sample"`
	MDStrainRate     float64 `json:"md_strain_rate"`
	ForceField       string  `json:"force_field"`

	NanoStateLocIn  string `json:"nano_state_loc_in"`
	NanoStateLocOut string `json:"nano_state_loc_out"`
	NanoStateLocRes string `json:"nano_state_loc_res"`
	NanoLogLoc      string `json:"nano_log_loc"`
	NanoLogLocTmp   string `json:"nano_log_loc_tmp"`
	NanoLogLocHom   string `json:"nano_log_loc_hom"`
	MacroStateLocOut string `json:"macro_state_loc_out"`

	MDScriptsDirectory string `json:"md_scripts_directory"`

	FreqCheckpoint  int `json:"freq_checkpoint"`
	FreqOutputHomog int `json:"freq_output_homog"`

	BatchNNodesMin uint `json:"batch_nnodes_min"`
	MachinePPN     uint `json:"machine_ppn"`

	Materials    []string  `json:"materials"`
	CommonGround []float64 `json:"common_ground_direction"`
	NReplicas    uint      `json:"n_replicas"`

	UseExternalScheduler bool `json:"use_external_scheduler"`

	// HistoryCompareEvery, when > 0, runs the strain-history comparator
	// every N steps. Zero disables it.
	HistoryCompareEvery int `json:"history_compare_every"`

	// OptimizerScript is the path to the external job-list optimizer;
	// PilotJobManager is the command used to submit the manifest.
	OptimizerScript string `json:"optimizer_script"`
	PilotJobManager string `json:"pilot_job_manager"`

	Dim int `json:"dim"` // tensor dimension d, typically 3
}

// Load reads and decodes an Init from a JSON file.
func Load(path string) (*Init, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("config: cannot read %s: %v", path, err)
	}
	var cfg Init
	if err := json.Unmarshal(buf, &cfg); err != nil {
		return nil, chk.Err("config: cannot parse %s: %v", path, err)
	}
	if cfg.Dim == 0 {
		cfg.Dim = 3
	}
	return &cfg, nil
}
