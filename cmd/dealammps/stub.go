// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os/exec"

	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

// stubMDEngine shells out to an external "strain_md" executable with
// the precomputed argument vector. A real in-process engine would
// instead call directly into a cgo-bound MD library on the same batch
// communicator; that binding is outside this core's scope.
func stubMDEngine(ctx context.Context, args []string, batch *mpix.Communicator) error {
	cmd := exec.CommandContext(ctx, "strain_md", args...)
	return cmd.Run()
}
