// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"context"
	"log"

	"github.com/yunkb/DeaLAMMPS/dispatch"
	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

// MDEngine runs one MD replica job to completion on the batch
// communicator it is handed, returning any failure.
type MDEngine func(ctx context.Context, args []string, batch *mpix.Communicator) error

// InProcess runs the MD engine directly inside this process. Every
// process in the batch calls the same engine function on the same job
// in lock-step, since the MD engine itself is MPI-parallel across the
// batch communicator.
type InProcess struct {
	Engine MDEngine
}

var _ Executor = InProcess{}

// Execute runs every job assigned to this batch, one at a time, all
// batch ranks participating together. A job failure is logged and the
// run continues to the next job; it never aborts the whole step.
func (e InProcess) Execute(ctx context.Context, jobs []dispatch.JobDescriptor, batch *mpix.Communicator) error {
	for _, job := range jobs {
		if err := e.Engine(ctx, job.Args, batch); err != nil {
			log.Printf("ERROR: md run %s.%s r%d failed: %v", job.CellID, job.Material, job.Repl, err)
			continue
		}
	}
	return nil
}
