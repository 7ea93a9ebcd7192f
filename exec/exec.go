// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec implements the two MD-run execution strategies behind
// a single interface: an in-process synchronous call, and an external
// pilot-job-manager handoff via generated scripts and a manifest file.
package exec

import (
	"context"

	"github.com/yunkb/DeaLAMMPS/dispatch"
	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

// Executor runs a batch's assigned jobs.
type Executor interface {
	Execute(ctx context.Context, jobs []dispatch.JobDescriptor, batch *mpix.Communicator) error
}
