// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool implements the MPI process-pool partitioner: dividing
// a flat communicator into concurrent batches sized to satisfy a
// minimum-nodes-per-batch constraint while maximizing batch count.
package pool

import "github.com/yunkb/DeaLAMMPS/internal/mpix"

// Partition splits parent into equally sized batches, returning the
// batch communicator for this process, the number of batches, the
// number of processes per batch, and this process's color.
//
// Excess processes — those at or beyond
// batchNProcesses*nMDBatches — join the last batch's color rather
// than being left unassigned, so no process in the pool goes idle.
func Partition(parent *mpix.Communicator, nmdruns int, batchNNodesMin, machinePPN uint) (batch *mpix.Communicator, nMDBatches, batchNProcesses, color int) {
	nProcesses := parent.Size()

	npbtchMin := int(batchNNodesMin * machinePPN)
	fairNpbtch := 0
	if nmdruns > 0 {
		fairNpbtch = nProcesses / nmdruns
	}

	npb := fairNpbtch - fairNpbtch%npbtchMin
	if npb < npbtchMin {
		npb = npbtchMin
	}
	batchNProcesses = npb

	nMDBatches = 0
	if batchNProcesses > 0 {
		nMDBatches = nProcesses / batchNProcesses
	}
	if nMDBatches == 0 {
		nMDBatches = 1
		batchNProcesses = nProcesses
	}

	myRank := parent.Rank()
	if myRank < batchNProcesses*nMDBatches {
		color = myRank / batchNProcesses
	} else {
		// excess processes join the last batch
		color = nMDBatches - 1
	}

	batch = parent.Split(color, myRank)
	return batch, nMDBatches, batchNProcesses, color
}
