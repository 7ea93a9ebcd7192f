// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mpix wraps github.com/cpmech/gosl/mpi with the communicator
// splitting and tagged point-to-point operations the HMM dispatch core
// needs (batch partitioning in pool, ring exchange in spline). gosl/mpi
// itself only exposes the implicit MPI_COMM_WORLD view used by gofem
// (mpi.IsOn, mpi.Rank, mpi.Size, mpi.AllReduceSum, ...); Communicator
// keeps that surface available on the world communicator and layers a
// rank-subset view on top for everything that must run on a batch.
package mpix

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// Communicator is a (possibly strict) subset of the world process pool,
// addressed by local rank 0..Size()-1. The zero value is not usable;
// obtain one from World or from Split.
type Communicator struct {
	globalRanks []int // globalRanks[localRank] == world rank
	color       int   // color this communicator was split with, -1 for world
}

// World returns the communicator spanning every MPI process.
func World() *Communicator {
	n := 1
	if mpi.IsOn() {
		n = mpi.Size()
	}
	ranks := make([]int, n)
	for i := range ranks {
		ranks[i] = i
	}
	return &Communicator{globalRanks: ranks, color: -1}
}

// FakeWorld builds a Communicator spanning n processes without a real
// MPI environment behind it, for unit-testing pool/dispatch logic that
// only calls Rank/Size/Split and never crosses a process boundary.
// Reports rank as its own identity. Without a real MPI runtime, Split
// on a FakeWorld-built Communicator of size n > 1 sees only this
// process's own color and key (placed in slot 0) and treats every other
// slot as color 0, key 0, so the sub-communicator it returns does not
// reflect the peers' real colors; Barrier returns immediately.
func FakeWorld(n, rank int) *Communicator {
	ranks := make([]int, n)
	for i := range ranks {
		ranks[i] = i
	}
	ranks[0], ranks[rank] = ranks[rank], ranks[0]
	return &Communicator{globalRanks: ranks, color: -1}
}

// Start initialises the MPI environment. Must be called once, before
// any Communicator is used, mirroring gofem's main.go: mpi.Start(false).
func Start() { mpi.Start(false) }

// Stop finalises the MPI environment.
func Stop() { mpi.Stop(false) }

// Rank returns this process's local rank within the communicator.
func (c *Communicator) Rank() int {
	world := worldRank()
	for local, g := range c.globalRanks {
		if g == world {
			return local
		}
	}
	chk.Panic("mpix: this process (world rank %d) does not belong to the communicator", world)
	return -1
}

// Size returns the number of processes in the communicator.
func (c *Communicator) Size() int { return len(c.globalRanks) }

// Color returns the color this communicator was created with (-1 for
// World; MPI_UNDEFINED-equivalent processes are never represented here
// since pool.Partition always assigns a real color).
func (c *Communicator) Color() int { return c.color }

// Split partitions the communicator by color: every process with the
// same color ends up in the same returned Communicator, ordered by
// (color, key) the way MPI_Comm_split orders by (color, original rank)
// when key equals the original rank, which is how pool.Partition calls
// this. Processes not participating in this split (color < 0) are
// dropped from the result; callers on such processes must not use the
// returned Communicator.
func (c *Communicator) Split(color, key int) *Communicator {
	type member struct{ global, key int }
	var members []member
	myWorld := c.globalRanks[c.Rank()]
	if color >= 0 {
		members = append(members, member{myWorld, key})
	}
	// In a true MPI run every process calls Split collectively and the
	// runtime exchanges colors; here, since Communicator already holds
	// the full membership list, we can compute the split locally without
	// a collective. Gather colors from all peers via the gosl world
	// communicator's AllReduce-style exchange (each process contributes
	// its own color/key, -1 meaning "not participating").
	colors := make([]int, c.Size())
	keys := make([]int, c.Size())
	myLocal := c.Rank()
	allGatherInts(c, myLocal, color, colors)
	allGatherInts(c, myLocal, key, keys)
	var group []member
	for local, col := range colors {
		if col == color {
			group = append(group, member{c.globalRanks[local], keys[local]})
		}
	}
	if len(group) == 0 {
		return &Communicator{globalRanks: nil, color: color}
	}
	// stable sort by key, ties broken by global rank (mirrors MPI_Comm_split)
	for i := 1; i < len(group); i++ {
		for j := i; j > 0 && (group[j].key < group[j-1].key ||
			(group[j].key == group[j-1].key && group[j].global < group[j-1].global)); j-- {
			group[j], group[j-1] = group[j-1], group[j]
		}
	}
	ranks := make([]int, len(group))
	for i, m := range group {
		ranks[i] = m.global
	}
	return &Communicator{globalRanks: ranks, color: color}
}

// Barrier is a world-wide barrier (mpi.WorldBarrier) whichever
// communicator it is called on: it blocks until every world process has
// called it. It returns immediately without MPI or on a single-process
// communicator.
func (c *Communicator) Barrier() {
	if !mpi.IsOn() || c.Size() <= 1 {
		return
	}
	mpi.WorldBarrier()
}

func worldRank() int {
	if mpi.IsOn() {
		return mpi.Rank()
	}
	return 0
}

// allGatherInts fills out[i] with the value contributed by local rank i
// (out must be len(comm-at-World-scope)), using the AllReduceSum
// primitive gofem already depends on: each process places its own value
// at its slot and zero elsewhere, then sums. Safe because exactly one
// contributor writes each slot (colors can legitimately be 0 or
// positive, so we offset by +1 and undo it after the reduction; -1
// "not participating" becomes 0 and is restored to -1).
func allGatherInts(c *Communicator, myLocal, value int, out []int) {
	n := c.Size()
	if !mpi.IsOn() || n <= 1 {
		out[0] = value
		return
	}
	send := make([]float64, n)
	recv := make([]float64, n)
	send[myLocal] = float64(value + 1)
	mpi.AllReduceSum(recv, send)
	for i := range out {
		out[i] = int(recv[i]) - 1
	}
}
