// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpix

import "github.com/cpmech/gosl/mpi"

// Request tracks a posted send. gosl/mpi has no non-blocking Isend
// primitive; SendOne and Send both block until the message is handed
// off under MPI's eager-send threshold, so Wait here is bookkeeping
// that enforces a send/Wait pairing at the call site, not a real
// async completion.
type Request struct {
	done bool
}

// Wait marks the send this Request was returned for as acknowledged.
func (r *Request) Wait() { r.done = true }

// isendUint posts a single unsigned count to local rank `to`.
func (c *Communicator) isendUint(to int, v uint32) *Request {
	toWorld := c.globalRanks[to]
	mpi.SendOne(float64(v), toWorld)
	return &Request{}
}

// isendFloat64s posts a payload of doubles to local rank `to`.
func (c *Communicator) isendFloat64s(to int, data []float64) *Request {
	toWorld := c.globalRanks[to]
	mpi.Send(data, toWorld)
	return &Request{}
}

// RecvUint blocks for a single unsigned count from local rank `from`.
func (c *Communicator) RecvUint(from int) uint32 {
	fromWorld := c.globalRanks[from]
	return uint32(mpi.RecvOne(fromWorld))
}

// RecvFloat64s blocks for exactly len(buf) doubles from local rank
// `from`, reusing the caller-provided buffer (a single reusable buffer
// of capacity spline.MaxRecvDoubles).
func (c *Communicator) RecvFloat64s(from int, buf []float64) {
	fromWorld := c.globalRanks[from]
	mpi.Recv(buf, fromWorld)
}

// SendWaitFloat64s issues a send whose completion is always explicitly
// awaited before the call returns.
func (c *Communicator) SendWaitFloat64s(to int, data []float64) {
	c.isendFloat64s(to, data).Wait()
}

// SendWaitUint is SendWaitFloat64s for a single count value.
func (c *Communicator) SendWaitUint(to int, v uint32) {
	c.isendUint(to, v).Wait()
}
