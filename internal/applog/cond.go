// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package applog

import "github.com/cpmech/gosl/io"

// Cond is a conditional progress printer: only the process for which
// root is true actually writes.
type Cond struct {
	root bool
}

// NewCond returns a Cond that prints only when root is true.
func NewCond(root bool) Cond { return Cond{root: root} }

// Printf prints a plain (uncolored) progress message via gosl/io's
// io.Pf when this is the root process.
func (c Cond) Printf(format string, args ...interface{}) {
	if c.root {
		io.Pf(format, args...)
	}
}
