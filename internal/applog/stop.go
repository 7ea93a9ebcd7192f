// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package applog

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// PanicOrNot panics with a formatted message when dopanic is true. The
// panic is local to this process; no other process of the group is
// signalled or stopped by it.
func PanicOrNot(dopanic bool, msg string, args ...interface{}) {
	if dopanic {
		io.Pf("\n")
		utl.CallerInfo(3)
		panic(io.Sf(msg, args...))
	}
}
