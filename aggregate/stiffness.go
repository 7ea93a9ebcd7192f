// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aggregate

import (
	"github.com/yunkb/DeaLAMMPS/replica"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

// averageStiffness rotates and averages per-replica rank-4 stiffness
// updates into the common-ground frame. Kept unwired: no caller in
// this dispatch core recomputes a per-step stiffness update, only the
// one-time equilibration average in replica.Average. Call site
// intentionally absent from Store; see DESIGN.md.
func averageStiffness(cat *replica.Catalog, matIdx int, perReplica []*tensor.Sym4) *tensor.Sym4 {
	sum := tensor.NewSym4(cat.Dim)
	for r, t := range perReplica {
		if t == nil {
			continue
		}
		d := cat.At(matIdx, r)
		sum = sum.Add(d.RotateSym4ToCommon(t))
	}
	return sum.Scale(1.0 / float64(cat.NRepl))
}
