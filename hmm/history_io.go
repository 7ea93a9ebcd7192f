// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"github.com/yunkb/DeaLAMMPS/store"
)

// readSym2AsSix reads a symmetric rank-2 tensor and flattens it to
// the six independent components in (xx, yy, zz, xy, xz, yz) order,
// the layout spline.Strain6D expects. Dimensions below 3 leave the
// missing components at zero.
func readSym2AsSix(path string, dim int) (out [6]float64, err error) {
	t, err := store.ReadSym2(path, dim)
	if err != nil {
		return out, err
	}
	out[0] = t.At(0, 0)
	if dim > 1 {
		out[1] = t.At(1, 1)
		out[3] = t.At(0, 1)
	}
	if dim > 2 {
		out[2] = t.At(2, 2)
		out[4] = t.At(0, 2)
		out[5] = t.At(1, 2)
	}
	return out, nil
}
