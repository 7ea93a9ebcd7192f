// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replica

import "gonum.org/v1/gonum/mat"

func transpose(r *mat.Dense) *mat.Dense {
	return mat.DenseCopyOf(r.T())
}
