// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replica

import "github.com/yunkb/DeaLAMMPS/tensor"

// RotateToCommon rotates a rank-2 tensor from this replica's local
// frame to the common-ground frame: rotate_tensor(t, rotam).
func (d *Data) RotateToCommon(t *tensor.Sym2) *tensor.Sym2 {
	return tensor.RotateSym2(t, d.Rotam)
}

// RotateToReplica rotates a rank-2 tensor from the common-ground frame
// to this replica's local frame: rotate_tensor(t, rotam^T).
func (d *Data) RotateToReplica(t *tensor.Sym2) *tensor.Sym2 {
	return tensor.RotateSym2(t, transpose(d.Rotam))
}

// RotateSym4ToCommon rotates a rank-4 tensor from this replica's local
// frame to the common-ground frame.
func (d *Data) RotateSym4ToCommon(t *tensor.Sym4) *tensor.Sym4 {
	return tensor.RotateSym4(t, d.Rotam)
}
