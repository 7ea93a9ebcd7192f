// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replica

import (
	"github.com/cpmech/gosl/io"

	"github.com/yunkb/DeaLAMMPS/store"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

// AverageSym4 averages the replica-rotated stiffness tensors of a
// material over its nrepl replicas, in the common-ground frame.
func (c *Catalog) AverageSym4(matIdx int) *tensor.Sym4 {
	sum := tensor.NewSym4(c.Dim)
	for r := 0; r < c.NRepl; r++ {
		d := c.At(matIdx, r)
		if d.InitStiff == nil {
			continue // missing data already reported in LoadEquilibration
		}
		sum = sum.Add(d.RotateSym4ToCommon(d.InitStiff))
	}
	return sum.Scale(1.0 / float64(c.NRepl))
}

// AverageDensity averages rho over a material's replicas.
func (c *Catalog) AverageDensity(matIdx int) float64 {
	var sum float64
	for r := 0; r < c.NRepl; r++ {
		sum += c.At(matIdx, r).Rho
	}
	return sum / float64(c.NRepl)
}

// Average computes and persists, for each material, the
// replica-averaged stiffness and density.
func Average(cat *Catalog, macroStateLocOut string) error {
	for im, mat := range cat.Materials {
		stiff := cat.AverageSym4(im)
		density := cat.AverageDensity(im)

		stiffFile := io.Sf("%s/init.%s.stiff", macroStateLocOut, mat)
		if err := store.WriteSym4(stiffFile, stiff); err != nil {
			return err
		}
		densityFile := io.Sf("%s/init.%s.density", macroStateLocOut, mat)
		if err := store.WriteScalar(densityFile, density); err != nil {
			return err
		}
	}
	return nil
}
