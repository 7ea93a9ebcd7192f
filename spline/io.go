// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spline

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// WriteToFile appends one line per sample, all six distinct strain
// components space-separated, to path.
func (s *Strain6D) WriteToFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return chk.Err("spline: cannot open %s: %v", path, err)
	}
	defer f.Close()

	n := s.NSamples()
	for i := 0; i < n; i++ {
		io.Ff(f, "%g %g %g %g %g %g\n",
			s.strain[0][i], s.strain[1][i], s.strain[2][i],
			s.strain[3][i], s.strain[4][i], s.strain[5][i])
	}
	return nil
}

// FromFile reads a strain history previously written by WriteToFile.
func FromFile(cellID, path string) (*Strain6D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("spline: cannot open %s: %v", path, err)
	}
	defer f.Close()

	s := NewStrain6D(cellID)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var vals [nComponents]float64
		n, _ := fmt.Sscan(sc.Text(), &vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5])
		if n != nComponents {
			continue
		}
		s.Append(vals, s.stress)
	}
	if err := sc.Err(); err != nil {
		return nil, chk.Err("spline: %s: %v", path, err)
	}
	return s, nil
}
