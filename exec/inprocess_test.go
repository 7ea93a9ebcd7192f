// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"context"
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/yunkb/DeaLAMMPS/dispatch"
	"github.com/yunkb/DeaLAMMPS/internal/mpix"
)

func TestInProcessRunsEveryJob(tst *testing.T) {
	chk.PrintTitle("InProcessRunsEveryJob")
	var seen []string
	eng := InProcess{Engine: func(ctx context.Context, args []string, batch *mpix.Communicator) error {
		seen = append(seen, args[0])
		return nil
	}}
	jobs := []dispatch.JobDescriptor{
		{CellID: "c1", Args: []string{"c1"}},
		{CellID: "c2", Args: []string{"c2"}},
	}
	if err := eng.Execute(context.Background(), jobs, mpix.FakeWorld(1, 0)); err != nil {
		tst.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != "c1" || seen[1] != "c2" {
		tst.Errorf("got %v", seen)
	}
}

func TestInProcessSkipsPastFailures(tst *testing.T) {
	chk.PrintTitle("InProcessSkipsPastFailures")
	var ran []string
	eng := InProcess{Engine: func(ctx context.Context, args []string, batch *mpix.Communicator) error {
		ran = append(ran, args[0])
		if args[0] == "c1" {
			return errors.New("md engine crashed")
		}
		return nil
	}}
	jobs := []dispatch.JobDescriptor{
		{CellID: "c1", Args: []string{"c1"}},
		{CellID: "c2", Args: []string{"c2"}},
	}
	if err := eng.Execute(context.Background(), jobs, mpix.FakeWorld(1, 0)); err != nil {
		tst.Fatal(err)
	}
	if len(ran) != 2 {
		tst.Errorf("expected both jobs to run despite the first failing, got %v", ran)
	}
}
