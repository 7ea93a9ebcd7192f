// Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package applog wires per-rank log files, following inp/logging.go's
// InitLogFile/FlushLog/LogErr/LogErrCond, renamed from the FE domain to
// the HMM dispatch domain.
package applog

import (
	"log"
	"os"

	"github.com/cpmech/gosl/io"
)

var logFile *os.File

// Init creates and attaches the per-rank log file
// "<dirout>/<fnamekey>_p<rank>.log".
func Init(dirout, fnamekey string, rank int) error {
	f, err := os.Create(io.Sf("%s/%s_p%d.log", dirout, fnamekey, rank))
	if err != nil {
		return err
	}
	logFile = f
	log.SetOutput(logFile)
	return nil
}

// Flush closes the log file, flushing it to disk.
func Flush() {
	if logFile != nil {
		logFile.Close()
	}
}

// Err logs err (if non-nil) under msg and reports whether logging
// happened, i.e. whether the caller's soft-failure path was taken.
func Err(err error, msg string) (logged bool) {
	if err != nil {
		log.Printf("ERROR: %s: %v", msg, err)
		return true
	}
	return false
}

// ErrCond logs a formatted message when condition is true.
func ErrCond(condition bool, msg string, args ...interface{}) (logged bool) {
	if condition {
		log.Printf("ERROR: "+msg, args...)
		return true
	}
	return false
}
