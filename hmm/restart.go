// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"log"
	"path/filepath"
	"strings"
)

// Restart recovers a previous run's checkpointed state: every file
// under NanoStateLocRes matching "restart/lcts.*" is renamed to its
// "last.*" counterpart in MacroStateLocOut, so the upcoming step
// picks up where the last completed checkpoint left off. A per-file
// filepath.Glob/os.Rename pair handles this directly since it is plain
// local file management, not a subprocess boundary.
func (s *Sync) Restart() {
	pattern := filepath.Join(s.Cfg.NanoStateLocRes, "restart", "lcts.*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		log.Printf("ERROR: restart: glob %s: %v", pattern, err)
		return
	}
	for _, src := range matches {
		base := filepath.Base(src)
		dst := filepath.Join(s.Cfg.MacroStateLocOut, "last."+strings.TrimPrefix(base, "lcts."))
		if err := renameOrCopy(src, dst); err != nil {
			log.Printf("ERROR: restart: %s -> %s: %v", src, dst, err)
		}
	}
}
