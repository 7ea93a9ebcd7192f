// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store implements the persistent I/O shim: reading and
// writing tensors and JSON configuration keyed by (material, replica),
// plus a file-existence check. The byte format is a plain
// whitespace-separated encoding of doubles, one line per record. The
// core only needs write-then-read to round-trip exactly, so stdlib
// encoding suffices and no third-party library is introduced for this
// FE-collaborator-owned wire format (see DESIGN.md).
package store

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/yunkb/DeaLAMMPS/tensor"
)

// FileExists reports whether path names an existing, readable file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadVec reads a rank-1 tensor of dimension d from path.
func ReadVec(path string, d int) (tensor.Vec, error) {
	fields, err := readFields(path)
	if err != nil {
		return nil, err
	}
	if len(fields) != d {
		return nil, chk.Err("store: %s: expected %d components, found %d", path, d, len(fields))
	}
	return tensor.Vec(fields), nil
}

// WriteVec writes a rank-1 tensor.
func WriteVec(path string, v tensor.Vec) error {
	return writeFields(path, []float64(v))
}

// ReadSym2 reads a symmetric rank-2 tensor of dimension d, stored as
// its d(d+1)/2 independent components in row-major (i<=j) order.
func ReadSym2(path string, d int) (*tensor.Sym2, error) {
	fields, err := readFields(path)
	if err != nil {
		return nil, err
	}
	n := d * (d + 1) / 2
	if len(fields) != n {
		return nil, chk.Err("store: %s: expected %d components, found %d", path, n, len(fields))
	}
	out := tensor.NewSym2(d)
	idx := 0
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			out.Set(i, j, fields[idx])
			idx++
		}
	}
	return out, nil
}

// WriteSym2 writes a symmetric rank-2 tensor in the same ordering
// ReadSym2 expects.
func WriteSym2(path string, s *tensor.Sym2) error {
	d := s.Dim()
	var fields []float64
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			fields = append(fields, s.At(i, j))
		}
	}
	return writeFields(path, fields)
}

// ReadSym4 reads a packed symmetric rank-4 tensor of dimension d (21
// independent components in 3D), in the packed (a<=b) order of the
// d(d+1)/2-sized basis tensor.Sym4 uses internally.
func ReadSym4(path string, d int) (*tensor.Sym4, error) {
	fields, err := readFields(path)
	if err != nil {
		return nil, err
	}
	n2 := d * (d + 1) / 2
	n := n2 * (n2 + 1) / 2
	if len(fields) != n {
		return nil, chk.Err("store: %s: expected %d components, found %d", path, n, len(fields))
	}
	out := tensor.NewSym4(d)
	idx := 0
	pairsIJ := symPairs(d)
	for a := 0; a < len(pairsIJ); a++ {
		for b := a; b < len(pairsIJ); b++ {
			i, j := pairsIJ[a][0], pairsIJ[a][1]
			k, l := pairsIJ[b][0], pairsIJ[b][1]
			out.Set(i, j, k, l, fields[idx])
			idx++
		}
	}
	return out, nil
}

// WriteSym4 writes a packed symmetric rank-4 tensor in the ordering
// ReadSym4 expects.
func WriteSym4(path string, t *tensor.Sym4) error {
	d := t.Dim()
	pairsIJ := symPairs(d)
	var fields []float64
	for a := 0; a < len(pairsIJ); a++ {
		for b := a; b < len(pairsIJ); b++ {
			i, j := pairsIJ[a][0], pairsIJ[a][1]
			k, l := pairsIJ[b][0], pairsIJ[b][1]
			fields = append(fields, t.At(i, j, k, l))
		}
	}
	return writeFields(path, fields)
}

// ReadScalar reads a single float64 value (e.g. init.<mat>.density).
func ReadScalar(path string) (float64, error) {
	fields, err := readFields(path)
	if err != nil {
		return 0, err
	}
	if len(fields) != 1 {
		return 0, chk.Err("store: %s: expected 1 component, found %d", path, len(fields))
	}
	return fields[0], nil
}

// WriteScalar writes a single float64 value.
func WriteScalar(path string, v float64) error {
	return writeFields(path, []float64{v})
}

func symPairs(d int) [][2]int {
	var ps [][2]int
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			ps = append(ps, [2]int{i, j})
		}
	}
	return ps
}

func readFields(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("store: cannot open %s: %v", path, err)
	}
	defer f.Close()
	var out []float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		for _, tok := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, chk.Err("store: %s: malformed value %q: %v", path, tok, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, chk.Err("store: %s: %v", path, err)
	}
	return out, nil
}

func writeFields(path string, fields []float64) error {
	var b strings.Builder
	for i, v := range fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.17g", v)
	}
	b.WriteByte('\n')
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return chk.Err("store: cannot write %s: %v", path, err)
	}
	return nil
}

// ReadJSON decodes the JSON document at path into a generic tree of
// nested maps, for callers that need to walk an arbitrary key path
// rather than unmarshal into a fixed struct.
func ReadJSON(path string) (map[string]interface{}, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("store: cannot read %s: %v", path, err)
	}
	return decodeJSON(buf)
}

// JSONPath walks a dotted key path through a decoded JSON tree and
// returns the leaf as a string (e.g. JSONPath(pt, "normal_vector",
// "1", "x")).
func JSONPath(tree map[string]interface{}, path ...string) (string, bool) {
	var cur interface{} = tree
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return "", false
		}
		cur, ok = m[key]
		if !ok {
			return "", false
		}
	}
	switch v := cur.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
