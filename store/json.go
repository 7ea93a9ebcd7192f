// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import "encoding/json"

func decodeJSON(buf []byte) (map[string]interface{}, error) {
	var tree map[string]interface{}
	if err := json.Unmarshal(buf, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
