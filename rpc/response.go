// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

package rpc

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ResultField is the name of the response field holding a successful
// call's payload.
const ResultField = "result"

// FindValue searches a parsed JSON document breadth-first for an object
// field with the given name and returns its raw value. The search
// descends through both objects and arrays, so a field nested under
// intermediate structure is still found. A shallower match always wins
// over a deeper one; between siblings at the same depth, the
// lexically-first field's subtree is searched first. Nodes that are not
// valid JSON are skipped.
func FindValue(doc json.RawMessage, key string) (json.RawMessage, bool) {
	queue := []json.RawMessage{doc}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		trimmed := bytes.TrimLeft(node, " \t\r\n")
		if len(trimmed) == 0 {
			continue
		}
		switch trimmed[0] {
		case '{':
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(node, &obj); err != nil {
				continue
			}
			if value, ok := obj[key]; ok {
				return value, true
			}
			names := make([]string, 0, len(obj))
			for name := range obj {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				queue = append(queue, obj[name])
			}
		case '[':
			var arr []json.RawMessage
			if err := json.Unmarshal(node, &arr); err != nil {
				continue
			}
			queue = append(queue, arr...)
		}
	}
	return nil, false
}

// IsNull reports whether raw is absent or an explicit JSON null.
func IsNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
