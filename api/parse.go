// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

package api

import (
	"encoding/json"

	"github.com/juju/collections/transform"
	"github.com/juju/errors"

	"github.com/diamondq/kodi-json-rpc/rpc"
)

// ParseList lifts a single-item parse function to the list shape used
// by NewListCall. A JSON null result yields a nil slice, distinct from
// the empty slice produced by an empty JSON array.
func ParseList[T any](parse ParseOneFunc[T]) ParseManyFunc[T] {
	return func(raw json.RawMessage) ([]T, error) {
		if rpc.IsNull(raw) {
			return nil, nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errors.Annotatef(err, "parsing list result")
		}
		results, err := transform.SliceOrErr(items, parse)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return results, nil
	}
}
