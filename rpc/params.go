// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

package rpc

import (
	"bytes"
	"encoding/json"
)

// Params is the named-parameter bag of a request. Fields marshal in the
// order they were first set; setting an existing name again overwrites
// the value without changing its position.
type Params struct {
	names  []string
	values map[string]json.RawMessage
}

func newParams() *Params {
	return &Params{values: make(map[string]json.RawMessage)}
}

func (p *Params) set(name string, value json.RawMessage) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Len returns the number of parameters in the bag.
func (p *Params) Len() int {
	return len(p.names)
}

// Get returns the raw JSON value stored under name.
func (p *Params) Get(name string) (json.RawMessage, bool) {
	value, ok := p.values[name]
	return value, ok
}

// MarshalJSON renders the bag as a JSON object preserving insertion order.
func (p *Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(p.values[name])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
