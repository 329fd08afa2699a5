// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package rpc defines the JSON-RPC wire envelopes exchanged with a Kodi
// host: the request envelope with its named-parameter bag, and helpers
// for digging values out of a parsed response.
package rpc

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/juju/errors"
)

// Version is the JSON-RPC protocol version sent with every request.
const Version = "2.0"

// Model is implemented by values that can render themselves as a JSON
// value, for use as nested request parameters.
type Model interface {
	ToJSON() (json.RawMessage, error)
}

// Request is the envelope sent as the HTTP body of a call. The protocol
// version, correlation id and method name are fixed at construction;
// only the parameter bag may be written to afterwards, and only until
// the request is transmitted.
type Request struct {
	id     string
	method string
	params *Params
}

// NewRequest creates a request envelope for the given fully qualified
// method name (e.g. "AudioLibrary.GetSongDetails"), drawing a fresh
// correlation id from DefaultIDSource.
func NewRequest(method string) *Request {
	return NewRequestWithSource(DefaultIDSource, method)
}

// NewRequestWithSource is NewRequest with an explicit id source, for
// callers that need deterministic correlation ids.
func NewRequestWithSource(source IDSource, method string) *Request {
	return &Request{
		id:     source.NextID(),
		method: method,
	}
}

// ID returns the generated correlation id of the request.
func (r *Request) ID() string {
	return r.id
}

// Method returns the remote method name of the request.
func (r *Request) Method() string {
	return r.method
}

// Params returns the parameter bag, creating it on first use. Repeated
// calls return the same bag.
func (r *Request) Params() *Params {
	if r.params == nil {
		r.params = newParams()
	}
	return r.params
}

// HasParams reports whether any parameter has been added.
func (r *Request) HasParams() bool {
	return r.params != nil
}

// AddString adds a string parameter. A nil value is not serialized; an
// explicit empty string is.
func (r *Request) AddString(name string, value *string) {
	if value == nil {
		return
	}
	raw, _ := json.Marshal(*value)
	r.Params().set(name, raw)
}

// AddInt adds an integer parameter. A nil value is not serialized.
func (r *Request) AddInt(name string, value *int) {
	if value == nil {
		return
	}
	raw, _ := json.Marshal(*value)
	r.Params().set(name, raw)
}

// AddBool adds a boolean parameter. A nil value is not serialized; an
// explicit false is.
func (r *Request) AddBool(name string, value *bool) {
	if value == nil {
		return
	}
	raw, _ := json.Marshal(*value)
	r.Params().set(name, raw)
}

// AddFloat adds a floating point parameter. Nil and non-finite values
// are not serialized.
func (r *Request) AddFloat(name string, value *float64) {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return
	}
	raw, _ := json.Marshal(*value)
	r.Params().set(name, raw)
}

// AddObject adds a nested model parameter, serialized through the
// model's own conversion. A nil value is not serialized.
func (r *Request) AddObject(name string, value Model) error {
	if value == nil {
		return nil
	}
	raw, err := value.ToJSON()
	if err != nil {
		return errors.Annotatef(err, "serializing parameter %q", name)
	}
	r.Params().set(name, raw)
	return nil
}

// AddObjects adds an array of nested model parameters. Nil and empty
// slices are not serialized.
func (r *Request) AddObjects(name string, values ...Model) error {
	if len(values) == 0 {
		return nil
	}
	items := make([]json.RawMessage, len(values))
	for i, value := range values {
		raw, err := value.ToJSON()
		if err != nil {
			return errors.Annotatef(err, "serializing parameter %q", name)
		}
		items[i] = raw
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Trace(err)
	}
	r.Params().set(name, raw)
	return nil
}

// AddStrings adds an array-of-strings parameter. Nil and empty slices
// are not serialized.
func (r *Request) AddStrings(name string, values []string) {
	if len(values) == 0 {
		return
	}
	raw, _ := json.Marshal(values)
	r.Params().set(name, raw)
}

// AddStringMap adds a string-to-string mapping parameter. Nil and empty
// maps are not serialized.
func (r *Request) AddStringMap(name string, values map[string]string) {
	if len(values) == 0 {
		return
	}
	raw, _ := json.Marshal(values)
	r.Params().set(name, raw)
}

// MarshalJSON renders the request envelope. The params field is omitted
// entirely when no parameter was ever added.
func (r *Request) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"jsonrpc":`)
	writeJSONString(&buf, Version)
	buf.WriteString(`,"id":`)
	writeJSONString(&buf, r.id)
	buf.WriteString(`,"method":`)
	writeJSONString(&buf, r.method)
	if r.params != nil {
		buf.WriteString(`,"params":`)
		raw, err := r.params.MarshalJSON()
		if err != nil {
			return nil, errors.Trace(err)
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	raw, _ := json.Marshal(s)
	buf.Write(raw)
}
