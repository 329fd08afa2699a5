// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package api provides the generic call abstraction every remote Kodi
// method implementation specializes.
//
// Every concrete call fixes three things: the fully qualified method
// name, whether the method returns a list or a single item, and how to
// convert the result node of the response into the target model type.
// Construct single-shaped calls with NewCall and list-shaped calls with
// NewListCall; the rest (envelope construction, result slot handling,
// the single/list accessor duality) is handled here.
//
// Result and Results work independently of the shape the remote method
// actually returns: a list-shaped call yields its first element through
// Result, and a single-shaped call yields a one-element slice through
// Results.
package api

import (
	"context"
	"encoding/json"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/diamondq/kodi-json-rpc/config"
	"github.com/diamondq/kodi-json-rpc/rpc"
)

var logger = loggo.GetLogger("kodirpc.api")

// ParseOneFunc converts the result node of a response into a single
// model value.
type ParseOneFunc[T any] func(json.RawMessage) (T, error)

// ParseManyFunc converts the result node of a response into a list of
// model values.
type ParseManyFunc[T any] func(json.RawMessage) ([]T, error)

// CallOption configures a call at construction time.
type CallOption func(*callOptions)

type callOptions struct {
	idSource rpc.IDSource
}

// WithIDSource sets the correlation id source used for the call's
// request, overriding rpc.DefaultIDSource.
func WithIDSource(source rpc.IDSource) CallOption {
	return func(o *callOptions) {
		o.idSource = source
	}
}

// Call represents one typed invocation of a remote JSON-RPC method. It
// owns the request envelope being built and, after a response has been
// ingested, exactly one realized result: a single value or a list,
// selected by the shape fixed at construction.
type Call[T any] struct {
	request     *rpc.Request
	returnsList bool
	parseOne    ParseOneFunc[T]
	parseMany   ParseManyFunc[T]

	result  T
	results []T
}

// NewCall creates a call for a method returning a single item. No
// network activity occurs until the call is executed.
func NewCall[T any](method string, parse ParseOneFunc[T], options ...CallOption) *Call[T] {
	return &Call[T]{
		request:  newRequest(method, options),
		parseOne: parse,
	}
}

// NewListCall creates a call for a method returning a list of items.
func NewListCall[T any](method string, parse ParseManyFunc[T], options ...CallOption) *Call[T] {
	return &Call[T]{
		request:     newRequest(method, options),
		returnsList: true,
		parseMany:   parse,
	}
}

func newRequest(method string, options []CallOption) *rpc.Request {
	opts := callOptions{idSource: rpc.DefaultIDSource}
	for _, option := range options {
		option(&opts)
	}
	return rpc.NewRequestWithSource(opts.idSource, method)
}

// Request returns the request envelope. Use its setters to attach
// parameters before executing the call.
func (c *Call[T]) Request() *rpc.Request {
	return c.request
}

// ID returns the generated correlation id of the call's request.
func (c *Call[T]) ID() string {
	return c.request.ID()
}

// Method returns the remote method name of the call.
func (c *Call[T]) Method() string {
	return c.request.Method()
}

// ReturnsList reports whether the remote method returns a list of items.
func (c *Call[T]) ReturnsList() bool {
	return c.returnsList
}

// SetResponse ingests the parsed response envelope, locating the result
// node by structural search and populating the call's result slot
// according to its shape. The result node may sit below intermediate
// structure; it is not required at the top level. If no result node is
// present at all, the shape's parse function receives a nil value.
// Parse failures propagate as returned by the conversion function.
func (c *Call[T]) SetResponse(envelope json.RawMessage) error {
	result, _ := rpc.FindValue(envelope, rpc.ResultField)
	if c.returnsList {
		results, err := c.parseMany(result)
		if err != nil {
			return errors.Trace(err)
		}
		c.results = results
		return nil
	}
	one, err := c.parseOne(result)
	if err != nil {
		return errors.Trace(err)
	}
	c.result = one
	return nil
}

// CopyResponse adopts the already-parsed result of another call of the
// same type, for reuse of a payload across related call objects. The
// copy follows this call's shape.
func (c *Call[T]) CopyResponse(from *Call[T]) {
	if c.returnsList {
		c.results = from.Results()
		return
	}
	c.result = from.Result()
}

// Result returns the result as a single item. If the method returns a
// list, this is its first element; accessing it on an empty parsed list
// panics with an index error. If the method returns a single item, the
// stored value is returned as-is, zero value included when the parsed
// result was JSON null.
func (c *Call[T]) Result() T {
	if c.returnsList {
		return c.results[0]
	}
	return c.result
}

// Results returns the result as a list of items. If the method returns
// a single item, a one-element slice holding the stored value is
// synthesized. If the method returns a list, the stored slice is
// returned as-is; a nil slice means the result was JSON null, which is
// distinct from an empty list.
func (c *Call[T]) Results() []T {
	if !c.returnsList {
		return []T{c.result}
	}
	return c.results
}

// Executor submits a request envelope to a host and returns the parsed
// response envelope, or nil for a "no data" (JSON null result) outcome.
// It is implemented by *transport.Client.
type Executor interface {
	Execute(ctx context.Context, cfg *config.HostConfig, request *rpc.Request) (json.RawMessage, error)
}

// ExecuteCall runs the call against the given host and feeds the
// response envelope back into it. A "no data" outcome leaves the call's
// result slots unset.
func ExecuteCall[T any](ctx context.Context, executor Executor, cfg *config.HostConfig, call *Call[T]) error {
	envelope, err := executor.Execute(ctx, cfg, call.Request())
	if err != nil {
		return errors.Trace(err)
	}
	if envelope == nil {
		logger.Debugf("%s returned no data", call.Method())
		return nil
	}
	return errors.Trace(call.SetResponse(envelope))
}
