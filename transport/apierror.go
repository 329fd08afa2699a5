// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

package transport

import (
	"github.com/juju/errors"
)

// Code identifies the failure class of a transport error. Every failure
// at the transport boundary carries exactly one code; classification is
// flat, there is no code hierarchy.
type Code string

const (
	// Network-level failures, each carrying the underlying cause.
	CodeMalformedURL      Code = "malformed URL"
	CodeConnectionRefused Code = "connection refused"
	CodeSocketTimeout     Code = "socket timeout"
	CodeIO                Code = "io failure"

	// CodeUnsupportedEncoding covers both failure to encode the request
	// body and failure to decode the response body as UTF-8.
	CodeUnsupportedEncoding Code = "unsupported encoding"

	// HTTP status classification. 400, 401, 403 and 404 get dedicated
	// codes; everything else that is not a plain 200 is classified by
	// numeric range.
	CodeBadRequest      Code = "bad request"
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not found"
	CodeHTTPInfo        Code = "http informational"
	CodeHTTPSuccess     Code = "http success"
	CodeHTTPRedirection Code = "http redirection"
	CodeHTTPClientError Code = "http client error"
	CodeHTTPServerError Code = "http server error"
	CodeHTTPUnknown     Code = "http unknown"

	// Protocol-level failures after a successful round trip.
	CodeJSON     Code = "json parse error"
	CodeAPI      Code = "api error"
	CodeResponse Code = "response error"
)

// Error is the single failure type returned by the transport. Message
// is human-readable; Cause holds the triggering error for network and
// parse failures and is nil for purely protocol-level failures.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error is part of the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the code associated with the error.
func (e *Error) ErrorCode() Code {
	return e.Code
}

// ErrCode returns the transport code held by err, looking through any
// annotation wrapping. It returns the empty code when err carries none.
func ErrCode(err error) Code {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given transport code.
func IsCode(err error, code Code) bool {
	return ErrCode(err) == code
}
