// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package transport performs the HTTP round trips of the client: one
// synchronous POST to the host's /jsonrpc endpoint per call, with the
// outcome classified into the flat Code taxonomy. Everything in here is
// synchronous; concurrency, if any, is the caller's business. No retries
// are performed.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/diamondq/kodi-json-rpc/config"
	"github.com/diamondq/kodi-json-rpc/rpc"
)

var logger = loggo.GetLogger("kodirpc.transport")

const (
	// requestTimeout bounds both connecting and the full round trip.
	requestTimeout = 5 * time.Second

	rpcPath   = "/jsonrpc"
	userAgent = "kodi-json-rpc/1.0"
)

// Client submits request envelopes to a Kodi host. The zero set of
// options gives the fixed 5 second connect and read timeouts; a Client
// is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	clock      clock.Clock
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client entirely. The
// caller then owns timeout and redirect behaviour.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout rebuilds the underlying HTTP client with the given
// connect and read timeout in place of the 5 second default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = newHTTPClient(timeout)
	}
}

// WithClock sets the clock used for round-trip timing.
func WithClock(clk clock.Clock) Option {
	return func(c *Client) {
		c.clock = clk
	}
}

// NewClient returns a Client ready for use.
func NewClient(options ...Option) *Client {
	client := &Client{
		httpClient: newHTTPClient(requestTimeout),
		clock:      clock.WallClock,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// newHTTPClient builds an HTTP client with the given connect and
// overall timeouts. Redirects are not followed so that 3xx statuses
// reach classification intact.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: timeout}).DialContext,
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Execute performs one synchronous JSON-RPC round trip: it serializes
// the request envelope, POSTs it to the host and validates the parsed
// response. On success the full response envelope is returned for the
// call to extract its result from; a JSON null result returns a nil
// envelope and no error ("no data"). Every failure is an *Error
// carrying one of the Code constants.
func (c *Client) Execute(ctx context.Context, cfg *config.HostConfig, request *rpc.Request) (json.RawMessage, error) {
	body, err := c.post(ctx, cfg, request)
	if err != nil {
		return nil, errors.Trace(err)
	}
	logger.Debugf("response: %s", body)
	return parseResponse(body)
}

func (c *Client) post(ctx context.Context, cfg *config.HostConfig, request *rpc.Request) ([]byte, error) {
	entity, err := json.Marshal(request)
	if err != nil {
		return nil, &Error{Code: CodeUnsupportedEncoding, Message: "unable to encode request body", Cause: err}
	}

	endpoint := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.HTTPPort)),
		Path:   rpcPath,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(entity))
	if err != nil {
		return nil, &Error{Code: CodeMalformedURL, Message: err.Error(), Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if cfg.HasCredentials() {
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}

	logger.Debugf("call: %s", entity)
	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyNetworkError(err)
	}
	defer drainAndClose(resp.Body)
	logger.Tracef("%s answered %d after %v", endpoint.Host, resp.StatusCode, c.clock.Now().Sub(start))

	if err := classifyStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyNetworkError(err)
	}
	if !utf8.Valid(body) {
		return nil, &Error{Code: CodeUnsupportedEncoding, Message: "unable to decode response body as UTF-8"}
	}
	return body, nil
}

func classifyNetworkError(err error) *Error {
	var netErr net.Error
	switch {
	case stderrors.As(err, &netErr) && netErr.Timeout():
		return &Error{Code: CodeSocketTimeout, Message: err.Error(), Cause: err}
	case stderrors.Is(err, syscall.ECONNREFUSED):
		return &Error{Code: CodeConnectionRefused, Message: err.Error(), Cause: err}
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Op == "parse" {
		return &Error{Code: CodeMalformedURL, Message: err.Error(), Cause: err}
	}
	return &Error{Code: CodeIO, Message: err.Error(), Cause: err}
}

// classifyStatus maps a non-200 HTTP status to its error code. The
// response body is not consulted.
func classifyStatus(status int) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return &Error{Code: CodeBadRequest, Message: `server says "400 Bad HTTP request"`}
	case http.StatusUnauthorized:
		return &Error{Code: CodeUnauthorized, Message: `server says "401 Unauthorized"`}
	case http.StatusForbidden:
		return &Error{Code: CodeForbidden, Message: `server says "403 Forbidden"`}
	case http.StatusNotFound:
		return &Error{Code: CodeNotFound, Message: `server says "404 Not Found"`}
	}
	switch {
	case status >= 100 && status < 200:
		return &Error{Code: CodeHTTPInfo, Message: fmt.Sprintf("server returned informational code %d instead of 200", status)}
	case status >= 200 && status < 300:
		return &Error{Code: CodeHTTPSuccess, Message: fmt.Sprintf("server returned success code %d instead of 200", status)}
	case status >= 300 && status < 400:
		return &Error{Code: CodeHTTPRedirection, Message: fmt.Sprintf("server returned redirection code %d instead of 200", status)}
	case status >= 400 && status < 500:
		return &Error{Code: CodeHTTPClientError, Message: fmt.Sprintf("server returned client error %d", status)}
	case status >= 500 && status < 600:
		return &Error{Code: CodeHTTPServerError, Message: fmt.Sprintf("server returned server error %d", status)}
	}
	return &Error{Code: CodeHTTPUnknown, Message: fmt.Sprintf("server returned unspecified code %d", status)}
}

// parseResponse validates the response body. It returns the full
// envelope on success, (nil, nil) for an explicit JSON null result, and
// a classified error otherwise.
func parseResponse(body []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &Error{Code: CodeJSON, Message: fmt.Sprintf("Parse error: %v", err), Cause: err}
	}
	if rawErr, ok := envelope["error"]; ok {
		return nil, apiError(rawErr)
	}
	result, ok := envelope[rpc.ResultField]
	if !ok {
		return nil, &Error{Code: CodeResponse, Message: "neither result nor error object found in response"}
	}
	if rpc.IsNull(result) {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

// apiError renders the response's error field, which is either a plain
// text message or an object carrying a numeric code and message.
func apiError(raw json.RawMessage) *Error {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return &Error{Code: CodeAPI, Message: "Error: " + text}
	}
	var detail struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &detail); err != nil {
		return &Error{Code: CodeJSON, Message: fmt.Sprintf("Parse error: %v", err), Cause: err}
	}
	return &Error{Code: CodeAPI, Message: fmt.Sprintf("Error %d: %s", detail.Code, detail.Message)}
}

// drainAndClose reads any unconsumed bytes before closing so the
// connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
