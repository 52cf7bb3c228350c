// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gogama/apix/endpoint"
	"github.com/gogama/apix/request"
)

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package.
//
// The HTTPDoer is the transport collaborator: it owns TLS, redirects,
// cookies, connection reuse, and every other wire-level concern. The
// apix client adds nothing on top of it beyond composition,
// validation, and event notification.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the Go
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// A RequestModifier is an application hook applied once per call,
// after the request is composed and before any event handler or
// transport activity. It may mutate the request in place (for example
// to inject an Authorization header) or return an error, which aborts
// the call.
type RequestModifier func(ctx context.Context, req *request.Request) error

var emptyHandlers = HandlerGroup{}

// A Client makes typed endpoint calls through an HTTPDoer. Its zero
// value is a valid configuration using http.DefaultClient, no event
// handlers, and no request modifier.
//
// Every call runs the same pipeline: compose the endpoint descriptor
// into a transport-level request, apply the request modifier, notify
// BeforeSend handlers, dispatch exactly one transport operation,
// validate the response status code and content type, and notify
// AfterSuccess or AfterError handlers. Nothing is retried, cached, or
// logged by the client itself; side-effecting concerns belong in
// handlers, and retry logic belongs to the caller, who receives typed
// errors carrying enough context to build it.
//
// Client is safe for concurrent use by multiple goroutines: calls
// share no state beyond the HTTPDoer, the handler group, and the
// modifier, all of which the client treats as read-only.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer
	// Handlers allows custom handler chains to be invoked at the
	// fixed points of the call lifecycle.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Modifier, if non-nil, adjusts every composed request before
	// dispatch.
	Modifier RequestModifier
}

// BuildRequest composes the transport-level request for ep and applies
// the client's request modifier, without dispatching anything. It is
// the request the client would send if the same endpoint were passed
// to one of the call methods.
func (c *Client) BuildRequest(ctx context.Context, ep endpoint.Endpoint) (*request.Request, error) {
	if ctx == nil {
		return nil, errors.New("apix: nil context")
	}
	req, err := request.Compose(ep)
	if err != nil {
		return nil, err
	}
	if c.Modifier != nil {
		if err = c.Modifier(ctx, req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// Fetch dispatches ep and buffers the whole response body into a bytes
// outcome.
//
// The returned Execution is never nil. If the returned error is nil,
// the execution's Outcome is a KindBytes outcome containing the
// buffered body (which may have zero length). If the returned error is
// non-nil, the Err field of the execution references the same error.
func (c *Client) Fetch(ctx context.Context, ep endpoint.Endpoint) (*request.Execution, error) {
	return c.call(ctx, ep, consumeBytes, false)
}

// Download dispatches ep and saves the response body to the file at
// path, creating or truncating it. The body is written through a
// temporary file in the same directory and moved into place, so a
// partially transferred body never appears at path.
//
// The file is written before validation, so when the call fails with a
// status code error the rejected payload is still available at path
// through the error's Outcome. For resumable background downloads with
// progress reporting and cancel/resume support, use package download.
func (c *Client) Download(ctx context.Context, ep endpoint.Endpoint, path string) (*request.Execution, error) {
	return c.call(ctx, ep, consumeFile(path), false)
}

// Stream dispatches ep and returns the response body as an open byte
// stream outcome. The caller owns the stream and must close it, even
// when the call fails validation (the rejected stream travels in the
// typed error).
func (c *Client) Stream(ctx context.Context, ep endpoint.Endpoint) (*request.Execution, error) {
	return c.call(ctx, ep, consumeStream, true)
}

// Upload dispatches ep with its body replaced by the given payload,
// buffering the response like Fetch.
//
// The body parameter may be nil for an empty body, or may be any of
// the types supported by request.BodyBytes, namely: string; []byte;
// io.Reader; and io.ReadCloser.
func (c *Client) Upload(ctx context.Context, ep endpoint.Endpoint, body interface{}) (*request.Execution, error) {
	b, err := request.BodyBytes(body)
	if err != nil {
		return c.abort(ep, err)
	}
	return c.call(ctx, bodyOverride{ep, b}, consumeBytes, false)
}

// UploadFile dispatches ep with its body replaced by the contents of
// the file at path, buffering the response like Fetch.
func (c *Client) UploadFile(ctx context.Context, ep endpoint.Endpoint, path string) (*request.Execution, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return c.abort(ep, err)
	}
	return c.call(ctx, bodyOverride{ep, b}, consumeBytes, false)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer, if it has one; otherwise it does nothing. For
// example, the http.Client type forwards the call to its Transport.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

// A consumer turns a transport response into a result payload. It owns
// the response body unless the call is a streaming call.
type consumer func(resp *http.Response) (*request.Outcome, error)

func (c *Client) call(ctx context.Context, ep endpoint.Endpoint, consume consumer, stream bool) (*request.Execution, error) {
	e := &request.Execution{
		ID:       uuid.NewString(),
		Endpoint: ep,
		Start:    time.Now(),
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	req, err := c.BuildRequest(ctx, ep)
	if err != nil {
		// Composition and modifier failures abort before the
		// transport and before any event fires.
		e.Err = err
		e.End = time.Now()
		return e, err
	}
	e.Request = req

	sendCtx := ctx
	cancel := func() {}
	if req.Timeout > 0 {
		sendCtx, cancel = context.WithTimeout(ctx, req.Timeout)
	}
	defer func() { cancel() }()

	e.HTTPRequest = req.ToHTTP(sendCtx)
	handlers.run(BeforeSend, e)

	resp, err := c.doer().Do(e.HTTPRequest)
	if err != nil {
		return fail(handlers, e, urlErrorWrap(req, err))
	}
	if resp == nil {
		return fail(handlers, e, &DataError{Op: "call"})
	}
	e.Response = resp

	if stream {
		// The stream outlives this call, so the timeout cancel moves
		// to the stream's Close.
		resp.Body = &cancelCloser{ReadCloser: resp.Body, cancel: cancel}
		cancel = func() {}
	}

	outcome, err := consume(resp)
	if err != nil {
		return fail(handlers, e, urlErrorWrap(req, err))
	}

	if err = validate(ep, resp, outcome); err != nil {
		return fail(handlers, e, err)
	}

	e.Outcome = outcome
	e.End = time.Now()
	handlers.run(AfterSuccess, e)
	return e, nil
}

// validate checks the response against the endpoint's accepted status
// code set and then, only if the status is acceptable, against its
// expected content type.
func validate(ep endpoint.Endpoint, resp *http.Response, outcome *request.Outcome) error {
	if !endpoint.AcceptStatus(ep).Contains(resp.StatusCode) {
		return &StatusError{Code: resp.StatusCode, Response: resp, Outcome: outcome}
	}
	if expect := endpoint.ExpectContentType(ep); expect != "" {
		if observed := resp.Header.Get("Content-Type"); observed != expect {
			return &ContentTypeError{Type: observed, Response: resp, Outcome: outcome}
		}
	}
	return nil
}

func fail(handlers *HandlerGroup, e *request.Execution, err error) (*request.Execution, error) {
	e.Err = err
	e.Outcome = errOutcome(err)
	e.End = time.Now()
	handlers.run(AfterError, e)
	return e, err
}

// abort ends a call that never produced a composed request, without
// firing any event.
func (c *Client) abort(ep endpoint.Endpoint, err error) (*request.Execution, error) {
	now := time.Now()
	e := &request.Execution{
		ID:       uuid.NewString(),
		Endpoint: ep,
		Start:    now,
		End:      now,
		Err:      err,
	}
	return e, err
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}
	return c.HTTPDoer
}

func consumeBytes(resp *http.Response) (*request.Outcome, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return request.BytesOutcome(b), nil
}

func consumeStream(resp *http.Response) (*request.Outcome, error) {
	return request.StreamOutcome(resp.Body), nil
}

func consumeFile(path string) consumer {
	return func(resp *http.Response) (*request.Outcome, error) {
		defer func() {
			_ = resp.Body.Close()
		}()
		tmp, err := os.CreateTemp(filepath.Dir(path), ".apix-*")
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(tmp, resp.Body)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err == nil {
			err = os.Rename(tmp.Name(), path)
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
			return nil, err
		}
		return request.FileOutcome(path), nil
	}
}

// bodyOverride substitutes an upload payload for the endpoint's own
// body while forwarding every other accessor, including the defaulted
// capabilities.
type bodyOverride struct {
	endpoint.Endpoint
	body []byte
}

func (b bodyOverride) Body() []byte { return b.body }

func (b bodyOverride) AcceptStatus() endpoint.StatusCodes {
	return endpoint.AcceptStatus(b.Endpoint)
}

func (b bodyOverride) ExpectContentType() string {
	return endpoint.ExpectContentType(b.Endpoint)
}

func (b bodyOverride) Timeout() time.Duration {
	return endpoint.Timeout(b.Endpoint)
}

// cancelCloser ties a context cancel function to the close of a
// response stream.
type cancelCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func urlErrorWrap(req *request.Request, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(string(req.Method)),
		URL: req.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
