// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/apix/endpoint"
	"github.com/gogama/apix/transient"
)

// An Execution represents the state of a single endpoint call.
//
// When a call is dispatched, an Execution is created for it, updated
// as the call progresses through composition, dispatch, and
// validation, and ultimately returned to the caller.
//
// Event handlers may store values on an Execution using its SetValue
// method and read them back using Value. They should treat the
// structure's exported fields as read-only, with the single exception
// of reasonable changes a BeforeSend handler makes to the outgoing
// request.
type Execution struct {
	// ID uniquely identifies this call, for example for log
	// correlation. It is assigned when the execution is created and
	// never changes.
	ID string

	// Endpoint is the descriptor the call was made from. It is never
	// nil.
	Endpoint endpoint.Endpoint

	// Request is the composed transport-level request, after any
	// request modifier has run. It is nil if composition failed.
	Request *Request

	// HTTPRequest is the lower-level HTTP request handed to the
	// transport. It is nil before dispatch and if composition failed.
	HTTPRequest *http.Request

	// Start is the time the call started.
	Start time.Time

	// End is the time the call ended. It contains the zero value until
	// the terminal event handlers are about to run.
	End time.Time

	// Response is the HTTP response received from the transport, or
	// nil if the transport returned an error.
	Response *http.Response

	// Outcome is the result payload. After a successful call it is
	// never nil. After a failed call it is non-nil only when the
	// failure is an invalid status code, in which case it carries the
	// rejected payload; all other failures leave it nil.
	Outcome *Outcome

	// Err is the error the call ended with, or nil on success.
	Err error

	// data carries arbitrary handler-owned values.
	data context.Context
}

// StatusCode returns the status code of the HTTP response, or 0 if
// there is no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the HTTP response headers, or the nil header if there
// is no response. The nil header is safe for read-only use.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}
	return e.Response.Header
}

// Duration returns the duration of the call: zero before it starts,
// elapsed time while in flight, and End minus Start once ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	} else if !e.Ended() {
		return time.Since(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the call has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the call has ended. Once Ended reports true
// there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout, whether from the per-call timeout or the
// caller's context deadline.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue associates a handler-owned value with the execution.
//
// The key follows the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should be of an unexported handler-defined type to avoid collisions
// between handlers.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the value associated with key by SetValue, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
