// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"net/http"
	"time"
)

// An Endpoint describes the shape of one logical API call. Application
// code supplies Endpoint values; the apix client turns them into
// transport-level requests, dispatches them, and validates the
// responses.
//
// Endpoint contains only the required accessors. The accessors with
// sensible defaults (accepted status codes, expected content type,
// request timeout) live on the optional capability interfaces
// StatusAcceptor, ContentTypeExpecter, and Timeouter. An Endpoint which
// does not implement a capability interface gets the documented default
// for that capability.
//
// Endpoint values must be stateless and safe to reuse: the client never
// mutates them, and one Endpoint may back any number of concurrent
// calls.
type Endpoint interface {
	// BaseURL returns the base address of the remote API, for example
	// "https://api.example.com". It must parse as an absolute URL.
	BaseURL() string
	// Path returns the path to append to the base address. It may be
	// empty.
	Path() string
	// Query returns the query items to attach to the request URL, in
	// order. It may be nil.
	Query() []QueryItem
	// Method returns the HTTP method of the call. The empty method is
	// interpreted as GET.
	Method() Method
	// Body returns the request body, or nil if the request has no
	// body.
	Body() []byte
	// Header returns headers to send with the request, or nil. Headers
	// whose names belong to the transport-managed reserved set are
	// silently ignored (see package request).
	Header() http.Header
}

// A StatusAcceptor is an Endpoint which specifies its own set of
// acceptable response status codes. Endpoints which do not implement
// StatusAcceptor, or which return an empty set, accept DefaultStatus
// (200 through 299).
type StatusAcceptor interface {
	AcceptStatus() StatusCodes
}

// A ContentTypeExpecter is an Endpoint which requires the response
// Content-Type to exactly equal a particular value. Endpoints which do
// not implement ContentTypeExpecter, or which return the empty string,
// accept any content type.
type ContentTypeExpecter interface {
	ExpectContentType() string
}

// A Timeouter is an Endpoint which specifies a per-call timeout,
// enforced by the transport layer. Endpoints which do not implement
// Timeouter, or which return zero, have no timeout beyond whatever the
// caller's context imposes.
type Timeouter interface {
	Timeout() time.Duration
}

// AcceptStatus resolves the accepted status code set for ep, falling
// back to DefaultStatus when ep does not specify one.
func AcceptStatus(ep Endpoint) StatusCodes {
	if sa, ok := ep.(StatusAcceptor); ok {
		if s := sa.AcceptStatus(); len(s) > 0 {
			return s
		}
	}
	return DefaultStatus
}

// ExpectContentType resolves the expected response content type for
// ep. The empty string means no expectation.
func ExpectContentType(ep Endpoint) string {
	if ce, ok := ep.(ContentTypeExpecter); ok {
		return ce.ExpectContentType()
	}
	return ""
}

// Timeout resolves the per-call timeout for ep. Zero means no timeout.
func Timeout(ep Endpoint) time.Duration {
	if to, ok := ep.(Timeouter); ok {
		return to.Timeout()
	}
	return 0
}
