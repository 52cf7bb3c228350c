// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"net/http"
	"time"
)

// A Definition is a ready-made Endpoint implementation constructed
// with Define. It implements Endpoint plus all three capability
// interfaces, and is immutable after construction.
//
// Use Define for one-off endpoints, or LoadFile to read a whole set of
// named definitions from a configuration file.
type Definition struct {
	base        string
	path        string
	query       []QueryItem
	method      Method
	body        []byte
	header      http.Header
	accept      StatusCodes
	contentType string
	timeout     time.Duration
}

// An Option customizes a Definition under construction.
type Option func(*Definition)

// Define constructs an immutable endpoint Definition.
func Define(base, path string, method Method, opts ...Option) *Definition {
	d := &Definition{
		base:   base,
		path:   path,
		method: method,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithQuery appends query items, preserving order across calls.
func WithQuery(items ...QueryItem) Option {
	return func(d *Definition) {
		d.query = append(d.query, items...)
	}
}

// WithBody sets the request body.
func WithBody(body []byte) Option {
	return func(d *Definition) {
		d.body = body
	}
}

// WithHeader sets one request header, replacing any existing value for
// the same name.
func WithHeader(name, value string) Option {
	return func(d *Definition) {
		if d.header == nil {
			d.header = make(http.Header)
		}
		d.header.Set(name, value)
	}
}

// WithAccept sets the accepted response status code set.
func WithAccept(s StatusCodes) Option {
	return func(d *Definition) {
		d.accept = s
	}
}

// WithContentType sets the expected response content type. The
// response Content-Type header must equal it exactly.
func WithContentType(ct string) Option {
	return func(d *Definition) {
		d.contentType = ct
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Definition) {
		d.timeout = timeout
	}
}

// BaseURL returns the base address.
func (d *Definition) BaseURL() string { return d.base }

// Path returns the path appended to the base address.
func (d *Definition) Path() string { return d.path }

// Query returns the query items in declaration order.
func (d *Definition) Query() []QueryItem { return d.query }

// Method returns the HTTP method.
func (d *Definition) Method() Method { return d.method }

// Body returns the request body, or nil.
func (d *Definition) Body() []byte { return d.body }

// Header returns the request headers, or nil.
func (d *Definition) Header() http.Header { return d.header }

// AcceptStatus returns the accepted status code set, defaulting to
// DefaultStatus.
func (d *Definition) AcceptStatus() StatusCodes {
	if len(d.accept) == 0 {
		return DefaultStatus
	}
	return d.accept
}

// ExpectContentType returns the expected response content type, or the
// empty string for no expectation.
func (d *Definition) ExpectContentType() string { return d.contentType }

// Timeout returns the per-call timeout, or zero for none.
func (d *Definition) Timeout() time.Duration { return d.timeout }

var (
	_ Endpoint            = (*Definition)(nil)
	_ StatusAcceptor      = (*Definition)(nil)
	_ ContentTypeExpecter = (*Definition)(nil)
	_ Timeouter           = (*Definition)(nil)
)
