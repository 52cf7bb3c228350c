// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"

	"github.com/gogama/apix/endpoint"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

// reservedHeaders are transport-managed header names which are dropped
// from composed requests so the endpoint cannot conflict with values
// the transport sets itself. Names are in canonical form.
var reservedHeaders = map[string]struct{}{
	"Content-Length":      {},
	"Connection":          {},
	"Host":                {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Www-Authenticate":    {},
}

// DefaultContentType is the Content-Type set on a composed request
// which has a body but no Content-Type header of its own.
const DefaultContentType = "application/json"

// An AddressError reports that an endpoint's base address, or the full
// address assembled from it, is malformed. Composition fails with an
// AddressError before any transport activity occurs.
type AddressError struct {
	// Address is the offending address.
	Address string
	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *AddressError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("apix/request: malformed address %q: %v", e.Address, e.Err)
	}
	return fmt.Sprintf("apix/request: malformed address %q", e.Address)
}

// Unwrap returns the underlying parse error, if any.
func (e *AddressError) Unwrap() error {
	return e.Err
}

// A Request is the transport-level request composed from an Endpoint.
// It is created once per call by Compose, may be adjusted by the
// client's request modifier, and is discarded after dispatch.
//
// The field structure mirrors the lower-level http.Request with the
// stream-oriented and server-only fields removed: the body is always
// pre-buffered, and the timeout rides along so the client can hand it
// to the transport.
type Request struct {
	// Method is the HTTP method. It is never empty after composition.
	Method endpoint.Method

	// URL is the fully assembled absolute request URL.
	URL *urlpkg.URL

	// Header contains the request headers to send. Reserved
	// transport-managed names never appear here.
	Header http.Header

	// Body is the pre-buffered request body, or nil for no body.
	Body []byte

	// Timeout is the per-call timeout the transport should enforce, or
	// zero for none.
	Timeout time.Duration
}

// Compose turns an endpoint descriptor into a transport-level Request.
//
// Compose parses the base address, appends the path, attaches the
// percent-encoded query items in order, and fails with *AddressError
// if the base address does not parse or the assembled address is not
// absolute. Headers whose names belong to the reserved transport set,
// and headers which are not valid HTTP field names or values, are
// silently dropped; all other headers, including Authorization, pass
// through verbatim. A request with a body and no Content-Type header
// gets DefaultContentType.
//
// Compose is deterministic and has no side effects. It never touches
// the transport.
func Compose(ep endpoint.Endpoint) (*Request, error) {
	method := ep.Method()
	if !method.Valid() {
		return nil, fmt.Errorf("apix/request: invalid method %q", string(method))
	}
	if method == "" {
		method = endpoint.GET
	}

	base := ep.BaseURL()
	u, err := urlpkg.Parse(base)
	if err != nil {
		return nil, &AddressError{Address: base, Err: err}
	}
	// The path joins onto the parsed structure, never the raw string,
	// so a base address carrying its own query keeps it intact.
	if path := ep.Path(); path != "" {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	}
	if q := encodeQuery(ep.Query()); q != "" {
		if u.RawQuery != "" {
			u.RawQuery += "&" + q
		} else {
			u.RawQuery = q
		}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &AddressError{Address: u.String()}
	}

	header := make(http.Header)
	for name, values := range ep.Header() {
		if !passHeader(name, values) {
			continue
		}
		for _, v := range values {
			header.Add(name, v)
		}
	}

	body := ep.Body()
	if len(body) > 0 && header.Get("Content-Type") == "" {
		header.Set("Content-Type", DefaultContentType)
	}

	return &Request{
		Method:  method,
		URL:     u,
		Header:  header,
		Body:    body,
		Timeout: endpoint.Timeout(ep),
	}, nil
}

// ToHTTP creates the lower-level HTTP request corresponding to r. The
// context of the new request is set to ctx, which may not be nil.
func (r *Request) ToHTTP(ctx context.Context) *http.Request {
	hr := template.WithContext(ctx)
	hr.Method = r.Method.String()
	hr.URL = r.URL
	hr.Header = r.Header
	hr.Host = r.URL.Host
	if len(r.Body) > 0 {
		hr.Body = io.NopCloser(bytes.NewReader(r.Body))
		hr.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(r.Body)), nil
		}
		hr.ContentLength = int64(len(r.Body))
	}
	return hr
}

// encodeQuery renders query items in order, percent-encoding names and
// values. Valueless items render as a bare name.
func encodeQuery(items []endpoint.QueryItem) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(urlpkg.QueryEscape(item.Name))
		if item.Value != nil {
			b.WriteByte('=')
			b.WriteString(urlpkg.QueryEscape(*item.Value))
		}
	}
	return b.String()
}

// passHeader reports whether a header survives composition: its name
// must be outside the reserved set and both name and values must be
// valid HTTP field text.
func passHeader(name string, values []string) bool {
	if _, reserved := reservedHeaders[http.CanonicalHeaderKey(name)]; reserved {
		return false
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return false
	}
	for _, v := range values {
		if !httpguts.ValidHeaderFieldValue(v) {
			return false
		}
	}
	return true
}
