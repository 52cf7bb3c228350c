// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

// A Method is an HTTP request method supported by apix endpoints.
type Method string

// The methods an Endpoint may declare. The empty method is treated as
// GET throughout the library.
const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	DELETE Method = "DELETE"
	HEAD   Method = "HEAD"
	PATCH  Method = "PATCH"
)

// Methods returns all methods an Endpoint may declare.
func Methods() []Method {
	return []Method{GET, POST, PUT, DELETE, HEAD, PATCH}
}

// Valid reports whether m is one of the supported methods. The empty
// method is valid and means GET.
func (m Method) Valid() bool {
	switch m {
	case "", GET, POST, PUT, DELETE, HEAD, PATCH:
		return true
	default:
		return false
	}
}

// String returns the method name. The empty method prints as GET.
func (m Method) String() string {
	if m == "" {
		return string(GET)
	}
	return string(m)
}
