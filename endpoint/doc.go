// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package endpoint defines the descriptor contract consumed by the apix
client: the Endpoint interface, its optional capability interfaces
(StatusAcceptor, ContentTypeExpecter, Timeouter), and the supporting
value types Method, QueryItem, and StatusCodes.

Most applications do not need to implement Endpoint by hand. Construct
a ready-made Definition with Define:

	info := endpoint.Define("https://api.example.com", "/info", endpoint.GET,
		endpoint.WithQuery(endpoint.Param("page", "1")),
		endpoint.WithContentType("application/json"),
		endpoint.WithTimeout(30*time.Second),
	)

or load a set of named definitions from a configuration file with
LoadFile. Implementing the interface directly is useful when endpoint
shapes are derived from existing application types.
*/
package endpoint
