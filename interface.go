// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"context"

	"github.com/gogama/apix/endpoint"
	"github.com/gogama/apix/request"
)

// Fetcher is the interface that wraps the basic Fetch method.
//
// Fetch dispatches an endpoint descriptor and returns the final
// execution state (and error, if any) with the response body buffered
// into a bytes outcome. Client implements the Fetcher interface, and
// any other Fetcher implementation must behave substantially the same
// as Client.Fetch.
type Fetcher interface {
	Fetch(ctx context.Context, ep endpoint.Endpoint) (*request.Execution, error)
}

// Downloader is the interface that wraps the basic Download method.
//
// Download dispatches an endpoint descriptor and saves the response
// body to a file, returning a file outcome naming its location.
type Downloader interface {
	Download(ctx context.Context, ep endpoint.Endpoint, path string) (*request.Execution, error)
}

// Streamer is the interface that wraps the basic Stream method.
//
// Stream dispatches an endpoint descriptor and returns the response
// body as an open byte stream outcome owned by the caller.
type Streamer interface {
	Stream(ctx context.Context, ep endpoint.Endpoint) (*request.Execution, error)
}

// Uploader is the interface that groups the basic Upload and
// UploadFile methods.
//
// Upload dispatches an endpoint descriptor with its body replaced by
// an in-memory payload; UploadFile replaces it with the contents of a
// file. Both buffer the response like Fetch.
type Uploader interface {
	Upload(ctx context.Context, ep endpoint.Endpoint, body interface{}) (*request.Execution, error)
	UploadFile(ctx context.Context, ep endpoint.Endpoint, path string) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic
// CloseIdleConnections method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes connections which were opened by previous calls but are now
// sitting idle in a "keep-alive" state, without interrupting any
// connections currently in use. If the underlying implementation does
// not support this ability, CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Caller is the interface that groups every call shape the apix client
// supports: Fetch, Download, Stream, Upload, UploadFile, and
// CloseIdleConnections.
type Caller interface {
	Fetcher
	Downloader
	Streamer
	Uploader
	IdleCloser
}

var _ Caller = (*Client)(nil)
