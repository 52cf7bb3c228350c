// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package apix is a thin typed layer over a standard HTTP client. It
lets applications define API endpoints declaratively (package
endpoint) and dispatch them without writing repetitive
request-construction, validation, and error-handling code.

Describe a call with an endpoint descriptor, then make it:

	info := endpoint.Define("https://api.example.com", "/info", endpoint.GET,
		endpoint.WithContentType("application/json"),
	)
	client := &apix.Client{}
	e, err := client.Fetch(ctx, info)
	...
	e.Outcome.Bytes // the buffered response body

Every call runs the same pipeline: the descriptor is composed into a
transport-level request (package request), dispatched through the
configured HTTPDoer, and validated against the descriptor's accepted
status codes and expected content type. Failures surface as typed
errors (StatusError, ContentTypeError, DataError) carrying the status
code, response metadata, and rejected payload; the client never
retries, logs, or suppresses anything itself.

For control over how requests are sent on the wire, supply a custom
HTTPDoer. For example, use a Go standard HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &apix.Client{
		HTTPDoer: doer,
	}

To adjust every outgoing request, for example to inject an
authorization header, install a request modifier:

	client := &apix.Client{
		Modifier: func(ctx context.Context, req *request.Request) error {
			req.Header.Set("Authorization", "Bearer "+token(ctx))
			return nil
		},
	}

To hook into the call lifecycle, install handlers into a handler
group; subpackages logging and metrics provide ready-made handlers
backed by zerolog and Prometheus:

	handlers := &apix.HandlerGroup{}
	handlers.PushBack(apix.BeforeSend, apix.HandlerFunc(
		func(_ apix.Event, e *request.Execution) {
			log.Printf("[%s] %s %s", e.ID, e.Request.Method, e.Request.URL)
		}),
	)
	client := &apix.Client{
		Handlers: handlers,
	}

Beyond Fetch, the client can save a response directly to a file
(Download), hand back the open response stream (Stream), and send
in-memory or on-disk payloads (Upload, UploadFile). Package download
adds resumable background downloads with progress reporting and
cancel/resume support.
*/
package apix
