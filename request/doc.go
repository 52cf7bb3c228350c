// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the value types which flow through an apix
endpoint call: the composed transport-level Request, the tagged result
Outcome, and the per-call Execution state passed to event handlers.

Compose is the pure composition step turning an endpoint descriptor
into a Request. It performs URL assembly, query encoding, and header
filtering only; it never touches the transport:

	req, err := request.Compose(ep)
	if err != nil {
		var addrErr *request.AddressError
		if errors.As(err, &addrErr) {
			// the endpoint's base address is malformed
		}
	}

Requests are usually composed and dispatched for you by the apix
client; use Compose directly when you need to inspect or test what
would be sent.
*/
package request
