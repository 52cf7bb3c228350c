// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gogama/apix/request"
)

// A StatusError reports a response whose status code lies outside the
// endpoint's accepted set. It carries the exact numeric code, the
// response metadata, and the result payload so callers can build their
// own retry or diagnostic logic.
type StatusError struct {
	// Code is the status code the transport actually returned.
	Code int
	// Response is the HTTP response the code came from.
	Response *http.Response
	// Outcome is the result payload produced before validation
	// rejected the response.
	Outcome *request.Outcome
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("apix: status code %d not accepted", e.Code)
}

// A ContentTypeError reports a response whose Content-Type does not
// exactly equal the type the endpoint expects. It carries the observed
// type, the response metadata, and the result payload.
type ContentTypeError struct {
	// Type is the content type the transport actually returned.
	Type string
	// Response is the HTTP response the type came from.
	Response *http.Response
	// Outcome is the result payload produced before validation
	// rejected the response.
	Outcome *request.Outcome
}

// Error implements the error interface.
func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("apix: unexpected response content type %q", e.Type)
}

// A DataError reports that the transport signaled success but omitted
// data the contract requires, for example a download that completed
// without producing a usable file. It is a defensive guard against a
// misbehaving transport, not a recoverable condition.
type DataError struct {
	// Op names the operation that was missing data.
	Op string
}

// Error implements the error interface.
func (e *DataError) Error() string {
	return fmt.Sprintf("apix: %s: transport reported success but returned no usable data", e.Op)
}

// IsStatusError reports whether err is, or wraps, a *StatusError.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// IsContentTypeError reports whether err is, or wraps, a
// *ContentTypeError.
func IsContentTypeError(err error) bool {
	var cte *ContentTypeError
	return errors.As(err, &cte)
}

// IsDataError reports whether err is, or wraps, a *DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// errOutcome extracts the payload AfterError handlers may see: the
// rejected payload for a status code failure, nil for everything else.
func errOutcome(err error) *request.Outcome {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Outcome
	}
	return nil
}
