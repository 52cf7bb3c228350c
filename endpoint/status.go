// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

// A StatusRange is an inclusive range of HTTP status codes.
type StatusRange struct {
	Lo, Hi int
}

// StatusCodes is a set of acceptable HTTP response status codes,
// expressed as a list of inclusive ranges.
type StatusCodes []StatusRange

// DefaultStatus is the accepted status code set used when an Endpoint
// does not specify its own: every code from 200 through 299.
var DefaultStatus = StatusBetween(200, 299)

// Status constructs a StatusCodes set containing exactly the given
// codes.
func Status(codes ...int) StatusCodes {
	s := make(StatusCodes, len(codes))
	for i, c := range codes {
		s[i] = StatusRange{Lo: c, Hi: c}
	}
	return s
}

// StatusBetween constructs a StatusCodes set containing every code
// from lo through hi, inclusive.
func StatusBetween(lo, hi int) StatusCodes {
	return StatusCodes{{Lo: lo, Hi: hi}}
}

// Contains reports whether the set contains code.
func (s StatusCodes) Contains(code int) bool {
	for _, r := range s {
		if r.Lo <= code && code <= r.Hi {
			return true
		}
	}
	return false
}
