// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// The category Not means a fresh call after this error is very
// unlikely to succeed. Every other category means the error came from
// a condition which may clear on its own, so a fresh call (or, for an
// interrupted download, a resume) has some prospect of success.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates the call ran out of time, whether from a
	// per-endpoint timeout, the caller's context deadline, or a
	// transport-level timeout.
	//
	// Categorize returns Timeout if the error, or any of its wrapped
	// causes, has a Timeout() method reporting true, or is
	// context.DeadlineExceeded.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (POSIX ECONNREFUSED). This commonly happens while the remote
	// service is starting or restarting and is therefore treated as
	// transient.
	ConnRefused
	// ConnReset indicates the remote host reset an established TCP
	// connection (POSIX ECONNRESET), typical of a service or load
	// balancer going down mid-response.
	ConnReset
)

// Categorize returns the transience category of err, looking through
// wrapped causes. A nil error, and any error without a recognized
// transient cause, categorize as Not.
//
// Categorize deliberately ignores the Temporary() convention, whose
// semantics are not consistent across the standard library.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var t hasTimeout
	if errors.As(err, &t) && t.Timeout() {
		return Timeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
