// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to observe the fixed
// points of the call lifecycle.
type Event int

const (
	// BeforeSend identifies the event that occurs after a request has
	// been composed (and adjusted by the request modifier, if any) and
	// is about to be handed to the transport.
	//
	// When Client fires BeforeSend, the execution's Request field is
	// set to the final request that WILL BE sent. Handlers observe the
	// request; they must not alter it. A handler may perform its own
	// I/O, for example logging.
	BeforeSend Event = iota
	// AfterSuccess identifies the event that occurs after a response
	// has passed validation.
	//
	// When Client fires AfterSuccess, the execution's Response and
	// Outcome fields are both non-nil and Err is nil.
	AfterSuccess
	// AfterError identifies the event that occurs after a call has
	// failed, whether from a transport error or a validation failure.
	//
	// When Client fires AfterError, the execution's Err field is set.
	// The Outcome field carries the rejected payload only when the
	// error is an invalid status code; for every other error kind it
	// is nil.
	//
	// Errors which occur before a request exists to send, namely
	// composition and request modifier failures, do not fire
	// AfterError (or any other event): the lifecycle observes
	// transport activity, and nothing was sent.
	AfterError
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeSend",
	"AfterSuccess",
	"AfterError",
}

// Events returns a slice containing all events which can occur during
// an endpoint call, in the order in which they would occur. At most
// one of AfterSuccess and AfterError fires per call.
func Events() []Event {
	return []Event{
		BeforeSend,
		AfterSuccess,
		AfterError,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
