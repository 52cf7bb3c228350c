// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "io"

// A Kind identifies which of the three result shapes an Outcome
// carries.
type Kind int

const (
	// KindBytes identifies an outcome whose payload is a fully
	// buffered response body.
	KindBytes Kind = iota
	// KindFile identifies an outcome whose payload was saved to a
	// file, identified by its path.
	KindFile
	// KindStream identifies an outcome whose payload is an open byte
	// stream. The caller owns the stream and must close it.
	KindStream

	kindSentinel

	numKinds = int(kindSentinel)
)

var kindNames = []string{
	"Bytes",
	"File",
	"Stream",
}

// Name returns the name of the outcome kind.
func (k Kind) Name() string {
	return kindNames[int(k)]
}

// String returns the name of the outcome kind.
func (k Kind) String() string {
	return k.Name()
}

// An Outcome is the successful result shape of one dispatched call:
// raw bytes, a saved file location, or an open byte stream, depending
// on which client operation produced it. Exactly one payload field is
// meaningful, selected by Kind.
//
// An Outcome is produced once per call and never mutated. On
// validation failure the same Outcome travels inside the typed error
// so callers can inspect the rejected payload.
type Outcome struct {
	// Kind selects the payload field.
	Kind Kind
	// Bytes is the buffered response body (KindBytes).
	Bytes []byte
	// File is the path the response body was saved to (KindFile).
	File string
	// Stream is the open response body (KindStream). The caller must
	// close it.
	Stream io.ReadCloser
}

// BytesOutcome returns an Outcome carrying a buffered response body.
func BytesOutcome(b []byte) *Outcome {
	return &Outcome{Kind: KindBytes, Bytes: b}
}

// FileOutcome returns an Outcome carrying a saved file location.
func FileOutcome(path string) *Outcome {
	return &Outcome{Kind: KindFile, File: path}
}

// StreamOutcome returns an Outcome carrying an open byte stream.
func StreamOutcome(rc io.ReadCloser) *Outcome {
	return &Outcome{Kind: KindStream, Stream: rc}
}

// Close closes the stream payload, if any. It is a no-op for the other
// outcome kinds, so it is always safe to defer.
func (o *Outcome) Close() error {
	if o != nil && o.Kind == KindStream && o.Stream != nil {
		return o.Stream.Close()
	}
	return nil
}
