// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport errors from endpoint calls
// as transient or non-transient. The apix library uses it to answer
// Execution.Timeout() and to decide whether an interrupted download is
// worth resuming; applications can use it to bucket error metrics or
// drive their own retry logic.
//
// The package depends only on the standard library, so it carries no
// extra weight when imported on its own.
package transient
