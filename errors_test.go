// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apix

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogama/apix/request"
)

func TestStatusError(t *testing.T) {
	outcome := request.BytesOutcome([]byte("not found"))
	err := &StatusError{Code: 404, Outcome: outcome}
	assert.EqualError(t, err, "apix: status code 404 not accepted")
	assert.True(t, IsStatusError(err))
	assert.True(t, IsStatusError(fmt.Errorf("call failed: %w", err)))
	assert.False(t, IsStatusError(errors.New("other")))
	assert.False(t, IsStatusError(nil))
	assert.Same(t, outcome, errOutcome(err))
}

func TestContentTypeError(t *testing.T) {
	err := &ContentTypeError{Type: "text/html"}
	assert.EqualError(t, err, `apix: unexpected response content type "text/html"`)
	assert.True(t, IsContentTypeError(err))
	assert.True(t, IsContentTypeError(fmt.Errorf("call failed: %w", err)))
	assert.False(t, IsContentTypeError(errors.New("other")))
	assert.False(t, IsStatusError(err))
	assert.Nil(t, errOutcome(err), "only status failures expose the payload")
}

func TestDataError(t *testing.T) {
	err := &DataError{Op: "download"}
	assert.EqualError(t, err, "apix: download: transport reported success but returned no usable data")
	assert.True(t, IsDataError(err))
	assert.True(t, IsDataError(fmt.Errorf("call failed: %w", err)))
	assert.False(t, IsDataError(errors.New("other")))
	assert.Nil(t, errOutcome(err))
}
