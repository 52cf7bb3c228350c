// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecution_StatusCode(t *testing.T) {
	e := &Execution{}
	assert.Equal(t, 0, e.StatusCode())
	e.Response = &http.Response{StatusCode: 203}
	assert.Equal(t, 203, e.StatusCode())
}

func TestExecution_Header(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.Header())
	assert.Empty(t, e.Header().Get("Content-Type"))
	e.Response = &http.Response{Header: http.Header{"Content-Type": []string{"text/plain"}}}
	assert.Equal(t, "text/plain", e.Header().Get("Content-Type"))
}

func TestExecution_Duration(t *testing.T) {
	e := &Execution{}
	assert.False(t, e.Started())
	assert.False(t, e.Ended())
	assert.Equal(t, time.Duration(0), e.Duration())

	e.Start = time.Now().Add(-time.Second)
	assert.True(t, e.Started())
	assert.False(t, e.Ended())
	assert.Greater(t, e.Duration(), time.Duration(0))

	e.End = e.Start.Add(250 * time.Millisecond)
	assert.True(t, e.Ended())
	assert.Equal(t, 250*time.Millisecond, e.Duration())
}

func TestExecution_Timeout(t *testing.T) {
	e := &Execution{}
	assert.False(t, e.Timeout())
	e.Err = context.DeadlineExceeded
	assert.True(t, e.Timeout())
	e.Err = context.Canceled
	assert.False(t, e.Timeout())
}

func TestExecution_Value(t *testing.T) {
	type key struct{}
	e := &Execution{}
	assert.Nil(t, e.Value(key{}))
	e.SetValue(key{}, "first")
	assert.Equal(t, "first", e.Value(key{}))
	e.SetValue(key{}, "second")
	assert.Equal(t, "second", e.Value(key{}))
	assert.Nil(t, e.Value("other"))
}
