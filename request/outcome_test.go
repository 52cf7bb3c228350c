// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.Len(t, kindNames, numKinds)
	assert.Equal(t, "Bytes", KindBytes.Name())
	assert.Equal(t, "File", KindFile.Name())
	assert.Equal(t, "Stream", KindStream.Name())
	assert.Equal(t, "Stream", KindStream.String())
}

func TestOutcome(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		o := BytesOutcome([]byte("payload"))
		assert.Equal(t, KindBytes, o.Kind)
		assert.Equal(t, []byte("payload"), o.Bytes)
		assert.NoError(t, o.Close())
	})
	t.Run("file", func(t *testing.T) {
		o := FileOutcome("/tmp/payload.bin")
		assert.Equal(t, KindFile, o.Kind)
		assert.Equal(t, "/tmp/payload.bin", o.File)
		assert.NoError(t, o.Close())
	})
	t.Run("stream", func(t *testing.T) {
		rc := &closeTracker{ReadCloser: io.NopCloser(strings.NewReader("payload"))}
		o := StreamOutcome(rc)
		assert.Equal(t, KindStream, o.Kind)
		b, err := io.ReadAll(o.Stream)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(b))
		assert.NoError(t, o.Close())
		assert.True(t, rc.closed)
	})
	t.Run("nil safe", func(t *testing.T) {
		var o *Outcome
		assert.NoError(t, o.Close())
	})
}

type closeTracker struct {
	io.ReadCloser
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return c.ReadCloser.Close()
}
