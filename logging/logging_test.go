// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/apix"
	"github.com/gogama/apix/endpoint"
)

func TestNewHandler(t *testing.T) {
	assert.PanicsWithValue(t, "logging: nil logger", func() {
		NewHandler(nil)
	})
}

func TestHandler(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(404)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	handlers := &apix.HandlerGroup{}
	Install(handlers, &logger)
	cl := &apix.Client{Handlers: handlers}

	t.Run("success", func(t *testing.T) {
		buf.Reset()
		_, err := cl.Fetch(context.Background(), endpoint.Define(server.URL, "/info", endpoint.GET))
		require.NoError(t, err)

		lines := logLines(t, &buf)
		require.Len(t, lines, 2)
		assert.Equal(t, "debug", lines[0]["level"])
		assert.Equal(t, "sending request", lines[0]["message"])
		assert.Equal(t, "GET", lines[0]["method"])
		assert.Equal(t, server.URL+"/info", lines[0]["url"])
		assert.NotEmpty(t, lines[0]["id"])

		assert.Equal(t, "info", lines[1]["level"])
		assert.Equal(t, "request succeeded", lines[1]["message"])
		assert.Equal(t, float64(200), lines[1]["status"])
		assert.Equal(t, "Bytes", lines[1]["outcome"])
		assert.Equal(t, lines[0]["id"], lines[1]["id"], "both lines carry the same call ID")
	})

	t.Run("failure", func(t *testing.T) {
		buf.Reset()
		_, err := cl.Fetch(context.Background(), endpoint.Define(server.URL, "/missing", endpoint.GET))
		require.Error(t, err)

		lines := logLines(t, &buf)
		require.Len(t, lines, 2)
		assert.Equal(t, "error", lines[1]["level"])
		assert.Equal(t, "request failed", lines[1]["message"])
		assert.Equal(t, float64(404), lines[1]["status"])
		assert.Contains(t, lines[1]["error"], "status code 404")
	})
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var line map[string]interface{}
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}
