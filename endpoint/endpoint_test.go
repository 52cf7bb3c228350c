// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, m := range Methods() {
			assert.True(t, m.Valid(), "method %s", m)
		}
		assert.True(t, Method("").Valid())
	})
	t.Run("invalid", func(t *testing.T) {
		assert.False(t, Method("get").Valid())
		assert.False(t, Method("TRACE").Valid())
		assert.False(t, Method("BOGUS").Valid())
	})
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "GET", Method("").String())
		assert.Equal(t, "GET", GET.String())
		assert.Equal(t, "POST", POST.String())
		assert.Equal(t, "PATCH", PATCH.String())
	})
}

func TestQueryItem(t *testing.T) {
	p := Param("page", "1")
	require.NotNil(t, p.Value)
	assert.Equal(t, "page", p.Name)
	assert.Equal(t, "1", *p.Value)

	empty := Param("q", "")
	require.NotNil(t, empty.Value)
	assert.Equal(t, "", *empty.Value)

	f := Flag("verbose")
	assert.Equal(t, "verbose", f.Name)
	assert.Nil(t, f.Value)
}

func TestStatusCodes(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		assert.True(t, DefaultStatus.Contains(200))
		assert.True(t, DefaultStatus.Contains(204))
		assert.True(t, DefaultStatus.Contains(299))
		assert.False(t, DefaultStatus.Contains(199))
		assert.False(t, DefaultStatus.Contains(300))
		assert.False(t, DefaultStatus.Contains(404))
	})
	t.Run("discrete", func(t *testing.T) {
		s := Status(200, 404)
		assert.True(t, s.Contains(200))
		assert.True(t, s.Contains(404))
		assert.False(t, s.Contains(201))
		assert.False(t, s.Contains(403))
	})
	t.Run("between", func(t *testing.T) {
		s := StatusBetween(500, 599)
		assert.True(t, s.Contains(500))
		assert.True(t, s.Contains(503))
		assert.True(t, s.Contains(599))
		assert.False(t, s.Contains(499))
		assert.False(t, s.Contains(600))
	})
	t.Run("mixed", func(t *testing.T) {
		s := append(StatusBetween(200, 299), StatusRange{Lo: 404, Hi: 404})
		assert.True(t, s.Contains(250))
		assert.True(t, s.Contains(404))
		assert.False(t, s.Contains(405))
	})
	t.Run("empty", func(t *testing.T) {
		assert.False(t, StatusCodes{}.Contains(200))
		assert.False(t, StatusCodes(nil).Contains(200))
	})
}

// bareEndpoint implements only the required Endpoint accessors, so the
// capability resolvers must fall back to their defaults.
type bareEndpoint struct{}

func (bareEndpoint) BaseURL() string     { return "https://api.example.com" }
func (bareEndpoint) Path() string        { return "/info" }
func (bareEndpoint) Query() []QueryItem  { return nil }
func (bareEndpoint) Method() Method      { return GET }
func (bareEndpoint) Body() []byte        { return nil }
func (bareEndpoint) Header() http.Header { return nil }

func TestCapabilityResolution(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		ep := bareEndpoint{}
		assert.Equal(t, DefaultStatus, AcceptStatus(ep))
		assert.Equal(t, "", ExpectContentType(ep))
		assert.Equal(t, time.Duration(0), Timeout(ep))
	})
	t.Run("specified", func(t *testing.T) {
		ep := Define("https://api.example.com", "/info", GET,
			WithAccept(Status(200, 404)),
			WithContentType("application/json"),
			WithTimeout(30*time.Second))
		assert.Equal(t, Status(200, 404), AcceptStatus(ep))
		assert.Equal(t, "application/json", ExpectContentType(ep))
		assert.Equal(t, 30*time.Second, Timeout(ep))
	})
	t.Run("empty accept falls back", func(t *testing.T) {
		ep := Define("https://api.example.com", "/info", GET,
			WithAccept(StatusCodes{}))
		assert.Equal(t, DefaultStatus, AcceptStatus(ep))
	})
}

func TestDefine(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		d := Define("https://api.example.com", "/info", GET)
		assert.Equal(t, "https://api.example.com", d.BaseURL())
		assert.Equal(t, "/info", d.Path())
		assert.Equal(t, GET, d.Method())
		assert.Nil(t, d.Query())
		assert.Nil(t, d.Body())
		assert.Nil(t, d.Header())
		assert.Equal(t, DefaultStatus, d.AcceptStatus())
		assert.Equal(t, "", d.ExpectContentType())
		assert.Equal(t, time.Duration(0), d.Timeout())
	})
	t.Run("options", func(t *testing.T) {
		d := Define("https://api.example.com", "/search", POST,
			WithQuery(Param("page", "1")),
			WithQuery(Flag("verbose"), Param("q", "go")),
			WithBody([]byte(`{"x":1}`)),
			WithHeader("Authorization", "Bearer token"),
			WithHeader("X-Custom", "a"),
			WithHeader("X-Custom", "b"),
			WithAccept(StatusBetween(200, 204)),
			WithContentType("application/json"),
			WithTimeout(time.Minute))
		assert.Equal(t, []QueryItem{Param("page", "1"), Flag("verbose"), Param("q", "go")}, d.Query())
		assert.Equal(t, []byte(`{"x":1}`), d.Body())
		assert.Equal(t, "Bearer token", d.Header().Get("Authorization"))
		assert.Equal(t, "b", d.Header().Get("X-Custom"), "WithHeader replaces")
		assert.Equal(t, StatusBetween(200, 204), d.AcceptStatus())
		assert.Equal(t, "application/json", d.ExpectContentType())
		assert.Equal(t, time.Minute, d.Timeout())
	})
}
