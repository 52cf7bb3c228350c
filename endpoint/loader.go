// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package endpoint

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// fileEndpoint is the on-disk shape of one named endpoint definition.
type fileEndpoint struct {
	BaseURL     string            `mapstructure:"base_url"`
	Path        string            `mapstructure:"path"`
	Method      string            `mapstructure:"method"`
	Headers     map[string]string `mapstructure:"headers"`
	Query       []string          `mapstructure:"query"`
	Body        string            `mapstructure:"body"`
	Accept      []string          `mapstructure:"accept"`
	ContentType string            `mapstructure:"content_type"`
	Timeout     string            `mapstructure:"timeout"`
}

// LoadFile reads named endpoint definitions from a configuration file
// (YAML, JSON, or TOML, chosen by file extension). The file must
// contain an "endpoints" table mapping names to definitions:
//
//	endpoints:
//	  info:
//	    base_url: https://api.example.com
//	    path: /info
//	    method: GET
//	    query:
//	      - page=1
//	      - verbose
//	    accept: ["200-299"]
//	    content_type: application/json
//	    timeout: 30s
//
// Query items are "name=value" or bare "name" strings; declaration
// order is preserved. Accept entries are single codes ("404") or
// inclusive ranges ("200-299"). Timeout uses Go duration syntax.
func LoadFile(path string) (map[string]*Definition, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("endpoint: read %s: %w", path, err)
	}

	var raw map[string]fileEndpoint
	if err := v.UnmarshalKey("endpoints", &raw); err != nil {
		return nil, fmt.Errorf("endpoint: unmarshal %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("endpoint: %s defines no endpoints", path)
	}

	defs := make(map[string]*Definition, len(raw))
	for name, fe := range raw {
		d, err := fe.definition()
		if err != nil {
			return nil, fmt.Errorf("endpoint: %s: endpoint %q: %w", path, name, err)
		}
		defs[name] = d
	}
	return defs, nil
}

func (fe fileEndpoint) definition() (*Definition, error) {
	method := Method(strings.ToUpper(fe.Method))
	if !method.Valid() {
		return nil, fmt.Errorf("invalid method %q", fe.Method)
	}

	var opts []Option
	for _, q := range fe.Query {
		name, value, found := strings.Cut(q, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid query item %q", q)
		}
		if found {
			opts = append(opts, WithQuery(Param(name, value)))
		} else {
			opts = append(opts, WithQuery(Flag(name)))
		}
	}
	for name, value := range fe.Headers {
		opts = append(opts, WithHeader(name, value))
	}
	if fe.Body != "" {
		opts = append(opts, WithBody([]byte(fe.Body)))
	}
	if len(fe.Accept) > 0 {
		accept, err := parseAccept(fe.Accept)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithAccept(accept))
	}
	if fe.ContentType != "" {
		opts = append(opts, WithContentType(fe.ContentType))
	}
	if fe.Timeout != "" {
		timeout, err := time.ParseDuration(fe.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", fe.Timeout, err)
		}
		opts = append(opts, WithTimeout(timeout))
	}

	return Define(fe.BaseURL, fe.Path, method, opts...), nil
}

func parseAccept(entries []string) (StatusCodes, error) {
	var s StatusCodes
	for _, entry := range entries {
		lo, hi, isRange := strings.Cut(entry, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid accept entry %q", entry)
		}
		to := from
		if isRange {
			to, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil || to < from {
				return nil, fmt.Errorf("invalid accept entry %q", entry)
			}
		}
		s = append(s, StatusRange{Lo: from, Hi: to})
	}
	return s, nil
}
