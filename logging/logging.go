// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging provides an apix event handler that logs the call
// lifecycle with zerolog. The apix client itself never logs; install
// this handler to get structured request/response logging as a
// plug-in:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	handlers := &apix.HandlerGroup{}
//	logging.Install(handlers, &logger)
//	client := &apix.Client{Handlers: handlers}
package logging

import (
	"github.com/rs/zerolog"

	"github.com/gogama/apix"
	"github.com/gogama/apix/request"
)

// A Handler logs apix call lifecycle events. Outgoing requests log at
// debug level, validated responses at info, and failures at error,
// each tagged with the execution ID for correlation.
type Handler struct {
	log *zerolog.Logger
}

// NewHandler creates a logging handler writing to logger.
func NewHandler(logger *zerolog.Logger) *Handler {
	if logger == nil {
		panic("logging: nil logger")
	}
	return &Handler{log: logger}
}

// Install registers a logging handler on every apix event in g.
func Install(g *apix.HandlerGroup, logger *zerolog.Logger) {
	h := NewHandler(logger)
	for _, evt := range apix.Events() {
		g.PushBack(evt, h)
	}
}

// Handle implements apix.Handler.
func (h *Handler) Handle(evt apix.Event, e *request.Execution) {
	switch evt {
	case apix.BeforeSend:
		h.log.Debug().
			Str("id", e.ID).
			Str("method", e.Request.Method.String()).
			Str("url", e.Request.URL.String()).
			Msg("sending request")
	case apix.AfterSuccess:
		h.log.Info().
			Str("id", e.ID).
			Str("method", e.Request.Method.String()).
			Str("url", e.Request.URL.String()).
			Int("status", e.StatusCode()).
			Str("outcome", e.Outcome.Kind.String()).
			Dur("duration", e.Duration()).
			Msg("request succeeded")
	case apix.AfterError:
		h.log.Error().
			Str("id", e.ID).
			Str("method", e.Request.Method.String()).
			Str("url", e.Request.URL.String()).
			Int("status", e.StatusCode()).
			Dur("duration", e.Duration()).
			Err(e.Err).
			Msg("request failed")
	}
}

var _ apix.Handler = (*Handler)(nil)
