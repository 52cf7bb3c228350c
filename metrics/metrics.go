// Copyright 2024 The apix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics provides an apix event handler that records the call
// lifecycle as Prometheus metrics: request counts and durations
// labeled by method, host, and status code, plus in-flight gauges and
// an error counter bucketed by error kind.
//
//	handlers := &apix.HandlerGroup{}
//	metrics.Install(handlers, metrics.NewHandler())
//	client := &apix.Client{Handlers: handlers}
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogama/apix"
	"github.com/gogama/apix/request"
	"github.com/gogama/apix/transient"
)

// A Handler records apix call lifecycle events as Prometheus metrics.
// It is safe for concurrent use.
type Handler struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
}

// NewHandler creates a metrics handler registered on the default
// Prometheus registerer.
func NewHandler() *Handler {
	return NewHandlerWithRegistry(prometheus.DefaultRegisterer)
}

// NewHandlerWithRegistry creates a metrics handler registered on the
// supplied registerer.
func NewHandlerWithRegistry(registry prometheus.Registerer) *Handler {
	return &Handler{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "apix_requests_total",
				Help: "Total number of endpoint calls dispatched",
			},
			[]string{"method", "host", "status"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "apix_request_duration_seconds",
				Help:    "Duration of endpoint calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "host", "status"},
		),
		inFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "apix_requests_in_flight",
				Help: "Number of endpoint calls currently in flight",
			},
			[]string{"method", "host"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "apix_errors_total",
				Help: "Total number of endpoint call failures by kind",
			},
			[]string{"method", "host", "kind"},
		),
	}
}

// Install registers a metrics handler on every apix event in g.
func Install(g *apix.HandlerGroup, h *Handler) {
	for _, evt := range apix.Events() {
		g.PushBack(evt, h)
	}
}

// Handle implements apix.Handler.
func (h *Handler) Handle(evt apix.Event, e *request.Execution) {
	method := e.Request.Method.String()
	host := e.Request.URL.Host
	switch evt {
	case apix.BeforeSend:
		h.inFlight.WithLabelValues(method, host).Inc()
	case apix.AfterSuccess:
		h.inFlight.WithLabelValues(method, host).Dec()
		status := strconv.Itoa(e.StatusCode())
		h.requestsTotal.WithLabelValues(method, host, status).Inc()
		h.requestDuration.WithLabelValues(method, host, status).Observe(e.Duration().Seconds())
	case apix.AfterError:
		h.inFlight.WithLabelValues(method, host).Dec()
		status := strconv.Itoa(e.StatusCode())
		h.requestsTotal.WithLabelValues(method, host, status).Inc()
		h.requestDuration.WithLabelValues(method, host, status).Observe(e.Duration().Seconds())
		h.errorsTotal.WithLabelValues(method, host, errorKind(e.Err)).Inc()
	}
}

// errorKind buckets a call failure for the errors_total metric.
func errorKind(err error) string {
	switch {
	case apix.IsStatusError(err):
		return "status"
	case apix.IsContentTypeError(err):
		return "content_type"
	case apix.IsDataError(err):
		return "missing_data"
	case transient.Categorize(err) == transient.Timeout:
		return "timeout"
	default:
		return "transport"
	}
}

var _ apix.Handler = (*Handler)(nil)
