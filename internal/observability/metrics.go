// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package observability

import (
	"net/http/httptest"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the gateway's Prometheus registry, exposed in text
// exposition format at GET /debug/metrics.
type Metrics struct {
	registry           *prometheus.Registry
	requestsTotal      *prometheus.CounterVec
	streamSegments     prometheus.Counter
	toolCallsTotal     *prometheus.CounterVec
	generationDuration prometheus.Histogram
}

// NewMetrics builds a fresh registry with the gateway's counters and
// histograms registered against it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total requests served, by route and method.",
		}, []string{"route", "method"}),
		streamSegments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gateway_stream_segments_total",
			Help: "Total streamed segments emitted across all streaming responses.",
		}),
		toolCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_tool_calls_total",
			Help: "Total tool dispatches, by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		generationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gateway_generation_duration_seconds",
			Help:    "Latency of calls into the Generator backend.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.requestsTotal, m.streamSegments, m.toolCallsTotal, m.generationDuration)
	return m
}

// ObserveRequest increments the per-route request counter.
func (m *Metrics) ObserveRequest(route, method string) {
	m.requestsTotal.WithLabelValues(route, method).Inc()
}

// ObserveStreamSegment increments the streamed-segment counter by one.
func (m *Metrics) ObserveStreamSegment() {
	m.streamSegments.Inc()
}

// ObserveToolCall increments the tool-call counter for tool, tagged
// with outcome ("ok" or "error").
func (m *Metrics) ObserveToolCall(tool, outcome string) {
	m.toolCallsTotal.WithLabelValues(tool, outcome).Inc()
}

// ObserveGeneration records how long a Generator call took.
func (m *Metrics) ObserveGeneration(d time.Duration) {
	m.generationDuration.Observe(d.Seconds())
}

// Expose renders the registry in Prometheus text exposition format by
// driving promhttp's handler against an in-memory recorder, the same
// handler a production deployment would mount under net/http — this
// gateway just captures its output instead of serving it directly,
// since the connection layer is hand-rolled rather than net/http.
func (m *Metrics) Expose() ([]byte, string, error) {
	handler := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	req := httptest.NewRequest("GET", "/debug/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Body.Bytes(), rec.Header().Get("Content-Type"), nil
}
