// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"context"
	"encoding/json"

	"github.com/AleutianAI/aigateway/internal/httpserver"
	"github.com/AleutianAI/aigateway/internal/wireproto"
)

// debugHealthResponse is the GET /debug/health body: enough for
// cmd/gatewayctl to render a live status line without scraping metrics.
type debugHealthResponse struct {
	Status    string `json:"status"`
	Model     string `json:"model"`
	Available bool   `json:"available"`
}

// handleDebugHealth answers GET /debug/health, reporting whether the
// underlying generator backend currently reports itself available.
func (h *Handlers) handleDebugHealth(req *httpserver.Request) *httpserver.Response {
	h.observe("/debug/health", req.Method)
	available := h.Gen != nil && h.Gen.Available(context.Background())
	status := "ok"
	if !available {
		status = "degraded"
	}
	body, _ := json.Marshal(debugHealthResponse{Status: status, Model: wireproto.ModelID, Available: available})
	return httpserver.NewJSON(200, body)
}

// handleDebugEcho answers POST /debug/echo by returning the request
// body verbatim, for smoke-testing a client's request construction
// without invoking the generator.
func (h *Handlers) handleDebugEcho(req *httpserver.Request) *httpserver.Response {
	h.observe("/debug/echo", req.Method)
	return httpserver.NewJSON(200, req.Body)
}

// handleDebugMetrics answers GET /debug/metrics with the Prometheus
// text exposition of this gateway's counters and histograms.
func (h *Handlers) handleDebugMetrics(req *httpserver.Request) *httpserver.Response {
	if h.Metrics == nil {
		return httpserver.NewText(200, "")
	}
	body, contentType, err := h.Metrics.Expose()
	if err != nil {
		return errorResponse(500, err.Error(), "internal_error")
	}
	return &httpserver.Response{
		Status:  200,
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
	}
}
