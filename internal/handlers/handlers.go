// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers wires the wire-protocol adapters, context budgeter,
// generator façade, multi-segment streamer, and tool-call orchestrator
// into the concrete route surface spec.md §6.1 names, registered
// against an *httpserver.Router.
//
// # Architecture
//
// Every handler in this package follows the same shape: decode the
// request body through internal/wireproto, resolve settings toggles,
// call into the engine packages, and encode the result back through
// internal/wireproto. No handler touches a wire dialect's JSON shape
// directly outside of wireproto.
package handlers

import (
	"log/slog"

	"github.com/AleutianAI/aigateway/internal/generator"
	"github.com/AleutianAI/aigateway/internal/httpserver"
	"github.com/AleutianAI/aigateway/internal/multisegment"
	"github.com/AleutianAI/aigateway/internal/observability"
	"github.com/AleutianAI/aigateway/internal/settings"
	"github.com/AleutianAI/aigateway/internal/toolcall"
)

// Handlers holds every collaborator the route surface depends on and
// exposes Register to wire them all into a Router.
type Handlers struct {
	Gen      *generator.Facade
	Tools    toolcall.ToolExecutor
	Settings *settings.Store
	Metrics  *observability.Metrics
	Log      *slog.Logger
	MultiSeg multisegment.Config
}

// New builds a Handlers wired to the given collaborators. log may be
// nil, in which case slog.Default() is used.
func New(gen *generator.Facade, tools toolcall.ToolExecutor, store *settings.Store, metrics *observability.Metrics, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		Gen:      gen,
		Tools:    tools,
		Settings: store,
		Metrics:  metrics,
		Log:      log,
		MultiSeg: multisegment.DefaultConfig(),
	}
}

// Register installs every route from spec.md §6.1 (plus the
// SPEC_FULL.md §6 metrics addition) onto router.
func (h *Handlers) Register(router *httpserver.Router) {
	router.Handle("GET", "/", h.handleIndex)

	router.Handle("GET", "/v1/models", h.handleModelList)
	router.HandlePrefix("GET", "/v1/models/", h.handleModelGet)
	router.Handle("GET", "/api/models", h.handleModelList)
	router.HandlePrefix("GET", "/api/models/", h.handleModelGet)

	router.Handle("GET", "/api/tags", h.handleOllamaTags)
	router.Handle("GET", "/api/version", h.handleOllamaVersion)
	router.Handle("GET", "/api/ps", h.handleOllamaPS)

	router.HandleDynamic("POST", "/v1/chat/completions", h.handleChatCompletions)
	router.HandleDynamic("POST", "/v1/completions", h.handleCompletions)
	router.Handle("POST", "/api/chat", h.handleOllamaChat)
	router.HandleDynamic("POST", "/api/generate", h.handleOllamaGenerate)

	router.Handle("GET", "/debug/health", h.handleDebugHealth)
	router.Handle("POST", "/debug/echo", h.handleDebugEcho)
	router.Handle("GET", "/debug/metrics", h.handleDebugMetrics)
}

// observe records one served request against the metrics registry. It
// is a no-op when Metrics is nil, which keeps every handler safe to
// unit test without standing up a full registry.
func (h *Handlers) observe(route, method string) {
	if h.Metrics != nil {
		h.Metrics.ObserveRequest(route, method)
	}
}
