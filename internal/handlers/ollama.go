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

// handleOllamaTags answers GET /api/tags with the stable single-entry
// listing this gateway always advertises.
func (h *Handlers) handleOllamaTags(req *httpserver.Request) *httpserver.Response {
	h.observe("/api/tags", req.Method)
	body, _ := json.Marshal(wireproto.BuildOllamaTags())
	return httpserver.NewJSON(200, body)
}

// ollamaVersionResponse is the GET /api/version body.
type ollamaVersionResponse struct {
	Version string `json:"version"`
}

// handleOllamaVersion answers GET /api/version. This gateway does not
// track an Ollama release; it reports its own stable identity so
// Ollama-dialect clients that gate on a version string don't reject it.
func (h *Handlers) handleOllamaVersion(req *httpserver.Request) *httpserver.Response {
	h.observe("/api/version", req.Method)
	body, _ := json.Marshal(ollamaVersionResponse{Version: "0.0.0-aigateway"})
	return httpserver.NewJSON(200, body)
}

// ollamaPSResponse is the GET /api/ps body: the set of models currently
// loaded into memory.
type ollamaPSResponse struct {
	Models []json.RawMessage `json:"models"`
}

// handleOllamaPS answers GET /api/ps. The on-device backend is always
// resident once the process is up, so the list is always empty: there
// is no loadable/unloadable model lifecycle to report.
func (h *Handlers) handleOllamaPS(req *httpserver.Request) *httpserver.Response {
	h.observe("/api/ps", req.Method)
	body, _ := json.Marshal(ollamaPSResponse{Models: []json.RawMessage{}})
	return httpserver.NewJSON(200, body)
}

// handleOllamaChat answers POST /api/chat. Per the Ollama dialect's
// contract in this gateway, chat is always served non-streaming — the
// bare-string content shape gives clients no natural way to distinguish
// a partial message from a complete one mid-stream.
func (h *Handlers) handleOllamaChat(req *httpserver.Request) *httpserver.Response {
	h.observe("/api/chat", req.Method)

	chatReq, err := wireproto.DecodeOllamaChatRequest(req.Body)
	if err != nil {
		return badRequest(err.Error())
	}
	chatReq.Messages = h.applyHistoryAndPromptSettings(chatReq.Messages)

	ctx := context.Background()
	model := chatReq.Model
	if model == "" {
		model = wireproto.ModelID
	}

	if len(chatReq.Tools) > 0 {
		resp := h.runToolCompletion(ctx, chatReq)
		return resp
	}

	prompt := budgetPrompt(ctx, h.Gen, chatReq.Messages)
	text := h.Gen.Generate(ctx, "", prompt)
	body, _ := json.Marshal(wireproto.EncodeOllamaChatResponse(model, text))
	return httpserver.NewJSON(200, body)
}

// handleOllamaGenerate answers POST /api/generate. It is a
// DynamicHandler because the choice between an NDJSON stream and a
// single materialized JSON object depends on the request's `stream`
// field.
func (h *Handlers) handleOllamaGenerate(req *httpserver.Request) (*httpserver.Response, httpserver.StreamDriver, string) {
	h.observe("/api/generate", req.Method)

	genReq, err := wireproto.DecodeOllamaGenerateRequest(req.Body)
	if err != nil {
		return badRequest(err.Error()), nil, ""
	}

	ctx := context.Background()
	model := genReq.Model
	if model == "" {
		model = wireproto.ModelID
	}

	if !genReq.Stream {
		text := h.Gen.Generate(ctx, "", genReq.Prompt)
		body, _ := json.Marshal(wireproto.NewOllamaGenerateResult(model, text))
		return httpserver.NewJSON(200, body), nil, ""
	}

	driver := func(e httpserver.Emitter) {
		text := h.Gen.Generate(ctx, "", genReq.Prompt)
		for _, window := range httpserver.SSEChunks(text, chatStreamWindow) {
			if h.Metrics != nil {
				h.Metrics.ObserveStreamSegment()
			}
			_ = e.EmitNDJSON(wireproto.NewOllamaGenerateChunk(model, window))
		}
		_ = e.EmitNDJSON(wireproto.NewOllamaGenerateDone(model))
	}
	return nil, driver, "application/x-ndjson"
}
