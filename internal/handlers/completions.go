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

	"github.com/google/uuid"

	"github.com/AleutianAI/aigateway/internal/httpserver"
	"github.com/AleutianAI/aigateway/internal/wireproto"
)

// handleCompletions answers POST /v1/completions, the legacy
// text-completion surface. It has no tools and no multi-segment mode;
// the only branch is stream vs. non-stream, so it is a DynamicHandler
// purely to share the same registration shape as chat completions.
func (h *Handlers) handleCompletions(req *httpserver.Request) (*httpserver.Response, httpserver.StreamDriver, string) {
	h.observe("/v1/completions", req.Method)

	compReq, err := wireproto.DecodeOpenAICompletionRequest(req.Body)
	if err != nil {
		return badRequest(err.Error()), nil, ""
	}

	ctx := context.Background()
	model := compReq.Model
	if model == "" {
		model = wireproto.ModelID
	}

	if !compReq.Stream {
		text := h.Gen.Generate(ctx, "", compReq.Prompt)
		id := "cmpl-" + uuid.NewString()
		body, _ := json.Marshal(wireproto.EncodeCompletionResponse(id, model, text))
		return httpserver.NewJSON(200, body), nil, ""
	}

	id := "cmpl-" + uuid.NewString()
	driver := func(e httpserver.Emitter) {
		text := h.Gen.Generate(ctx, "", compReq.Prompt)
		for _, window := range httpserver.SSEChunks(text, chatStreamWindow) {
			if h.Metrics != nil {
				h.Metrics.ObserveStreamSegment()
			}
			_ = e.EmitSSE(wireproto.NewTextCompletionChunk(id, model, window))
		}
		_ = e.EmitSSERaw(wireproto.DoneSentinel)
	}
	return nil, driver, "text/event-stream"
}
