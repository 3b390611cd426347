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

	"github.com/AleutianAI/aigateway/internal/budget"
	"github.com/AleutianAI/aigateway/internal/httpserver"
	"github.com/AleutianAI/aigateway/internal/multisegment"
	"github.com/AleutianAI/aigateway/internal/toolcall"
	"github.com/AleutianAI/aigateway/internal/wireproto"
)

// chatStreamWindow is the fixed SSE window size, in runes, used for the
// non-multi-segment streaming path (single-shot generation chopped
// into fixed windows rather than emitted token by token).
const chatStreamWindow = 64

// handleChatCompletions answers POST /v1/chat/completions. It is
// registered as a DynamicHandler because whether the response is
// materialized or streamed depends on the parsed body: a request that
// offers tools is always answered non-streaming, regardless of the
// client's `stream` flag, since a tool round-trip has no natural
// mid-flight SSE representation in this gateway.
func (h *Handlers) handleChatCompletions(req *httpserver.Request) (*httpserver.Response, httpserver.StreamDriver, string) {
	h.observe("/v1/chat/completions", req.Method)

	chatReq, err := wireproto.DecodeOpenAIChatRequest(req.Body)
	if err != nil {
		return badRequest(err.Error()), nil, ""
	}

	chatReq.Messages = h.applyHistoryAndPromptSettings(chatReq.Messages)
	ctx := context.Background()

	if len(chatReq.Tools) > 0 {
		return h.runToolCompletion(ctx, chatReq), nil, ""
	}

	if !chatReq.Stream {
		return h.runChatCompletion(ctx, chatReq), nil, ""
	}

	id := "chatcmpl-" + uuid.NewString()
	model := chatReq.Model
	if model == "" {
		model = wireproto.ModelID
	}
	prompt := budget.Build(ctx, h.Gen, toBudgetMessages(chatReq.Messages))

	driver := func(e httpserver.Emitter) {
		if chatReq.MultiSegment {
			multisegment.Run(ctx, h.Gen, h.MultiSeg, prompt, func(segment string) {
				h.emitChatDelta(e, id, model, segment)
			})
		} else {
			text := h.Gen.Generate(ctx, "", prompt)
			for _, window := range httpserver.SSEChunks(text, chatStreamWindow) {
				h.emitChatDelta(e, id, model, window)
			}
		}
		_ = e.EmitSSE(wireproto.NewTerminalChunk(id, model))
		_ = e.EmitSSERaw(wireproto.DoneSentinel)
	}

	return nil, driver, "text/event-stream"
}

func (h *Handlers) emitChatDelta(e httpserver.Emitter, id, model, fragment string) {
	if h.Metrics != nil {
		h.Metrics.ObserveStreamSegment()
	}
	_ = e.EmitSSE(wireproto.NewContentDeltaChunk(id, model, fragment))
}

func (h *Handlers) runChatCompletion(ctx context.Context, chatReq *wireproto.ChatRequest) *httpserver.Response {
	model := chatReq.Model
	if model == "" {
		model = wireproto.ModelID
	}
	prompt := budget.Build(ctx, h.Gen, toBudgetMessages(chatReq.Messages))
	text := h.Gen.Generate(ctx, "", prompt)

	id := "chatcmpl-" + uuid.NewString()
	body, _ := json.Marshal(wireproto.EncodeChatResponse(id, model, text))
	return httpserver.NewJSON(200, body)
}

func (h *Handlers) runToolCompletion(ctx context.Context, chatReq *wireproto.ChatRequest) *httpserver.Response {
	model := chatReq.Model
	if model == "" {
		model = wireproto.ModelID
	}

	result := toolcall.Run(ctx, h.Gen, h.Tools, chatReq.Messages, chatReq.Tools)
	if h.Metrics != nil && result.ToolUsed {
		h.Metrics.ObserveToolCall(result.ToolName, "ok")
	}

	id := "chatcmpl-" + uuid.NewString()
	body, _ := json.Marshal(wireproto.EncodeChatResponse(id, model, result.FinalText))
	return httpserver.NewJSON(200, body)
}
