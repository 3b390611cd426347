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

	"github.com/AleutianAI/aigateway/internal/budget"
	"github.com/AleutianAI/aigateway/internal/generator"
	"github.com/AleutianAI/aigateway/internal/settings"
	"github.com/AleutianAI/aigateway/internal/wireproto"
)

// applyHistoryAndPromptSettings mutates messages per the persisted
// settings before anything downstream sees them: dropping prior turns
// when history is disabled, and prepending an operator-configured
// system prompt when enabled. This lives at the handler layer, not in
// internal/budget, so the budgeter's own compression algorithm keeps
// matching its documented behavior exactly regardless of these toggles.
func (h *Handlers) applyHistoryAndPromptSettings(messages []wireproto.ChatMessage) []wireproto.ChatMessage {
	if h.Settings == nil {
		return messages
	}

	if !h.Settings.GetBool(settings.KeyIncludeHistory, true) && len(messages) > 0 {
		messages = messages[len(messages)-1:]
	}

	if h.Settings.GetBool(settings.KeyIncludeSystemPrompt, false) {
		if prompt, ok := h.Settings.Get(settings.KeySystemPrompt); ok && prompt != "" {
			out := make([]wireproto.ChatMessage, 0, len(messages)+1)
			out = append(out, wireproto.ChatMessage{Role: "system", Content: prompt})
			out = append(out, messages...)
			messages = out
		}
	}

	return messages
}

func toBudgetMessages(messages []wireproto.ChatMessage) []budget.Message {
	out := make([]budget.Message, len(messages))
	for i, m := range messages {
		out[i] = budget.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

// budgetPrompt runs messages through the context budgeter in one step.
func budgetPrompt(ctx context.Context, gen *generator.Facade, messages []wireproto.ChatMessage) string {
	return budget.Build(ctx, gen, toBudgetMessages(messages))
}
