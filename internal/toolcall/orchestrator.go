// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package toolcall

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/aigateway/internal/budget"
	"github.com/AleutianAI/aigateway/internal/wireproto"
)

var tracer = otel.Tracer("aigateway.toolcall")

// Generator is the narrow collaborator the orchestrator drives.
// generator.Facade satisfies this directly.
type Generator interface {
	Generate(ctx context.Context, instructions, prompt string) string
}

// ToolExecutor dispatches a tool name and argument map to a JSON result.
// Errors are embedded in the result as {"error": "..."}, never returned
// as a Go error — the model needs to be able to see and react to them.
// internal/toolcall/tools.Executor satisfies this directly.
type ToolExecutor interface {
	Dispatch(name string, args map[string]any) map[string]any
}

// Result is what Run produces: the text to surface to the client, plus
// enough bookkeeping for callers that want to log or persist the
// extended history a tool round-trip produced.
type Result struct {
	FinalText string
	ToolUsed  bool
	ToolName  string
	// Messages is the full conversation including any synthetic system
	// message and, if a tool was used, the assistant envelope and the
	// role:"tool" result message. When no tool ran it is the input,
	// preceded by the synthetic system message if tools were offered.
	Messages []wireproto.ChatMessage
}

// Run performs at most one tool round-trip: it instructs the model to
// reply with a tool-call envelope when tools are non-empty, generates a
// first reply, and — if that reply parses as a valid envelope — dispatches
// it through executor, appends the envelope and result to the history,
// and generates a final answer. If no envelope is found, the first reply
// is the final answer.
func Run(ctx context.Context, gen Generator, executor ToolExecutor, messages []wireproto.ChatMessage, tools []wireproto.ToolDefinition) Result {
	working := make([]wireproto.ChatMessage, 0, len(messages)+1)
	if len(tools) > 0 {
		working = append(working, wireproto.ChatMessage{Role: "system", Content: systemPromptForTools()})
	}
	working = append(working, messages...)

	reply := gen.Generate(ctx, "", budget.Build(ctx, gen, toBudgetMessages(working)))

	if len(tools) == 0 {
		return Result{FinalText: reply, Messages: working}
	}

	envelope, ok := ParseEnvelope(reply)
	if !ok {
		return Result{FinalText: reply, Messages: working}
	}

	outcome := dispatch(ctx, executor, envelope)
	resultJSON, err := json.Marshal(outcome)
	if err != nil {
		resultJSON = []byte(`{"error":"failed to serialize tool result"}`)
	}

	working = append(working,
		wireproto.ChatMessage{Role: "assistant", Content: reply},
		wireproto.ChatMessage{Role: "tool", Content: string(resultJSON)},
	)

	final := gen.Generate(ctx, "", budget.Build(ctx, gen, toBudgetMessages(working)))

	return Result{
		FinalText: final,
		ToolUsed:  true,
		ToolName:  envelope.ToolCall.Name,
		Messages:  working,
	}
}

func dispatch(ctx context.Context, executor ToolExecutor, envelope Envelope) map[string]any {
	_, span := tracer.Start(ctx, "toolcall.Dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("toolcall.name", envelope.ToolCall.Name))

	result := executor.Dispatch(envelope.ToolCall.Name, envelope.ToolCall.Arguments)
	if errMsg, isErr := result["error"]; isErr {
		if s, ok := errMsg.(string); ok {
			span.SetStatus(codes.Error, s)
		}
	}
	return result
}

func toBudgetMessages(messages []wireproto.ChatMessage) []budget.Message {
	out := make([]budget.Message, len(messages))
	for i, m := range messages {
		out[i] = budget.Message{Role: m.Role, Content: m.Content}
	}
	return out
}
