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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/aigateway/internal/wireproto"
)

type scriptedGen struct {
	replies []string
	calls   int
	prompts []string
}

func (g *scriptedGen) Generate(ctx context.Context, instructions, prompt string) string {
	g.prompts = append(g.prompts, prompt)
	if g.calls >= len(g.replies) {
		return ""
	}
	r := g.replies[g.calls]
	g.calls++
	return r
}

type stubExecutor struct {
	lastName string
	lastArgs map[string]any
	result   map[string]any
}

func (e *stubExecutor) Dispatch(name string, args map[string]any) map[string]any {
	e.lastName = name
	e.lastArgs = args
	return e.result
}

func TestRun_NoToolsSkipsEnvelopeHandling(t *testing.T) {
	gen := &scriptedGen{replies: []string{"just a plain answer"}}
	exec := &stubExecutor{}
	messages := []wireproto.ChatMessage{{Role: "user", Content: "hi"}}

	result := Run(context.Background(), gen, exec, messages, nil)
	assert.Equal(t, "just a plain answer", result.FinalText)
	assert.False(t, result.ToolUsed)
	assert.Equal(t, 1, gen.calls)
}

func TestRun_NoEnvelopeInFirstReplyIsFinalAnswer(t *testing.T) {
	gen := &scriptedGen{replies: []string{"I don't need a tool for that."}}
	exec := &stubExecutor{}
	messages := []wireproto.ChatMessage{{Role: "user", Content: "what is 2+2"}}
	toolDefs := []wireproto.ToolDefinition{{Type: "function", Function: wireproto.ToolFunctionSchema{Name: "list_directory"}}}

	result := Run(context.Background(), gen, exec, messages, toolDefs)
	assert.Equal(t, "I don't need a tool for that.", result.FinalText)
	assert.False(t, result.ToolUsed)
	assert.Equal(t, 1, gen.calls)
}

func TestRun_EnvelopeDispatchesAndProducesFinalAnswer(t *testing.T) {
	gen := &scriptedGen{replies: []string{
		`{"tool_call":{"name":"list_directory","arguments":{"path":"."}}}`,
		"Here's what's in the directory: two files.",
	}}
	exec := &stubExecutor{result: map[string]any{"path": ".", "items": []string{"a.txt", "b.txt"}, "count": 2}}
	messages := []wireproto.ChatMessage{{Role: "user", Content: "list ."}}
	toolDefs := []wireproto.ToolDefinition{{Type: "function", Function: wireproto.ToolFunctionSchema{Name: "list_directory"}}}

	result := Run(context.Background(), gen, exec, messages, toolDefs)

	require.True(t, result.ToolUsed)
	assert.Equal(t, "list_directory", result.ToolName)
	assert.Equal(t, "list_directory", exec.lastName)
	assert.Equal(t, ".", exec.lastArgs["path"])
	assert.Equal(t, "Here's what's in the directory: two files.", result.FinalText)
	assert.Equal(t, 2, gen.calls)

	// history carries the synthetic system message, the assistant
	// envelope, and a role:"tool" message with valid JSON of the result.
	var sawSystem, sawAssistantEnvelope, sawToolResult bool
	for _, m := range result.Messages {
		switch m.Role {
		case "system":
			if strings.Contains(m.Content, "tool_call") {
				sawSystem = true
			}
		case "assistant":
			if strings.Contains(m.Content, "list_directory") {
				sawAssistantEnvelope = true
			}
		case "tool":
			var parsed map[string]any
			require.NoError(t, json.Unmarshal([]byte(m.Content), &parsed))
			sawToolResult = true
		}
	}
	assert.True(t, sawSystem)
	assert.True(t, sawAssistantEnvelope)
	assert.True(t, sawToolResult)
}

func TestRun_ToolExecutorErrorIsEmbeddedNotRaised(t *testing.T) {
	gen := &scriptedGen{replies: []string{
		`{"tool_call":{"name":"read_file","arguments":{"path":"/nope"}}}`,
		"The file could not be read.",
	}}
	exec := &stubExecutor{result: map[string]any{"error": "path resolves outside allowed directories"}}
	messages := []wireproto.ChatMessage{{Role: "user", Content: "read /nope"}}
	toolDefs := []wireproto.ToolDefinition{{Type: "function", Function: wireproto.ToolFunctionSchema{Name: "read_file"}}}

	result := Run(context.Background(), gen, exec, messages, toolDefs)
	require.True(t, result.ToolUsed)
	assert.Equal(t, "The file could not be read.", result.FinalText)
}
