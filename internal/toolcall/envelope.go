// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package toolcall instructs the model to request built-in tools through a
// strict JSON envelope, detects that envelope in a generation, dispatches
// it to a ToolExecutor, and feeds the result back for a final answer.
package toolcall

import (
	"encoding/json"
	"strings"
)

// Envelope is the single-tool-call shape the model is instructed to reply
// with: {"tool_call":{"name":"...","arguments":{...}}}.
type Envelope struct {
	ToolCall struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"tool_call"`
}

// ParseEnvelope attempts a strict JSON decode of reply. If that fails, it
// extracts the substring between the first '{' and the last '}' and
// retries once. It returns ok=false if no valid envelope with a non-empty
// tool name was found.
func ParseEnvelope(reply string) (Envelope, bool) {
	if env, ok := tryDecodeEnvelope(reply); ok {
		return env, true
	}

	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end <= start {
		return Envelope{}, false
	}
	return tryDecodeEnvelope(reply[start : end+1])
}

func tryDecodeEnvelope(s string) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return Envelope{}, false
	}
	if env.ToolCall.Name == "" {
		return Envelope{}, false
	}
	return env, true
}
