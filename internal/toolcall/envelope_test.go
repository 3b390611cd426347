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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelope_StrictJSON(t *testing.T) {
	reply := `{"tool_call":{"name":"list_directory","arguments":{"path":"."}}}`
	env, ok := ParseEnvelope(reply)
	require.True(t, ok)
	assert.Equal(t, "list_directory", env.ToolCall.Name)
	assert.Equal(t, ".", env.ToolCall.Arguments["path"])
}

func TestParseEnvelope_ExtractsFromSurroundingProse(t *testing.T) {
	reply := "Sure, here's the call:\n" + `{"tool_call":{"name":"check_path","arguments":{"path":"/tmp"}}}` + "\nlet me know"
	env, ok := ParseEnvelope(reply)
	require.True(t, ok)
	assert.Equal(t, "check_path", env.ToolCall.Name)
}

func TestParseEnvelope_PlainTextIsNotAnEnvelope(t *testing.T) {
	_, ok := ParseEnvelope("The capital of France is Paris.")
	assert.False(t, ok)
}

func TestParseEnvelope_MissingNameIsNotAnEnvelope(t *testing.T) {
	_, ok := ParseEnvelope(`{"tool_call":{"arguments":{}}}`)
	assert.False(t, ok)
}

func TestParseEnvelope_EmptyStringIsNotAnEnvelope(t *testing.T) {
	_, ok := ParseEnvelope("")
	assert.False(t, ok)
}
