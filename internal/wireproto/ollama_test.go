// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package wireproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOllamaChatRequest_AlwaysNonStreaming(t *testing.T) {
	body := []byte(`{"model":"apple.local","messages":[{"role":"user","content":"hi"}],"stream":true}`)
	req, err := DecodeOllamaChatRequest(body)
	require.NoError(t, err)
	assert.False(t, req.Stream)
	assert.Equal(t, "hi", req.Messages[0].Content)
}

func TestDecodeOllamaChatRequest_OptionsMapToTemperatureAndMaxTokens(t *testing.T) {
	body := []byte(`{"model":"x","messages":[],"options":{"temperature":0.5,"num_predict":128}}`)
	req, err := DecodeOllamaChatRequest(body)
	require.NoError(t, err)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.5, *req.Temperature)
	require.NotNil(t, req.MaxTokens)
	assert.Equal(t, 128, *req.MaxTokens)
}

func TestEncodeOllamaChatResponse_Shape(t *testing.T) {
	resp := EncodeOllamaChatResponse(ModelID, "answer")
	assert.True(t, resp.Done)
	assert.Equal(t, "assistant", resp.Message.Role)
	assert.Equal(t, "answer", resp.Message.Content)
	assert.NotEmpty(t, resp.CreatedAt)
}

func TestBuildOllamaTags_StableEntry(t *testing.T) {
	tags := BuildOllamaTags()
	require.Len(t, tags.Models, 1)
	assert.Equal(t, "apple.local:latest", tags.Models[0].Name)
	assert.Equal(t, "apple-intelligence", tags.Models[0].Details.Family)
	assert.Nil(t, tags.Models[0].Size)
}

func TestOllamaGenerateChunks_DoneFlagSequence(t *testing.T) {
	chunk := NewOllamaGenerateChunk(ModelID, "partial")
	assert.False(t, chunk.Done)
	assert.Equal(t, "partial", chunk.Response)

	done := NewOllamaGenerateDone(ModelID)
	assert.True(t, done.Done)
	assert.Empty(t, done.Response)
}
