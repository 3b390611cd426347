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
	"encoding/json"
	"fmt"
	"time"
)

type ollamaOptions struct {
	Temperature *float64 `json:"temperature"`
	NumPredict  *int     `json:"num_predict"`
}

type ollamaChatMessageWire struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequestWire struct {
	Model    string                  `json:"model"`
	Messages []ollamaChatMessageWire `json:"messages"`
	Stream   bool                    `json:"stream"`
	Options  *ollamaOptions          `json:"options"`
}

// DecodeOllamaChatRequest parses a POST /api/chat body. Ollama chat
// content is already a plain string (no polymorphic shapes), unlike
// OpenAI's dialect.
func DecodeOllamaChatRequest(body []byte) (*ChatRequest, error) {
	var wire ollamaChatRequestWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("wireproto: decode ollama chat request: %w", err)
	}

	messages := make([]ChatMessage, 0, len(wire.Messages))
	for _, m := range wire.Messages {
		messages = append(messages, ChatMessage{Role: m.Role, Content: m.Content})
	}

	req := &ChatRequest{
		Model:        wire.Model,
		Messages:     messages,
		MultiSegment: false,
		Stream:       false, // /api/chat is always served non-streaming in this gateway
	}
	if wire.Options != nil {
		req.Temperature = wire.Options.Temperature
		req.MaxTokens = wire.Options.NumPredict
	}
	if err := Validate(req); err != nil {
		return nil, fmt.Errorf("wireproto: invalid ollama chat request: %w", err)
	}
	return req, nil
}

// OllamaChatResponse is the non-streaming /api/chat response shape.
type OllamaChatResponse struct {
	Model     string      `json:"model"`
	CreatedAt string      `json:"created_at"`
	Message   ChatMessage `json:"message"`
	Done      bool        `json:"done"`
}

// EncodeOllamaChatResponse builds the /api/chat response body.
func EncodeOllamaChatResponse(model, content string) OllamaChatResponse {
	return OllamaChatResponse{
		Model:     model,
		CreatedAt: nowISO8601(),
		Message:   ChatMessage{Role: "assistant", Content: content},
		Done:      true,
	}
}

type ollamaGenerateRequestWire struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options"`
}

// DecodeOllamaGenerateRequest parses a POST /api/generate body into the
// internal CompletionRequest representation.
func DecodeOllamaGenerateRequest(body []byte) (*CompletionRequest, error) {
	var wire ollamaGenerateRequestWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("wireproto: decode ollama generate request: %w", err)
	}
	req := &CompletionRequest{
		Model:  wire.Model,
		Prompt: wire.Prompt,
		Stream: wire.Stream,
	}
	if wire.Options != nil {
		req.Temperature = wire.Options.Temperature
		req.MaxTokens = wire.Options.NumPredict
	}
	return req, nil
}

// OllamaGenerateChunk is one NDJSON record for a streaming /api/generate
// response.
type OllamaGenerateChunk struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response,omitempty"`
	Done      bool   `json:"done"`
}

// NewOllamaGenerateChunk builds an in-progress {done:false} NDJSON record.
func NewOllamaGenerateChunk(model, chunk string) OllamaGenerateChunk {
	return OllamaGenerateChunk{Model: model, CreatedAt: nowISO8601(), Response: chunk, Done: false}
}

// NewOllamaGenerateDone builds the terminal {done:true} NDJSON record.
func NewOllamaGenerateDone(model string) OllamaGenerateChunk {
	return OllamaGenerateChunk{Model: model, CreatedAt: nowISO8601(), Done: true}
}

// NewOllamaGenerateResult builds the single-object body a non-streaming
// /api/generate request gets back: the full response text and
// {done:true} together, rather than split across chunks.
func NewOllamaGenerateResult(model, text string) OllamaGenerateChunk {
	return OllamaGenerateChunk{Model: model, CreatedAt: nowISO8601(), Response: text, Done: true}
}

// OllamaTagDetails is the nested `details` object in a tags entry.
type OllamaTagDetails struct {
	Format           string  `json:"format"`
	Family           string  `json:"family"`
	Families         []string `json:"families"`
	ParameterSize    *string `json:"parameter_size"`
	QuantizationLevel *string `json:"quantization_level"`
}

// OllamaTag is one entry in the GET /api/tags response.
type OllamaTag struct {
	Name       string           `json:"name"`
	ModifiedAt string           `json:"modified_at"`
	Size       *int64           `json:"size"`
	Digest     *string          `json:"digest"`
	Details    OllamaTagDetails `json:"details"`
}

// OllamaTagsResponse is the GET /api/tags response body.
type OllamaTagsResponse struct {
	Models []OllamaTag `json:"models"`
}

// BuildOllamaTags returns the stable single-entry tags listing this
// gateway always advertises.
func BuildOllamaTags() OllamaTagsResponse {
	return OllamaTagsResponse{
		Models: []OllamaTag{{
			Name:       ModelID + ":latest",
			ModifiedAt: nowISO8601(),
			Size:       nil,
			Digest:     nil,
			Details: OllamaTagDetails{
				Format:   "system",
				Family:   "apple-intelligence",
				Families: []string{"apple-intelligence"},
			},
		}},
	}
}

func nowISO8601() string {
	return time.Now().UTC().Format(time.RFC3339)
}
