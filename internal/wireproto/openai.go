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
	"strings"
)

type openaiChatMessageWire struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type openaiChatRequestWire struct {
	Model        string                   `json:"model"`
	Messages     []openaiChatMessageWire  `json:"messages"`
	Temperature  *float64                 `json:"temperature"`
	MaxTokens    *int                     `json:"max_tokens"`
	Stream       bool                     `json:"stream"`
	MultiSegment *bool                    `json:"multi_segment"`
	Tools        []ToolDefinition         `json:"tools"`
	ToolChoice   json.RawMessage          `json:"tool_choice"`
}

// DecodeOpenAIChatRequest parses an OpenAI /v1/chat/completions request
// body into the internal ChatRequest representation, flattening every
// message's polymorphic content field.
func DecodeOpenAIChatRequest(body []byte) (*ChatRequest, error) {
	var wire openaiChatRequestWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("wireproto: decode chat request: %w", err)
	}

	messages := make([]ChatMessage, 0, len(wire.Messages))
	for _, m := range wire.Messages {
		messages = append(messages, ChatMessage{
			Role:    m.Role,
			Content: FlattenContent(m.Content),
		})
	}

	multiSegment := true
	if wire.MultiSegment != nil {
		multiSegment = *wire.MultiSegment
	}

	req := &ChatRequest{
		Model:        wire.Model,
		Messages:     messages,
		Temperature:  wire.Temperature,
		MaxTokens:    wire.MaxTokens,
		Stream:       wire.Stream,
		MultiSegment: multiSegment,
		Tools:        wire.Tools,
		ToolChoice:   ParseToolChoice(wire.ToolChoice),
	}
	if err := Validate(req); err != nil {
		return nil, fmt.Errorf("wireproto: invalid chat request: %w", err)
	}
	return req, nil
}

type openaiCompletionRequestWire struct {
	Model       string          `json:"model"`
	Prompt      json.RawMessage `json:"prompt"`
	Temperature *float64        `json:"temperature"`
	MaxTokens   *int            `json:"max_tokens"`
	Stream      bool            `json:"stream"`
}

// DecodeOpenAICompletionRequest parses an OpenAI /v1/completions
// request body. `prompt` accepts a plain string or an array of strings
// joined with "\n\n".
func DecodeOpenAICompletionRequest(body []byte) (*CompletionRequest, error) {
	var wire openaiCompletionRequestWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("wireproto: decode completion request: %w", err)
	}

	prompt := decodePromptField(wire.Prompt)

	return &CompletionRequest{
		Model:       wire.Model,
		Prompt:      prompt,
		Temperature: wire.Temperature,
		MaxTokens:   wire.MaxTokens,
		Stream:      wire.Stream,
	}, nil
}

func decodePromptField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return strings.Join(arr, "\n\n")
	}
	return ""
}

// EncodeChatResponse builds the non-streaming OpenAI chat.completion
// response body for a single assistant answer.
func EncodeChatResponse(id, model, content string) ChatResponse {
	finish := "stop"
	return ChatResponse{
		ID:      id,
		Object:  "chat.completion",
		Created: ProcessStartUnix(),
		Model:   model,
		Choices: []Choice{{
			Index:        0,
			Message:      &ChatMessage{Role: "assistant", Content: content},
			FinishReason: &finish,
		}},
	}
}

// EncodeCompletionResponse builds the non-streaming OpenAI
// text_completion response body.
func EncodeCompletionResponse(id, model, text string) CompletionResponse {
	finish := "stop"
	return CompletionResponse{
		ID:      id,
		Object:  "text_completion",
		Created: ProcessStartUnix(),
		Model:   model,
		Choices: []Choice{{
			Index:        0,
			Text:         text,
			FinishReason: &finish,
		}},
	}
}

// ChatCompletionChunk is one SSE delta event for a streaming chat
// completion.
type ChatCompletionChunk struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChunkChoice `json:"choices"`
}

// ChunkChoice is the single choice carried by a streaming delta event.
type ChunkChoice struct {
	Index        int             `json:"index"`
	Delta        json.RawMessage `json:"delta"`
	FinishReason *string         `json:"finish_reason,omitempty"`
}

// NewContentDeltaChunk builds an in-progress streaming chunk carrying
// one content fragment.
func NewContentDeltaChunk(id, model, fragment string) ChatCompletionChunk {
	delta, _ := json.Marshal(map[string]string{"content": fragment})
	return ChatCompletionChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Created: ProcessStartUnix(),
		Model:   model,
		Choices: []ChunkChoice{{Index: 0, Delta: delta}},
	}
}

// NewTerminalChunk builds the final streaming chunk: an empty delta and
// finish_reason "stop".
func NewTerminalChunk(id, model string) ChatCompletionChunk {
	finish := "stop"
	return ChatCompletionChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Created: ProcessStartUnix(),
		Model:   model,
		Choices: []ChunkChoice{{Index: 0, Delta: json.RawMessage(`{}`), FinishReason: &finish}},
	}
}

// TextCompletionChunk is one SSE event for a streaming text completion.
type TextCompletionChunk struct {
	ID      string                    `json:"id"`
	Object  string                    `json:"object"`
	Created int64                     `json:"created"`
	Model   string                    `json:"model"`
	Choices []TextCompletionChunkItem `json:"choices"`
}

// TextCompletionChunkItem is the single choice in a TextCompletionChunk.
type TextCompletionChunkItem struct {
	Text         string  `json:"text"`
	Index        int     `json:"index"`
	FinishReason *string `json:"finish_reason"`
}

// NewTextCompletionChunk builds one streaming text-completion event.
func NewTextCompletionChunk(id, model, text string) TextCompletionChunk {
	return TextCompletionChunk{
		ID:      id,
		Object:  "text_completion.chunk",
		Created: ProcessStartUnix(),
		Model:   model,
		Choices: []TextCompletionChunkItem{{Text: text, Index: 0, FinishReason: nil}},
	}
}

// DoneSentinel is the literal terminal SSE frame for both chat and text
// completion streams.
const DoneSentinel = "[DONE]"
