// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// httpBackend is the default Generator: it speaks a llama.cpp-style
// completion endpoint over HTTP, the same wire shape the on-device
// backend this gateway was built against exposes. Callers that have a
// different backend implement Generator directly and never construct
// this type.
type httpBackend struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPBackend returns a Generator that POSTs to baseURL + "/completion"
// using the llama.cpp wire shape. baseURL must not have a trailing
// slash requirement; it is trimmed internally.
func NewHTTPBackend(baseURL string) *httpBackend {
	return &httpBackend{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

type completionPayload struct {
	Prompt      string   `json:"prompt"`
	NPredict    int      `json:"n_predict"`
	Temperature float32  `json:"temperature"`
	TopK        int      `json:"top_k"`
	TopP        float32  `json:"top_p"`
	Stop        []string `json:"stop,omitempty"`
}

type completionResponse struct {
	Content string `json:"content"`
}

// Generate implements Generator. instructions, when non-empty, is
// prepended to prompt separated by two newlines — the backend has no
// separate system-role slot.
func (h *httpBackend) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	full := prompt
	if instructions != "" {
		full = instructions + "\n\n" + prompt
	}

	payload := completionPayload{
		Prompt:      full,
		NPredict:    1024,
		Temperature: 0.2,
		TopK:        20,
		TopP:        0.9,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("generator: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", h.baseURL+"/completion", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("generator: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generator: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("generator: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generator: backend returned %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("generator: parse response: %w", err)
	}
	return parsed.Content, nil
}

// Available probes the backend's health endpoint. Any network failure
// or non-200 is treated as unavailable.
func (h *httpBackend) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", h.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
