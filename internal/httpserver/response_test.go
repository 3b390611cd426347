// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package httpserver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialize_StatusLineAndCORS(t *testing.T) {
	resp := NewJSON(200, []byte(`{"ok":true}`))
	out := string(serialize(resp, resp.Body))
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n"))
	assert.Contains(t, out, "Access-Control-Allow-Origin: *\r\n")
	assert.Contains(t, out, "Content-Length: 11\r\n")
	assert.True(t, strings.HasSuffix(out, `{"ok":true}`))
}

func TestSerialize_UnknownStatusDefaultsReason(t *testing.T) {
	resp := &Response{Status: 500, Headers: map[string]string{}}
	out := string(serialize(resp, nil))
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 500 OK\r\n"))
}

func TestSerialize_404Reason(t *testing.T) {
	resp := NewJSON(404, []byte(`{}`))
	out := string(serialize(resp, resp.Body))
	assert.True(t, strings.HasPrefix(out, "HTTP/1.1 404 Not Found\r\n"))
}

func TestWithCORS_DoesNotOverrideExplicitOrigin(t *testing.T) {
	h := withCORS(map[string]string{"Access-Control-Allow-Origin": "https://example.com"})
	assert.Equal(t, "https://example.com", h["Access-Control-Allow-Origin"])
}
