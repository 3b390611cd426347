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
	"bytes"
	"fmt"
	"sort"
)

// Response is a fully materialized HTTP response body. Handlers that need
// to stream instead return a StreamDriver from Handler.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

var reasonPhrases = map[int]string{
	200: "OK",
	204: "No Content",
	400: "Bad Request",
	404: "Not Found",
	413: "Payload Too Large",
}

func reasonFor(status int) string {
	if r, ok := reasonPhrases[status]; ok {
		return r
	}
	return "OK"
}

// NewJSON builds a response with the given status and JSON body. The
// CORS header is added later, when the response is serialized.
func NewJSON(status int, body []byte) *Response {
	return &Response{
		Status: status,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}
}

// NewText builds a plain-text response.
func NewText(status int, body string) *Response {
	return &Response{
		Status: status,
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
		},
		Body: []byte(body),
	}
}

// withCORS returns a copy of headers with the permissive CORS header
// every response must carry, per spec.
func withCORS(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		out[k] = v
	}
	if _, ok := out["Access-Control-Allow-Origin"]; !ok {
		out["Access-Control-Allow-Origin"] = "*"
	}
	return out
}

// serialize renders the status line, headers, and body into wire bytes.
// Headers are emitted in sorted order for determinism (tests rely on
// this; the wire protocol does not require it).
func serialize(resp *Response, body []byte) []byte {
	headers := withCORS(resp.Headers)
	headers["Content-Length"] = fmt.Sprintf("%d", len(body))

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("HTTP/1.1 %d %s\r\n", resp.Status, reasonFor(resp.Status)))

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(headers[k])
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.Write(body)
	return buf.Bytes()
}
