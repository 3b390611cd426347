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
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Emitter is the handle a StreamDriver uses to push events down a
// streaming connection. Every method is safe to call from any goroutine;
// calls are serialized onto the underlying socket in arrival order.
type Emitter interface {
	// EmitSSERaw writes an SSE frame whose data field is raw verbatim.
	EmitSSERaw(raw string) error
	// EmitSSE marshals v to JSON and writes it as one SSE data field.
	EmitSSE(v any) error
	// EmitNDJSON marshals v to JSON, appends a newline, and flushes it
	// as one chunk.
	EmitNDJSON(v any) error
}

// StreamDriver produces a streaming response body given an Emitter. It
// runs after the response header block has already been written; it
// returns once the stream is complete, at which point the engine writes
// the terminating zero-chunk.
type StreamDriver func(e Emitter)

// StreamHandler is the streaming counterpart of Handler: instead of
// returning a materialized Response, it returns a StreamDriver that the
// connection loop runs once headers are flushed, along with the
// Content-Type the route commits to (SSE routes emit
// "text/event-stream"; NDJSON routes emit "application/x-ndjson").
type StreamHandler func(req *Request) (driver StreamDriver, contentType string)

// chunkedEmitter implements Emitter over an io.Writer using HTTP
// chunked transfer-encoding. All writes take mu, so concurrent Emit
// calls from multiple goroutines (e.g. a round generating while a
// keepalive ticker fires) are serialized onto the wire in the order
// they acquire the lock.
type chunkedEmitter struct {
	mu sync.Mutex
	w  io.Writer
}

func newChunkedEmitter(w io.Writer) *chunkedEmitter {
	return &chunkedEmitter{w: w}
}

func (c *chunkedEmitter) writeChunk(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(p) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(c.w, "%x\r\n", len(p)); err != nil {
		return err
	}
	if _, err := c.w.Write(p); err != nil {
		return err
	}
	_, err := io.WriteString(c.w, "\r\n")
	return err
}

func (c *chunkedEmitter) EmitSSERaw(raw string) error {
	return c.writeChunk([]byte("data: " + raw + "\n\n"))
}

func (c *chunkedEmitter) EmitSSE(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.EmitSSERaw(string(b))
}

func (c *chunkedEmitter) EmitNDJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return c.writeChunk(b)
}

// terminate writes the closing zero-length chunk that ends the chunked
// body, per the framing invariant: "the last bytes are 0\r\n\r\n".
func (c *chunkedEmitter) terminate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.w, "0\r\n\r\n")
	return err
}

// streamHeaders returns the header block a streaming response must send:
// chunked transfer-encoding, connection close, and the CORS header every
// response carries.
func streamHeaders(contentType string) []byte {
	headers := withCORS(map[string]string{
		"Content-Type":      contentType,
		"Transfer-Encoding": "chunked",
		"Connection":        "close",
	})
	return headerBlock(200, headers)
}

func headerBlock(status int, headers map[string]string) []byte {
	resp := &Response{Status: status, Headers: headers}
	// serialize always appends Content-Length; streaming responses must
	// not declare one, so build the status line and headers by hand.
	var out []byte
	out = append(out, []byte(fmt.Sprintf("HTTP/1.1 %d %s\r\n", resp.Status, reasonFor(resp.Status)))...)
	for k, v := range headers {
		out = append(out, []byte(k+": "+v+"\r\n")...)
	}
	out = append(out, []byte("\r\n")...)
	return out
}

// SSEChunks splits text into fixed-size rune windows of n, used by the
// non-multi-segment streaming path (window size 64 per spec).
func SSEChunks(text string, n int) []string {
	if n <= 0 {
		return []string{text}
	}
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); i += n {
		end := i + n
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
