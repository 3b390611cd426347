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
	"errors"
	"strconv"
	"strings"
)

// MaxBodyBytes bounds the body size the parser accepts before returning
// errBodyTooLarge. Not present in the source this gateway mirrors; added
// as hardening per spec.
const MaxBodyBytes = 64 << 20 // 64 MiB

var (
	errIncomplete    = errors.New("httpserver: incomplete request")
	errMalformed     = errors.New("httpserver: malformed request line")
	errBodyTooLarge  = errors.New("httpserver: body too large")
	crlfcrlf         = []byte("\r\n\r\n")
)

// tryParse attempts to parse one request out of buf. It returns the
// parsed request, the number of bytes consumed from buf, and an error.
// errIncomplete means the caller should read more bytes and retry;
// any other error is terminal for the connection.
func tryParse(buf []byte) (*Request, int, error) {
	idx := bytes.Index(buf, crlfcrlf)
	if idx < 0 {
		return nil, 0, errIncomplete
	}
	head := buf[:idx]
	bodyStart := idx + len(crlfcrlf)

	lines := strings.Split(string(head), "\r\n")
	if len(lines) == 0 {
		return nil, 0, errMalformed
	}

	reqLine := strings.Fields(lines[0])
	if len(reqLine) < 2 {
		return nil, 0, errMalformed
	}

	req := &Request{
		Method:  strings.ToUpper(reqLine[0]),
		Version: "HTTP/1.1",
		Headers: make(map[string]string),
	}
	if len(reqLine) >= 3 {
		req.Version = reqLine[2]
	}
	req.Path, req.Query = NormalizePath(reqLine[1])

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:colon]))
		val := strings.TrimSpace(line[colon+1:])
		req.Headers[key] = val
	}

	contentLength := -1
	if v, ok := req.Headers["content-length"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			contentLength = n
		}
	}

	if contentLength > MaxBodyBytes {
		return nil, 0, errBodyTooLarge
	}

	if contentLength < 0 {
		// No declared body length: treat whatever is already buffered
		// after the header terminator as the full body. This matches
		// simple clients that send a body without Content-Length on a
		// connection that will be closed immediately after.
		req.Body = append([]byte(nil), buf[bodyStart:]...)
		return req, len(buf), nil
	}

	need := bodyStart + contentLength
	if len(buf) < need {
		return nil, 0, errIncomplete
	}
	req.Body = append([]byte(nil), buf[bodyStart:need]...)
	return req, need, nil
}
