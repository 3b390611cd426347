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
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryParse_SimpleGET(t *testing.T) {
	raw := "GET /v1/models HTTP/1.1\r\nHost: localhost\r\n\r\n"
	req, n, err := tryParse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, len(raw), n)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/v1/models", req.Path)
	host, ok := req.Header("Host")
	assert.True(t, ok)
	assert.Equal(t, "localhost", host)
}

func TestTryParse_IncompleteHead(t *testing.T) {
	_, _, err := tryParse([]byte("GET / HTTP/1.1\r\nHost: x"))
	assert.Equal(t, errIncomplete, err)
}

func TestTryParse_IncompleteBody(t *testing.T) {
	raw := "POST /v1/chat/completions HTTP/1.1\r\nContent-Length: 10\r\n\r\nabc"
	_, _, err := tryParse([]byte(raw))
	assert.Equal(t, errIncomplete, err)
}

func TestTryParse_WaitsForFullBody(t *testing.T) {
	body := `{"a":1}`
	raw := "POST /x HTTP/1.1\r\nContent-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
	req, n, err := tryParse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, len(raw), n)
	assert.Equal(t, body, string(req.Body))
}

func TestTryParse_MalformedRequestLine(t *testing.T) {
	_, _, err := tryParse([]byte("GET\r\n\r\n"))
	assert.Equal(t, errMalformed, err)
}

func TestTryParse_BodyTooLarge(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nContent-Length: 999999999999\r\n\r\n"
	_, _, err := tryParse([]byte(raw))
	assert.Equal(t, errBodyTooLarge, err)
}

func TestTryParse_CaseInsensitiveHeaderLookup(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nCONTENT-TYPE: application/json\r\n\r\n"
	req, _, err := tryParse([]byte(raw))
	require.NoError(t, err)
	ct, ok := req.Header("content-type")
	require.True(t, ok)
	assert.Equal(t, "application/json", ct)
}

func TestNormalizePath_StripsQueryAndTrailingSlash(t *testing.T) {
	path, query := NormalizePath("/v1/models/?foo=bar")
	assert.Equal(t, "/v1/models", path)
	assert.Equal(t, "foo=bar", query)
}

func TestNormalizePath_PreservesRoot(t *testing.T) {
	path, _ := NormalizePath("/")
	assert.Equal(t, "/", path)
}

func TestNormalizePath_Idempotent(t *testing.T) {
	once, _ := NormalizePath("/api/tags///")
	twice, _ := NormalizePath(once)
	assert.Equal(t, once, twice)
}
