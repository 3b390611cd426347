// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"encoding/json"

	"github.com/AleutianAI/aigateway/internal/httpserver"
	"github.com/AleutianAI/aigateway/internal/wireproto"
)

// errorResponse builds the OpenAI-shaped error envelope both wire
// dialects use for 4xx bodies.
func errorResponse(status int, message, errType string) *httpserver.Response {
	body, _ := json.Marshal(wireproto.ErrorBody{Error: wireproto.ErrorDetail{Message: message, Type: errType}})
	return httpserver.NewJSON(status, body)
}

func badRequest(message string) *httpserver.Response {
	return errorResponse(400, message, "invalid_request_error")
}

func modelNotFound() *httpserver.Response {
	body, _ := json.Marshal(wireproto.NewModelNotFoundError())
	return httpserver.NewJSON(404, body)
}
