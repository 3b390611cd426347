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
	"strings"

	"github.com/AleutianAI/aigateway/internal/httpserver"
	"github.com/AleutianAI/aigateway/internal/wireproto"
)

// handleModelList answers GET /v1/models and GET /api/models with the
// single-entry model listing this gateway ever advertises.
func (h *Handlers) handleModelList(req *httpserver.Request) *httpserver.Response {
	h.observe(req.Path, req.Method)
	body, _ := json.Marshal(wireproto.BuildModelList())
	return httpserver.NewJSON(200, body)
}

// handleModelGet answers GET /v1/models/{id} and GET /api/models/{id}.
// It is registered as a prefix route; the id is whatever follows the
// last "/" in the path.
func (h *Handlers) handleModelGet(req *httpserver.Request) *httpserver.Response {
	h.observe(req.Path, req.Method)
	id := req.Path
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}

	model, ok := wireproto.LookupModel(id)
	if !ok {
		return modelNotFound()
	}
	body, _ := json.Marshal(model)
	return httpserver.NewJSON(200, body)
}
