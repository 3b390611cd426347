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

// ModelListResponse is the GET /v1/models (and /api/models mirror) body.
type ModelListResponse struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// TheModel is the single Model entity this gateway ever exposes,
// advertised as "apple.local" with a `created` timestamp pinned at
// process start.
func TheModel() Model {
	return Model{
		ID:      ModelID,
		Object:  "model",
		Created: ProcessStartUnix(),
		OwnedBy: "system",
	}
}

// BuildModelList returns the single-entry /v1/models response.
func BuildModelList() ModelListResponse {
	return ModelListResponse{Object: "list", Data: []Model{TheModel()}}
}

// LookupModel returns TheModel() if id matches the one advertised
// model id, and false otherwise — callers use the bool to decide
// between 200 and a 404 NewModelNotFoundError body.
func LookupModel(id string) (Model, bool) {
	if id != ModelID {
		return Model{}, false
	}
	return TheModel(), true
}
