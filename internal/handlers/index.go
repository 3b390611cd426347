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

import "github.com/AleutianAI/aigateway/internal/httpserver"

// handleIndex answers GET / with a terse plaintext banner confirming
// the gateway is up, for a human pointing a browser at the port.
func (h *Handlers) handleIndex(req *httpserver.Request) *httpserver.Response {
	h.observe("/", req.Method)
	return httpserver.NewText(200, "aigateway is running\n")
}
