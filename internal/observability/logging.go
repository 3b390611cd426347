// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability wires up the gateway's ambient concerns: one
// structured logger per component, an OTel tracer provider with a
// graceful no-op fallback, and a Prometheus registry behind
// /debug/metrics.
package observability

import (
	"log/slog"

	"github.com/AleutianAI/aigateway/pkg/logging"
)

// MaxLoggedBodyBytes is the truncation ceiling applied to request/response
// bodies in log fields, unless full logging is enabled.
const MaxLoggedBodyBytes = 2 << 10 // 2 KiB

// NewComponentLogger returns a JSON-to-stdout *slog.Logger tagged with
// component, matching the teacher's one-logger-per-component convention
// (see pkg/logging). cmd/gateway creates one logger, tagged "gateway",
// and hands it to the handlers and the server.
func NewComponentLogger(component string) *slog.Logger {
	return logging.New(logging.Config{
		Level:   logging.LevelInfo,
		Service: component,
		JSON:    true,
	}).Slog()
}

// TruncateForLog shortens body to MaxLoggedBodyBytes for inclusion in a
// log field, unless fullLogging is set (PI_DEBUG_FULL_LOG=1 or the
// persisted debugFullRequestLog setting). The original body passed to
// request processing is never affected — only what gets logged.
func TruncateForLog(body string, fullLogging bool) string {
	if fullLogging || len(body) <= MaxLoggedBodyBytes {
		return body
	}
	return body[:MaxLoggedBodyBytes] + "...(truncated)"
}
