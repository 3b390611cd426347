// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package generator wraps an opaque on-device text-generation backend
// behind a single narrow interface, and layers an availability gate,
// fallback response, admission concurrency limit, and tracing around it.
//
// # Architecture
//
// Generator is the contract every backend must satisfy: a single
// instructions+prompt call that returns text, plus an availability
// probe. Facade is the only thing the rest of the gateway talks to —
// it never assumes anything about what is behind Generator.
//
// # Thread Safety
//
// Facade is safe for concurrent use; callers do not need their own
// locking around Generate.
package generator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("aigateway.generator")

// Generator is the opaque text-generation backend the gateway drives.
// Implementations may be remote, local, or a test double; the Facade
// only depends on this interface.
//
// # Description
//
// Generate produces one bounded completion for a single instructions
// and prompt pair. There is no conversation state carried inside a
// Generator between calls — any context the caller wants preserved
// must be folded into prompt by the caller (see internal/budget).
//
// # Thread Safety
//
// Implementations must be safe for concurrent calls; the Facade may
// invoke Generate from multiple connection goroutines simultaneously,
// subject to its admission semaphore.
type Generator interface {
	// Generate produces text from instructions (a system-style framing
	// string, possibly empty) and prompt (the user-facing content).
	Generate(ctx context.Context, instructions, prompt string) (string, error)

	// Available reports whether the backend can currently serve
	// requests. The Facade consults this before each call and on
	// failure to decide whether to use the fallback string.
	Available(ctx context.Context) bool
}

// FallbackText is returned by Facade.Generate when the underlying
// Generator is unavailable or errors.
const FallbackText = "I'm unable to generate a response right now. Please try again in a moment."

// Facade wraps a Generator with an availability gate, a graceful
// fallback, an admission semaphore bounding concurrent calls into the
// backend, and an OpenTelemetry span per call.
type Facade struct {
	backend Generator
	admit   chan struct{}
}

// New returns a Facade over backend. concurrency bounds how many
// Generate calls may be in flight against backend at once; values <= 0
// are treated as 1, matching on-device backends that can only serve
// one inference at a time.
func New(backend Generator, concurrency int) *Facade {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Facade{
		backend: backend,
		admit:   make(chan struct{}, concurrency),
	}
}

// Generate calls the backend, serialized through the admission
// semaphore and traced with a span per call. If the backend is
// unavailable, or returns an error, Generate returns FallbackText —
// callers always get text to show the user.
func (f *Facade) Generate(ctx context.Context, instructions, prompt string) string {
	ctx, span := tracer.Start(ctx, "generator.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("generator.instructions_len", len(instructions)),
		attribute.Int("generator.prompt_len", len(prompt)),
	)

	if !f.backend.Available(ctx) {
		span.SetStatus(codes.Error, "backend unavailable")
		return FallbackText
	}

	select {
	case f.admit <- struct{}{}:
		defer func() { <-f.admit }()
	case <-ctx.Done():
		span.SetStatus(codes.Error, "context cancelled awaiting admission")
		return FallbackText
	}

	text, err := f.backend.Generate(ctx, instructions, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return FallbackText
	}
	span.SetAttributes(attribute.Int("generator.output_len", len(text)))
	return text
}

// Available reports whether the wrapped backend is currently usable.
func (f *Facade) Available(ctx context.Context) bool {
	return f.backend.Available(ctx)
}

var _ Generator = (*httpBackend)(nil)
