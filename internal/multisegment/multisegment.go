// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package multisegment chains bounded generator rounds into one
// long-form streamed answer, emitting each round as a single event
// instead of token-by-token.
//
// # Description
//
// Each round is a fresh, stateless call into the generator — nothing
// about the conversation is carried inside the model between rounds.
// Continuity instead comes from re-sending the base prompt plus a tail
// of the text generated so far.
package multisegment

import (
	"context"
	"strconv"
	"strings"
)

// Config holds the streamer's tuning parameters. Defaults returns the
// values this gateway ships with; callers should not need to override
// them outside tests.
type Config struct {
	SegmentChars int
	MaxSegments  int
}

// DefaultConfig returns the streamer's production tuning: 1400
// characters per segment, at most 6 segments.
func DefaultConfig() Config {
	return Config{SegmentChars: 1400, MaxSegments: 6}
}

// Generator is the narrow collaborator the streamer needs.
type Generator interface {
	Generate(ctx context.Context, instructions, prompt string) string
}

// Emit is called once per generated segment. When a round returns empty
// text, Run calls Emit exactly once more with a friendly fallback segment
// before terminating.
type Emit func(segment string)

// Run streams a long-form answer by chaining bounded rounds. basePrompt
// is the output of the context budgeter. Each segment is passed to
// emit as soon as it is generated; Run returns once the termination
// heuristic fires or an error forces early termination.
func Run(ctx context.Context, gen Generator, cfg Config, basePrompt string, emit Emit) {
	var cumulative strings.Builder

	for round := 1; round <= cfg.MaxSegments; round++ {
		prompt := basePrompt
		instructions := "Continue succinctly, aim for roughly " + strconv.Itoa(cfg.SegmentChars) + " characters, do not repeat yourself."
		if round > 1 {
			prompt = basePrompt + "\n\nassistant:"
			instructions += " Here is the tail of what has been written so far, for continuity:\n" + tail(cumulative.String(), 1500)
		}

		segment := gen.Generate(ctx, instructions, prompt)
		if segment == "" {
			emit(fallbackSegment())
			return
		}

		cumulative.WriteString(segment)
		emit(segment)

		if shouldStop(cumulative.Len(), round, cfg.SegmentChars) {
			return
		}
	}
}

// shouldStop implements the short-final-segment termination heuristic:
// stop once the cumulative length falls short of what a full-length
// round sequence would have produced by now.
func shouldStop(cumulativeLen, round, segmentChars int) bool {
	threshold := float64(segmentChars)*(float64(round)-1) + 0.6*float64(segmentChars)
	return float64(cumulativeLen) < threshold
}

func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func fallbackSegment() string {
	return "I ran into a problem generating the rest of this response. Here's what I have so far."
}

