// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package multisegment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGen struct {
	segments []string
	calls    int
}

func (g *scriptedGen) Generate(ctx context.Context, instructions, prompt string) string {
	if g.calls >= len(g.segments) {
		return ""
	}
	s := g.segments[g.calls]
	g.calls++
	return s
}

func TestRun_StopsOnShortFinalSegment(t *testing.T) {
	gen := &scriptedGen{segments: []string{
		strings.Repeat("a", 1400),
		strings.Repeat("b", 1400),
		strings.Repeat("c", 100), // short: triggers stop
	}}
	var segments []string
	Run(context.Background(), gen, DefaultConfig(), "base prompt", func(s string) {
		segments = append(segments, s)
	})
	require.Len(t, segments, 3)
	assert.Equal(t, 3, gen.calls)
}

func TestRun_StopsAtMaxSegments(t *testing.T) {
	segs := make([]string, 10)
	for i := range segs {
		segs[i] = strings.Repeat("x", 1400)
	}
	gen := &scriptedGen{segments: segs}
	var count int
	Run(context.Background(), gen, DefaultConfig(), "base", func(s string) {
		count++
	})
	assert.Equal(t, 6, count)
}

func TestRun_EmptyGenerationEmitsFallbackAndStops(t *testing.T) {
	gen := &scriptedGen{segments: []string{""}}
	var segments []string
	Run(context.Background(), gen, DefaultConfig(), "base", func(s string) {
		segments = append(segments, s)
	})
	require.Len(t, segments, 1)
	assert.Contains(t, segments[0], "problem generating")
}

func TestRun_Round2IncludesTailInInstructions(t *testing.T) {
	var capturedInstructions []string
	gen := &capturingGen{
		onGenerate: func(instructions, prompt string) string {
			capturedInstructions = append(capturedInstructions, instructions)
			if len(capturedInstructions) == 1 {
				return strings.Repeat("a", 1400)
			}
			return strings.Repeat("b", 100)
		},
	}
	Run(context.Background(), gen, DefaultConfig(), "base", func(s string) {})
	require.Len(t, capturedInstructions, 2)
	assert.NotContains(t, capturedInstructions[0], "tail of what has been written")
	assert.Contains(t, capturedInstructions[1], "tail of what has been written")
}

type capturingGen struct {
	onGenerate func(instructions, prompt string) string
}

func (g *capturingGen) Generate(ctx context.Context, instructions, prompt string) string {
	return g.onGenerate(instructions, prompt)
}
