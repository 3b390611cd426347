// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package budget shrinks an oversized chat history down to a fixed
// input-token ceiling, preserving the most recent turns verbatim and
// summarizing everything older through a generator.Facade.
package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/AleutianAI/aigateway/internal/generator"
)

// Message is the minimal shape the budgeter needs from a chat turn.
// internal/wireproto.ChatMessage satisfies this by field name.
type Message struct {
	Role    string
	Content string
}

// Generator is the narrow collaborator the budgeter needs: a single
// instructions+prompt call returning text. generator.Facade satisfies
// this directly.
type Generator interface {
	Generate(ctx context.Context, instructions, prompt string) string
}

const (
	maxContextTokens = 4000
	reserveForOutput = 512
	// Budget is max(1000, maxContextTokens-reserveForOutput).
	Budget = 3488

	verbatimRecentCount = 6
	olderClampChars      = 6000
	firstPassSummaryCap  = 1500
	secondPassSummaryCap = 800
)

// EstimateTokens applies the ⌈chars/4⌉ heuristic used throughout the
// budgeter instead of a real tokenizer.
func EstimateTokens(s string) int {
	return (len([]rune(s)) + 3) / 4
}

// formatMessages renders messages as "<role>: <content>" lines joined
// by newlines, with a trailing "assistant:" line to prompt completion.
func formatMessages(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("assistant:")
	return b.String()
}

// clampHeadTail keeps the first half and last half of s, up to max
// total characters, joined by a visible elision marker. If s already
// fits, it is returned unchanged.
func clampHeadTail(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	half := max / 2
	head := string(runes[:half])
	tail := string(runes[len(runes)-half:])
	return head + "\n…\n" + tail
}

// Build produces a single prompt string for messages that fits within
// Budget input tokens, compressing older turns via summarization when
// the full history does not fit.
func Build(ctx context.Context, gen Generator, messages []Message) string {
	full := formatMessages(messages)
	if EstimateTokens(full) <= Budget {
		return full
	}

	recentCount := verbatimRecentCount
	if recentCount > len(messages) {
		recentCount = len(messages)
	}
	older := messages[:len(messages)-recentCount]
	recent := messages[len(messages)-recentCount:]

	olderText := clampHeadTail(formatMessages(older), olderClampChars)
	recentText := formatMessages(recent)

	summary := summarize(ctx, gen, olderText, recentText, firstPassSummaryCap)
	composed := compose(summary, recentText)

	if EstimateTokens(composed) <= Budget {
		return composed
	}

	resummary := summarize(ctx, gen, summary, recentText, secondPassSummaryCap)
	return compose(resummary, recentText)
}

func compose(summary, recentText string) string {
	return fmt.Sprintf("system: Conversation summary (compressed): \n%s\n%s", summary, recentText)
}

func summarize(ctx context.Context, gen Generator, text, recentText string, capChars int) string {
	instructions := fmt.Sprintf(
		"Summarize the following conversation excerpt in at most %d characters, preserving technical detail relevant to the latest user request.",
		capChars,
	)
	if gen != nil {
		out := gen.Generate(ctx, instructions, text)
		if strings.TrimSpace(out) != "" && out != generator.FallbackText {
			return clampChars(out, capChars)
		}
	}
	return clampChars(naiveExtract(text), capChars)
}

// naiveExtract is the fallback used when the generator is unavailable
// or returns nothing usable: the first 8 sentences, an elision marker,
// then the last 4 sentences.
func naiveExtract(text string) string {
	sentences := splitSentences(text)
	if len(sentences) <= 12 {
		return strings.Join(sentences, " ")
	}
	head := sentences[:8]
	tail := sentences[len(sentences)-4:]
	return strings.Join(head, " ") + "… " + strings.Join(tail, " ")
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampChars(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
