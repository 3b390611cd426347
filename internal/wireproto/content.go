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

import (
	"encoding/json"
	"strings"
)

// contentPart is a single structured content part, e.g.
// {"type":"text","text":"hello"}. Non-text parts (image_url and
// friends) are accepted on the wire but ignored when flattening.
type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// FlattenContent reduces any of the four shapes the OpenAI chat wire
// format allows for a message's `content` field down to one string:
//
//   - plain string: returned as-is.
//   - array of strings: joined with "\n".
//   - array of structured parts {type, text?}: text fields concatenated,
//     non-text parts ignored.
//   - a single structured part: its text field, or "" if not text.
//
// raw must be the exact JSON bytes of the content field (including
// surrounding quotes for a string, or brackets for an array).
func FlattenContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var asPart contentPart
	if err := json.Unmarshal(raw, &asPart); err == nil && asPart.Type != "" {
		return asPart.Text
	}

	var asArray []json.RawMessage
	if err := json.Unmarshal(raw, &asArray); err == nil {
		return flattenArray(asArray)
	}

	return ""
}

func flattenArray(items []json.RawMessage) string {
	var strs []string
	var parts []string
	allStrings := true
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			strs = append(strs, s)
			continue
		}
		allStrings = false
		var p contentPart
		if err := json.Unmarshal(item, &p); err == nil {
			parts = append(parts, p.Text)
		}
	}
	if allStrings {
		return strings.Join(strs, "\n")
	}
	return strings.Join(parts, "")
}
