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

import "encoding/json"

// ToolChoiceKind tags the variant of ToolChoice.
type ToolChoiceKind int

const (
	ToolChoiceAuto ToolChoiceKind = iota
	ToolChoiceNone
	ToolChoiceRequired
	ToolChoiceFunction
)

// ToolChoice is the tagged union the `tool_choice` field decodes to:
// either the bare strings "none"/"auto"/"required", or an object
// {"type":"function","function":{"name":...}} pinning a specific tool.
type ToolChoice struct {
	Kind         ToolChoiceKind
	FunctionName string
}

type toolChoiceObject struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

// ParseToolChoice decodes raw into a ToolChoice. Anything it cannot
// recognize — including an absent field — decodes to ToolChoiceAuto,
// matching the wire contract's "anything else -> auto" rule.
func ParseToolChoice(raw json.RawMessage) ToolChoice {
	if len(raw) == 0 {
		return ToolChoice{Kind: ToolChoiceAuto}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch s {
		case "none":
			return ToolChoice{Kind: ToolChoiceNone}
		case "required":
			return ToolChoice{Kind: ToolChoiceRequired}
		default:
			return ToolChoice{Kind: ToolChoiceAuto}
		}
	}

	var obj toolChoiceObject
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Type == "function" && obj.Function.Name != "" {
		return ToolChoice{Kind: ToolChoiceFunction, FunctionName: obj.Function.Name}
	}

	return ToolChoice{Kind: ToolChoiceAuto}
}
