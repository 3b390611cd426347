// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package toolcall

import "strings"

// catalogDoc pairs a built-in tool name with the one-line parameter
// docstring shown to the model in the synthetic system message.
type catalogDoc struct {
	name string
	doc  string
}

var builtinCatalog = []catalogDoc{
	{"read_file", "path (string, required), max_bytes (int, optional, default 1048576)"},
	{"write_file", "path (string, required), content (string, required)"},
	{"edit_file", "path (string, required), old_text (string) or line_number (int) — exactly one, new_text (string, required)"},
	{"delete_file", "path (string, required), recursive (bool, optional)"},
	{"move_file", "source_path (string, required), destination_path (string, required)"},
	{"copy_file", "source_path (string, required), destination_path (string, required)"},
	{"list_directory", "path (string, required), recursive (bool, optional), include_hidden (bool, optional)"},
	{"create_directory", "path (string, required)"},
	{"check_path", "path (string, required)"},
}

// systemPromptForTools builds the synthetic system message prepended to
// the conversation whenever tool definitions are present: it states the
// envelope format the model must reply with and enumerates the built-in
// tool catalog with parameter docstrings.
func systemPromptForTools() string {
	var b strings.Builder
	b.WriteString(`To call a tool, reply ONLY with a single JSON object in this exact format: {"tool_call": {"name": "<tool-name>", "arguments": { ... }}}`)
	b.WriteString("\n\nAvailable tools:\n")
	for _, t := range builtinCatalog {
		b.WriteString("- ")
		b.WriteString(t.name)
		b.WriteString(": ")
		b.WriteString(t.doc)
		b.WriteString("\n")
	}
	return b.String()
}
