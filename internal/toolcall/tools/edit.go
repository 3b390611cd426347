// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tools

import (
	"os"
	"strconv"
	"strings"
)

// EditFile rewrites path by either replacing old_text with new_text
// (replacing every occurrence) or splicing new_text in at line_number
// (1-indexed). Exactly one of old_text or line_number must be provided.
// Returns {path, success, message, changes_count}.
func (e *Executor) EditFile(args map[string]any) map[string]any {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return errorResult("path is required")
	}
	newText, ok := stringArg(args, "new_text")
	if !ok {
		return errorResult("new_text is required")
	}

	resolved, err := e.cfg.Resolve(path)
	if err != nil {
		return errorResult(err.Error())
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return errorResult(err.Error())
	}
	original := string(raw)

	oldText, hasOld := stringArg(args, "old_text")
	_, hasLine := args["line_number"]

	switch {
	case hasOld && hasLine:
		return errorResult("provide exactly one of old_text or line_number")
	case hasOld:
		if oldText == "" {
			return errorResult("old_text must not be empty")
		}
		count := strings.Count(original, oldText)
		if count == 0 {
			return errorResult("old_text not found in file")
		}
		updated := strings.ReplaceAll(original, oldText, newText)
		if err := os.WriteFile(resolved, []byte(updated), 0o644); err != nil {
			return errorResult(err.Error())
		}
		return map[string]any{
			"path":           resolved,
			"success":        true,
			"message":        "replaced " + strconv.Itoa(count) + " occurrence(s)",
			"changes_count":  count,
		}
	case hasLine:
		lineNumber := intArg(args, "line_number", 0)
		lines := strings.Split(original, "\n")
		if lineNumber < 1 || lineNumber > len(lines) {
			return errorResult("line_number out of range")
		}
		lines[lineNumber-1] = newText
		updated := strings.Join(lines, "\n")
		if err := os.WriteFile(resolved, []byte(updated), 0o644); err != nil {
			return errorResult(err.Error())
		}
		return map[string]any{
			"path":          resolved,
			"success":       true,
			"message":       "replaced line " + strconv.Itoa(lineNumber),
			"changes_count": 1,
		}
	default:
		return errorResult("provide exactly one of old_text or line_number")
	}
}
