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
)

// MaxWriteContentBytes bounds write_file's content size to guard against
// runaway model output filling the disk.
const MaxWriteContentBytes = 10 << 20

// WriteFile creates or overwrites path with content and returns
// {path, bytes_written, created}.
func (e *Executor) WriteFile(args map[string]any) map[string]any {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return errorResult("path is required")
	}
	content, ok := stringArg(args, "content")
	if !ok {
		return errorResult("content is required")
	}
	if len(content) > MaxWriteContentBytes {
		return errorResult("content exceeds max size")
	}

	resolved, err := e.cfg.Resolve(path)
	if err != nil {
		return errorResult(err.Error())
	}

	_, statErr := os.Stat(resolved)
	created := os.IsNotExist(statErr)

	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return errorResult(err.Error())
	}

	return map[string]any{
		"path":          resolved,
		"bytes_written": len(content),
		"created":       created,
	}
}
