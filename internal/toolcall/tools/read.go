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
	"io"
	"os"
)

// ReadFile reads up to max_bytes (default DefaultMaxReadBytes) of the file
// at path and returns {path, content, size, truncated}.
func (e *Executor) ReadFile(args map[string]any) map[string]any {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return errorResult("path is required")
	}
	resolved, err := e.cfg.Resolve(path)
	if err != nil {
		return errorResult(err.Error())
	}

	maxBytes := intArg(args, "max_bytes", DefaultMaxReadBytes)
	if maxBytes <= 0 {
		maxBytes = DefaultMaxReadBytes
	}

	f, err := os.Open(resolved)
	if err != nil {
		return errorResult(err.Error())
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errorResult(err.Error())
	}
	if info.IsDir() {
		return errorResult("path is a directory")
	}

	limited := io.LimitReader(f, int64(maxBytes)+1)
	content, err := io.ReadAll(limited)
	if err != nil {
		return errorResult(err.Error())
	}

	truncated := false
	if len(content) > maxBytes {
		content = content[:maxBytes]
		truncated = true
	}

	return map[string]any{
		"path":      resolved,
		"content":   string(content),
		"size":      info.Size(),
		"truncated": truncated,
	}
}
