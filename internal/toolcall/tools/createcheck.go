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

import "os"

// CreateDirectory makes path, including any missing parents. Returns
// {path, created, already_exists}.
func (e *Executor) CreateDirectory(args map[string]any) map[string]any {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return errorResult("path is required")
	}
	resolved, err := e.cfg.Resolve(path)
	if err != nil {
		return errorResult(err.Error())
	}

	if info, statErr := os.Stat(resolved); statErr == nil {
		if !info.IsDir() {
			return errorResult("path exists and is not a directory")
		}
		return map[string]any{
			"path":           resolved,
			"created":        false,
			"already_exists": true,
		}
	}

	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return errorResult(err.Error())
	}

	return map[string]any{
		"path":           resolved,
		"created":        true,
		"already_exists": false,
	}
}

// CheckPath reports whether path exists and, if so, what it is. Returns
// {path, exists, is_directory, is_file, size?}.
func (e *Executor) CheckPath(args map[string]any) map[string]any {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return errorResult("path is required")
	}
	resolved, err := e.cfg.Resolve(path)
	if err != nil {
		return errorResult(err.Error())
	}

	info, statErr := os.Stat(resolved)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return map[string]any{
				"path":         resolved,
				"exists":       false,
				"is_directory": false,
				"is_file":      false,
			}
		}
		return errorResult(statErr.Error())
	}

	result := map[string]any{
		"path":         resolved,
		"exists":       true,
		"is_directory": info.IsDir(),
		"is_file":      !info.IsDir(),
	}
	if !info.IsDir() {
		result["size"] = info.Size()
	}
	return result
}
