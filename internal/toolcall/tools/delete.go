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

// DeleteFile removes the file or directory at path. Directories require
// recursive=true. Returns {path, deleted, was_directory}.
func (e *Executor) DeleteFile(args map[string]any) map[string]any {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return errorResult("path is required")
	}
	resolved, err := e.cfg.Resolve(path)
	if err != nil {
		return errorResult(err.Error())
	}

	info, err := os.Lstat(resolved)
	if err != nil {
		return errorResult(err.Error())
	}
	isDir := info.IsDir()
	recursive := boolArg(args, "recursive")

	if isDir {
		if !recursive {
			return errorResult("path is a directory; set recursive=true to delete it")
		}
		if err := os.RemoveAll(resolved); err != nil {
			return errorResult(err.Error())
		}
	} else {
		if err := os.Remove(resolved); err != nil {
			return errorResult(err.Error())
		}
	}

	return map[string]any{
		"path":          resolved,
		"deleted":       true,
		"was_directory": isDir,
	}
}
