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
	"path/filepath"
	"strings"
)

// MaxListEntries caps how many entries list_directory returns, regardless
// of recursive depth, to keep the tool result bounded for the model.
const MaxListEntries = 2000

type dirItem struct {
	Name        string `json:"name"`
	IsDirectory bool   `json:"is_directory"`
	Size        int64  `json:"size"`
}

// ListDirectory lists path's contents, optionally recursively and
// optionally including dotfiles. Returns {path, items, count}.
func (e *Executor) ListDirectory(args map[string]any) map[string]any {
	path, ok := stringArg(args, "path")
	if !ok || path == "" {
		return errorResult("path is required")
	}
	resolved, err := e.cfg.Resolve(path)
	if err != nil {
		return errorResult(err.Error())
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return errorResult(err.Error())
	}
	if !info.IsDir() {
		return errorResult("path is not a directory")
	}

	recursive := boolArg(args, "recursive")
	includeHidden := boolArg(args, "include_hidden")

	var items []dirItem
	if recursive {
		err = filepath.WalkDir(resolved, func(p string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if p == resolved {
				return nil
			}
			if !includeHidden && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			rel, _ := filepath.Rel(resolved, p)
			fi, statErr := d.Info()
			var size int64
			if statErr == nil {
				size = fi.Size()
			}
			items = append(items, dirItem{Name: rel, IsDirectory: d.IsDir(), Size: size})
			if len(items) >= MaxListEntries {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			return errorResult(err.Error())
		}
	} else {
		entries, readErr := os.ReadDir(resolved)
		if readErr != nil {
			return errorResult(readErr.Error())
		}
		for _, d := range entries {
			if !includeHidden && strings.HasPrefix(d.Name(), ".") {
				continue
			}
			var size int64
			if fi, statErr := d.Info(); statErr == nil {
				size = fi.Size()
			}
			items = append(items, dirItem{Name: d.Name(), IsDirectory: d.IsDir(), Size: size})
			if len(items) >= MaxListEntries {
				break
			}
		}
	}

	return map[string]any{
		"path":  resolved,
		"items": items,
		"count": len(items),
	}
}
