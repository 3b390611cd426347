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

import "errors"

// DefaultMaxReadBytes is read_file's default max_bytes when the caller
// omits it.
const DefaultMaxReadBytes = 1 << 20

// Catalog is the fixed, always-available built-in tool catalog, in the
// order they are documented. The synthetic system message in package
// toolcall carries its own list of these names and does not read Catalog.
var Catalog = []string{
	"read_file",
	"write_file",
	"edit_file",
	"delete_file",
	"move_file",
	"copy_file",
	"list_directory",
	"create_directory",
	"check_path",
}

// errorResult is the JSON shape every tool returns on failure: a single
// "error" key, never a transport-level error.
func errorResult(msg string) map[string]any {
	return map[string]any{"error": msg}
}

func errMissingArg(name string) error {
	return errors.New(name + " is required")
}

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func boolArg(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func intArg(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}
