// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tools implements the sandboxed, filesystem-backed built-in tool
// catalog the gateway exposes to the model: read_file, write_file,
// edit_file, delete_file, move_file, copy_file, list_directory,
// create_directory, and check_path.
package tools

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the sandbox boundaries every tool resolves paths against.
// It is built once at process start from environment variables and shared
// by every tool instance; it carries no per-request mutable state.
type Config struct {
	// WorkspaceRoot is the default base for relative path resolution.
	WorkspaceRoot string

	// AllowedRoots is the set of prefixes a resolved path must fall under.
	// WorkspaceRoot is always included.
	AllowedRoots []string

	// AllowAllPaths disables containment checking entirely. Development only.
	AllowAllPaths bool
}

// NewConfig builds a Config from the gateway's workspace-root, allowed-roots,
// and allow-all-paths environment inputs. workspaceRoot and allowedRoots are
// expected to already be resolved (cmd/gateway reads them from the
// environment).
func NewConfig(workspaceRoot string, allowedRoots []string, allowAllPaths bool) *Config {
	roots := make([]string, 0, len(allowedRoots)+1)
	roots = append(roots, filepath.Clean(workspaceRoot))
	for _, r := range allowedRoots {
		if r == "" {
			continue
		}
		roots = append(roots, filepath.Clean(r))
	}
	return &Config{
		WorkspaceRoot: filepath.Clean(workspaceRoot),
		AllowedRoots:  roots,
		AllowAllPaths: allowAllPaths,
	}
}

// ErrOutsideSandbox is returned by Resolve when a path escapes every
// allowed root and AllowAllPaths is not set.
var ErrOutsideSandbox = errors.New("path resolves outside allowed directories")

// Resolve expands "~", resolves relative paths against WorkspaceRoot, and
// verifies the result is prefix-contained by an allowed root. It returns the
// cleaned absolute path, or ErrOutsideSandbox if containment fails.
func (c *Config) Resolve(path string) (string, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return "", err
	}

	var abs string
	if filepath.IsAbs(expanded) {
		abs = filepath.Clean(expanded)
	} else {
		abs = filepath.Clean(filepath.Join(c.WorkspaceRoot, expanded))
	}

	if c.AllowAllPaths {
		return abs, nil
	}
	for _, root := range c.AllowedRoots {
		if abs == root || strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return abs, nil
		}
	}
	return "", ErrOutsideSandbox
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
