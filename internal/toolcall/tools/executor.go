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

// Executor dispatches a tool name + argument map to the matching built-in
// file operation. It is safe for concurrent use: every method resolves and
// validates its own path and carries no mutable state beyond the shared,
// read-only Config.
type Executor struct {
	cfg *Config
}

// NewExecutor builds an Executor sandboxed to cfg.
func NewExecutor(cfg *Config) *Executor {
	return &Executor{cfg: cfg}
}

// Dispatch routes name to its built-in implementation. An unrecognized
// name returns {error:"unknown tool: <name>"}, matching every other tool's
// error-as-value contract.
func (e *Executor) Dispatch(name string, args map[string]any) map[string]any {
	switch name {
	case "read_file":
		return e.ReadFile(args)
	case "write_file":
		return e.WriteFile(args)
	case "edit_file":
		return e.EditFile(args)
	case "delete_file":
		return e.DeleteFile(args)
	case "move_file":
		return e.MoveFile(args)
	case "copy_file":
		return e.CopyFile(args)
	case "list_directory":
		return e.ListDirectory(args)
	case "create_directory":
		return e.CreateDirectory(args)
	case "check_path":
		return e.CheckPath(args)
	default:
		return errorResult("unknown tool: " + name)
	}
}
