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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T) (*Executor, string) {
	t.Helper()
	root := t.TempDir()
	cfg := NewConfig(root, nil, false)
	return NewExecutor(cfg), root
}

func TestWriteThenReadFile_RoundTrips(t *testing.T) {
	e, _ := newTestExecutor(t)

	writeResult := e.Dispatch("write_file", map[string]any{
		"path":    "notes.txt",
		"content": "hello world",
	})
	assert.Equal(t, len("hello world"), writeResult["bytes_written"])
	assert.Equal(t, true, writeResult["created"])

	readResult := e.Dispatch("read_file", map[string]any{"path": "notes.txt"})
	assert.Equal(t, "hello world", readResult["content"])
	assert.Equal(t, false, readResult["truncated"])
}

func TestReadFile_MissingPathIsErrorValue(t *testing.T) {
	e, _ := newTestExecutor(t)
	result := e.Dispatch("read_file", map[string]any{})
	require.Contains(t, result, "error")
}

func TestReadFile_OutsideSandboxIsErrorValue(t *testing.T) {
	e, _ := newTestExecutor(t)
	result := e.Dispatch("read_file", map[string]any{"path": "/etc/passwd"})
	require.Contains(t, result, "error")
}

func TestEditFile_OldTextReplacesAllOccurrences(t *testing.T) {
	e, root := newTestExecutor(t)
	path := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("foo bar foo"), 0o644))

	result := e.Dispatch("edit_file", map[string]any{
		"path":     "a.txt",
		"old_text": "foo",
		"new_text": "baz",
	})
	assert.Equal(t, true, result["success"])
	assert.Equal(t, 2, result["changes_count"])

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "baz bar baz", string(content))
}

func TestEditFile_LineNumberSplicesLine(t *testing.T) {
	e, root := newTestExecutor(t)
	path := filepath.Join(root, "b.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree"), 0o644))

	result := e.Dispatch("edit_file", map[string]any{
		"path":        "b.txt",
		"line_number": float64(2),
		"new_text":    "TWO",
	})
	assert.Equal(t, true, result["success"])

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\nTWO\nthree", string(content))
}

func TestEditFile_BothOldTextAndLineNumberIsError(t *testing.T) {
	e, root := newTestExecutor(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), []byte("x"), 0o644))

	result := e.Dispatch("edit_file", map[string]any{
		"path":        "c.txt",
		"old_text":    "x",
		"line_number": float64(1),
		"new_text":    "y",
	})
	require.Contains(t, result, "error")
}

func TestDeleteFile_DirectoryRequiresRecursive(t *testing.T) {
	e, root := newTestExecutor(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	result := e.Dispatch("delete_file", map[string]any{"path": "sub"})
	require.Contains(t, result, "error")

	result = e.Dispatch("delete_file", map[string]any{"path": "sub", "recursive": true})
	assert.Equal(t, true, result["deleted"])
	assert.Equal(t, true, result["was_directory"])
}

func TestMoveFile_RelocatesContent(t *testing.T) {
	e, root := newTestExecutor(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "src.txt"), []byte("payload"), 0o644))

	result := e.Dispatch("move_file", map[string]any{
		"source_path":      "src.txt",
		"destination_path": "dst.txt",
	})
	assert.Equal(t, true, result["success"])
	_, err := os.Stat(filepath.Join(root, "src.txt"))
	assert.True(t, os.IsNotExist(err))
	content, err := os.ReadFile(filepath.Join(root, "dst.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestCopyFile_PreservesSource(t *testing.T) {
	e, root := newTestExecutor(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "src.txt"), []byte("payload"), 0o644))

	result := e.Dispatch("copy_file", map[string]any{
		"source_path":      "src.txt",
		"destination_path": "dst.txt",
	})
	assert.Equal(t, true, result["success"])
	_, err := os.Stat(filepath.Join(root, "src.txt"))
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(root, "dst.txt"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestListDirectory_NonRecursiveSkipsHiddenByDefault(t *testing.T) {
	e, root := newTestExecutor(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "visible.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0o644))

	result := e.Dispatch("list_directory", map[string]any{"path": "."})
	items := result["items"].([]dirItem)
	require.Len(t, items, 1)
	assert.Equal(t, "visible.txt", items[0].Name)
}

func TestListDirectory_IncludeHidden(t *testing.T) {
	e, root := newTestExecutor(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0o644))

	result := e.Dispatch("list_directory", map[string]any{"path": ".", "include_hidden": true})
	assert.Equal(t, 1, result["count"])
}

func TestCreateDirectory_IdempotentOnExisting(t *testing.T) {
	e, _ := newTestExecutor(t)

	first := e.Dispatch("create_directory", map[string]any{"path": "nested/dir"})
	assert.Equal(t, true, first["created"])
	assert.Equal(t, false, first["already_exists"])

	second := e.Dispatch("create_directory", map[string]any{"path": "nested/dir"})
	assert.Equal(t, false, second["created"])
	assert.Equal(t, true, second["already_exists"])
}

func TestCheckPath_NonexistentReportsExistsFalse(t *testing.T) {
	e, _ := newTestExecutor(t)
	result := e.Dispatch("check_path", map[string]any{"path": "nope.txt"})
	assert.Equal(t, false, result["exists"])
}

func TestCheckPath_FileReportsSize(t *testing.T) {
	e, root := newTestExecutor(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "f.txt"), []byte("abcd"), 0o644))

	result := e.Dispatch("check_path", map[string]any{"path": "f.txt"})
	assert.Equal(t, true, result["exists"])
	assert.Equal(t, true, result["is_file"])
	assert.Equal(t, int64(4), result["size"])
}

func TestDispatch_UnknownToolIsErrorValue(t *testing.T) {
	e, _ := newTestExecutor(t)
	result := e.Dispatch("delete_universe", map[string]any{})
	require.Contains(t, result, "error")
}

func TestConfig_AllowAllPathsBypassesContainment(t *testing.T) {
	cfg := NewConfig(t.TempDir(), nil, true)
	e := NewExecutor(cfg)
	result := e.Dispatch("check_path", map[string]any{"path": "/etc/hosts"})
	require.NotContains(t, result, "error")
}
