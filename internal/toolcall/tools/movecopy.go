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

// MoveFile renames source_path to destination_path. Returns
// {path, success, source_path, destination_path}.
func (e *Executor) MoveFile(args map[string]any) map[string]any {
	src, dst, err := e.resolveSrcDst(args)
	if err != nil {
		return errorResult(err.Error())
	}

	if err := os.Rename(src, dst); err != nil {
		return errorResult(err.Error())
	}

	return map[string]any{
		"path":             dst,
		"success":          true,
		"source_path":      src,
		"destination_path": dst,
	}
}

// CopyFile copies source_path to destination_path. Returns
// {path, success, source_path, destination_path, bytes_written}.
func (e *Executor) CopyFile(args map[string]any) map[string]any {
	src, dst, err := e.resolveSrcDst(args)
	if err != nil {
		return errorResult(err.Error())
	}

	in, err := os.Open(src)
	if err != nil {
		return errorResult(err.Error())
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errorResult(err.Error())
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return errorResult(err.Error())
	}

	return map[string]any{
		"path":             dst,
		"success":          true,
		"source_path":      src,
		"destination_path": dst,
		"bytes_written":    n,
	}
}

func (e *Executor) resolveSrcDst(args map[string]any) (src, dst string, err error) {
	srcPath, ok := stringArg(args, "source_path")
	if !ok || srcPath == "" {
		return "", "", errMissingArg("source_path")
	}
	dstPath, ok := stringArg(args, "destination_path")
	if !ok || dstPath == "" {
		return "", "", errMissingArg("destination_path")
	}
	src, err = e.cfg.Resolve(srcPath)
	if err != nil {
		return "", "", err
	}
	dst, err = e.cfg.Resolve(dstPath)
	if err != nil {
		return "", "", err
	}
	return src, dst, nil
}
