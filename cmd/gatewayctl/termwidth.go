// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// defaultTerminalWidth is used whenever stdout is not a terminal (piped
// output, CI) or the ioctl call fails.
const defaultTerminalWidth = 80

// terminalWidth reports the current width of the controlling terminal
// via TIOCGWINSZ, falling back to defaultTerminalWidth when stdout
// isn't a tty.
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultTerminalWidth
	}
	return int(ws.Col)
}
