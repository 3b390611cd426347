// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for Aleutian components.
//
// It wraps log/slog with a small Config surface: a minimum level, a
// service tag attached to every record, and a choice of JSON or text
// output. Each Logger built via New carries the Service name it was
// given; the gateway builds one, tagged "gateway", through
// internal/observability.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Level represents log severity, ordered Debug < Info < Warn < Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// toSlogLevel converts Level to slog.Level.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures a Logger. A zero-value Config creates a logger that
// writes Debug+ messages to stdout in text format with no service tag
// (the zero Level is LevelDebug).
type Config struct {
	// Level sets the minimum level a record must meet to be written.
	Level Level

	// Service identifies the component generating logs. Included as
	// the "service" attribute on every record emitted by the logger.
	Service string

	// JSON selects JSON output. When false, output is slog's default
	// human-readable text format.
	JSON bool

	// Quiet discards all output; useful for tests that only care
	// about a logger existing, not about what it writes.
	Quiet bool
}

// Logger wraps slog.Logger with this package's Config conventions.
//
// # Thread Safety
//
// Logger is safe for concurrent use; it only holds an immutable
// *slog.Logger.
type Logger struct {
	slog *slog.Logger
}

// New creates a Logger per config, writing to stdout (the gateway is a
// long-running service; its logs belong on stdout for a process
// supervisor or container runtime to collect, not on stderr as a CLI's
// interactive diagnostics would).
func New(config Config) *Logger {
	var out io.Writer = os.Stdout
	if config.Quiet {
		out = io.Discard
	}

	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}
	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", config.Service)})
	}
	return &Logger{slog: slog.New(handler)}
}

// Default returns a Logger with Info level, text format, and a
// "aigateway" service tag, suitable for quick ad-hoc use.
func Default() *Logger {
	return New(Config{Level: LevelInfo, Service: "aigateway"})
}

// Debug logs msg at Debug level with the given key-value attributes.
func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

// Info logs msg at Info level with the given key-value attributes.
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Warn logs msg at Warn level with the given key-value attributes.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Error logs msg at Error level with the given key-value attributes.
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// With returns a new Logger that includes args on every subsequent
// record, in addition to whatever the parent logger already carries.
// The parent logger is unchanged.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// Slog returns the underlying *slog.Logger, for callers that want
// direct access to slog features this wrapper doesn't expose.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}
