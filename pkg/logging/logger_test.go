// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(99), slog.LevelInfo},
	}

	for _, tt := range tests {
		got := tt.level.toSlogLevel()
		if got != tt.want {
			t.Errorf("Level(%d).toSlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew_FiltersBelowConfiguredLevel(t *testing.T) {
	logger := New(Config{Level: LevelWarn, Service: "test"})

	if logger.Slog().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected Info to be filtered out when Level is Warn")
	}
	if !logger.Slog().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected Warn to be enabled when Level is Warn")
	}
	if !logger.Slog().Enabled(context.Background(), slog.LevelError) {
		t.Error("expected Error to be enabled when Level is Warn")
	}
}

func TestNew_Quiet(t *testing.T) {
	// Quiet loggers must not panic or block; there is nothing further
	// to assert since the destination is io.Discard.
	logger := New(Config{Level: LevelDebug, Quiet: true})
	logger.Info("this goes nowhere")
}

func TestLogger_LevelMethodsDoNotPanic(t *testing.T) {
	logger := New(Config{Level: LevelDebug, Service: "test", Quiet: true})

	logger.Debug("debug message", "k", "v")
	logger.Info("info message", "k", "v")
	logger.Warn("warn message", "k", "v")
	logger.Error("error message", "k", "v")
}

func TestLogger_With(t *testing.T) {
	base := New(Config{Level: LevelInfo, Service: "test", Quiet: true})
	child := base.With("request_id", "abc123")

	if child == base {
		t.Error("With must return a distinct Logger, not mutate the receiver")
	}
	// The parent's handler must be unaffected by attributes added to
	// the child.
	if base.Slog() == child.Slog() {
		t.Error("With must not share the underlying slog.Logger with its parent")
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger.Slog() == nil {
		t.Fatal("Default() returned a Logger with a nil slog.Logger")
	}
	if !logger.Slog().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Default() logger should have Info enabled")
	}
	if logger.Slog().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Default() logger should not have Debug enabled")
	}
}
