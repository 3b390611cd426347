// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command gateway starts the on-device LLM HTTP gateway: an
// OpenAI-compatible and Ollama-compatible wire surface over a local
// generation backend.
//
// # Environment Variables
//
//   - PI_PORT: preferred HTTP listen port (default: 11434)
//   - PI_GENERATOR_BACKEND_URL: base URL of the llama.cpp-style
//     completion backend (default: http://127.0.0.1:8080)
//   - PI_GENERATOR_CONCURRENCY: max concurrent calls into the backend
//     (default: 1)
//   - PI_SETTINGS_DB: path to the settings sqlite database, or
//     ":memory:" (default: ./gateway-settings.db)
//   - PI_WORKSPACE_ROOT: default base directory for tool file paths
//     (default: current working directory)
//   - PI_ALLOWED_ROOTS: comma-separated additional sandbox roots
//   - PI_ALLOW_ALL_PATHS: "1" disables tool path containment (development only)
//   - PI_DEBUG_FULL_LOG: "1" disables log body truncation
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector (optional)
//
// # Usage
//
//	go build -o gateway ./cmd/gateway
//	./gateway
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/AleutianAI/aigateway/internal/generator"
	"github.com/AleutianAI/aigateway/internal/handlers"
	"github.com/AleutianAI/aigateway/internal/httpserver"
	"github.com/AleutianAI/aigateway/internal/observability"
	"github.com/AleutianAI/aigateway/internal/settings"
	"github.com/AleutianAI/aigateway/internal/toolcall/tools"
)

func main() {
	log := observability.NewComponentLogger("gateway")

	port := getEnvInt("PI_PORT", 11434)
	backendURL := getEnvString("PI_GENERATOR_BACKEND_URL", "http://127.0.0.1:8080")
	concurrency := getEnvInt("PI_GENERATOR_CONCURRENCY", 1)
	settingsDB := getEnvString("PI_SETTINGS_DB", "./gateway-settings.db")

	workspaceRoot := getEnvString("PI_WORKSPACE_ROOT", mustGetwd())
	allowedRoots := splitNonEmpty(os.Getenv("PI_ALLOWED_ROOTS"), ",")
	allowAllPaths := os.Getenv("PI_ALLOW_ALL_PATHS") == "1"

	log.Info("starting gateway",
		"port", port,
		"backend_url", backendURL,
		"generator_concurrency", concurrency,
		"settings_db", settingsDB,
		"workspace_root", workspaceRoot,
	)

	shutdownTracing := observability.InitTracing(context.Background(), "aigateway", log)
	defer shutdownTracing(context.Background())

	store, err := settings.Open(settingsDB)
	if err != nil {
		log.Warn("settings store degraded to in-memory defaults", "error", err)
	}

	metrics := observability.NewMetrics()

	backend := generator.NewHTTPBackend(backendURL)
	gen := generator.New(backend, concurrency)

	toolCfg := tools.NewConfig(workspaceRoot, allowedRoots, allowAllPaths)
	executor := tools.NewExecutor(toolCfg)

	h := handlers.New(gen, executor, store, metrics, log)

	router := httpserver.NewRouter()
	h.Register(router)

	server := httpserver.NewServer(router, log)
	if err := server.Start(port); err != nil {
		log.Error("failed to start listener", "error", err)
		os.Exit(1)
	}

	select {}
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("gateway: cannot determine working directory: %v", err)
	}
	return wd
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
