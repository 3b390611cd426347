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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("86")
	warn    = lipgloss.Color("214")
	bad     = lipgloss.Color("203")
	textDim = lipgloss.Color("245")
)

type health struct {
	Status    string `json:"status"`
	Model     string `json:"model"`
	Available bool   `json:"available"`
}

// fetchHealth GETs baseURL+"/debug/health" with a short timeout so the
// CLI never hangs waiting on an unreachable gateway.
func fetchHealth(baseURL string) (health, error) {
	var h health
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(strings.TrimSuffix(baseURL, "/") + "/debug/health")
	if err != nil {
		return h, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return h, err
	}
	if resp.StatusCode != http.StatusOK {
		return h, fmt.Errorf("gatewayctl: /debug/health returned %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &h); err != nil {
		return h, fmt.Errorf("gatewayctl: decode health response: %w", err)
	}
	return h, nil
}

// fetchMetricsRaw GETs baseURL+"/debug/metrics" and returns the raw
// Prometheus text exposition, for a human glancing at counters without
// standing up a scraper.
func fetchMetricsRaw(baseURL string) (string, error) {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(strings.TrimSuffix(baseURL, "/") + "/debug/metrics")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func renderStatus(baseURL string, h health, metricsErr error, metrics string) string {
	statusColor := accent
	switch h.Status {
	case "degraded":
		statusColor = warn
	case "":
		statusColor = bad
	}

	width := terminalWidth()
	if width > 100 {
		width = 100
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(textDim).
		Padding(0, 1).
		Width(width - 2)

	title := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("aigateway status")
	target := lipgloss.NewStyle().Foreground(textDim).Render(baseURL)
	statusLine := fmt.Sprintf("status: %s   model: %s   available: %v",
		lipgloss.NewStyle().Foreground(statusColor).Bold(true).Render(h.Status),
		h.Model, h.Available)

	body := lipgloss.JoinVertical(lipgloss.Left, title, target, "", statusLine)
	if metricsErr != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", lipgloss.NewStyle().Foreground(bad).Render("metrics: "+metricsErr.Error()))
	} else if metrics != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", lipgloss.NewStyle().Foreground(textDim).Render(summarizeMetrics(metrics)))
	}

	return box.Render(body)
}

// summarizeMetrics keeps only the gateway_* counter/gauge lines, since
// the full Prometheus exposition includes a long tail of Go runtime
// metrics irrelevant to a human glancing at this CLI.
func summarizeMetrics(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "gateway_") {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "(no gateway_* metrics reported yet)"
	}
	return strings.Join(lines, "\n")
}

func runStatus(baseURL string) error {
	h, err := fetchHealth(baseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gatewayctl: ", err)
		os.Exit(1)
	}
	metrics, metricsErr := fetchMetricsRaw(baseURL)
	fmt.Println(renderStatus(baseURL, h, metricsErr, metrics))
	return nil
}

func watchHealth(baseURL string) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		h, err := fetchHealth(baseURL)
		metrics, metricsErr := fetchMetricsRaw(baseURL)
		fmt.Print("\033[H\033[2J")
		if err != nil {
			fmt.Println("gatewayctl: ", err)
		} else {
			fmt.Println(renderStatus(baseURL, h, metricsErr, metrics))
		}
		<-ticker.C
	}
}
