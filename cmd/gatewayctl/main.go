// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command gatewayctl is a small terminal client for inspecting a
// running gateway: its debug/health status and, optionally, a live
// watch of both health and Prometheus metrics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var baseURL string

	root := &cobra.Command{
		Use:   "gatewayctl",
		Short: "Inspect a running aigateway instance",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", envOrDefault("GATEWAYCTL_URL", "http://127.0.0.1:11434"),
		"base URL of the gateway to inspect")

	status := &cobra.Command{
		Use:   "status",
		Short: "Print a one-shot health and metrics summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(baseURL)
		},
	}

	health := &cobra.Command{
		Use:   "health",
		Short: "Poll gateway health",
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			if watch {
				return watchHealth(baseURL)
			}
			return runStatus(baseURL)
		},
	}
	health.Flags().Bool("watch", false, "poll continuously instead of printing once")

	root.AddCommand(status, health)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
