// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package httpserver

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_FallsBackWhenPortOccupied(t *testing.T) {
	occupied, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer occupied.Close()
	occupiedPort := occupied.Addr().(*net.TCPAddr).Port

	rt := NewRouter()
	srv := NewServer(rt, nil)
	savedFallback := FallbackPorts
	FallbackPorts = []int{occupiedPort + 1}
	defer func() { FallbackPorts = savedFallback }()

	require.NoError(t, srv.Start(occupiedPort))
	defer srv.Stop()

	assert.True(t, srv.Running())
	assert.Equal(t, occupiedPort+1, srv.Port())
	assert.Empty(t, srv.LastError())
}

func TestServer_StartIsIdempotent(t *testing.T) {
	rt := NewRouter()
	srv := NewServer(rt, nil)
	require.NoError(t, srv.Start(0))
	defer srv.Stop()
	firstPort := srv.Port()

	require.NoError(t, srv.Start(0))
	assert.Equal(t, firstPort, srv.Port())
}

func TestServer_StopThenNotRunning(t *testing.T) {
	rt := NewRouter()
	srv := NewServer(rt, nil)
	require.NoError(t, srv.Start(0))
	require.NoError(t, srv.Stop())
	assert.False(t, srv.Running())
}

func TestServer_Restart(t *testing.T) {
	rt := NewRouter()
	srv := NewServer(rt, nil)
	require.NoError(t, srv.Start(0))
	port := srv.Port()
	require.NoError(t, srv.Restart())
	assert.True(t, srv.Running())
	assert.Equal(t, port, srv.Port())
	srv.Stop()
}
