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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
)

// FallbackPorts is the ordered list of ports the Server Controller tries
// when its configured port is already bound.
var FallbackPorts = []int{11434, 11435, 11436, 11437, 8080}

// Server owns the listener lifecycle: binding with port fallback,
// accepting connections onto their own goroutine, and exposing
// thread-safe status for a companion status tool.
//
// # Thread Safety
//
// All exported methods and accessors may be called concurrently; state
// is guarded by mu.
type Server struct {
	Router *Router
	Log    *slog.Logger

	mu         sync.Mutex
	listener   net.Listener
	running    bool
	port       int
	lastError  string
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewServer returns a Server bound to router. log may be nil, in which
// case slog.Default() is used.
func NewServer(router *Router, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{Router: router, Log: log}
}

// Start binds the listener, trying preferredPort first and then
// FallbackPorts in order. Start is idempotent: calling it while already
// running logs and returns nil without rebinding.
func (s *Server) Start(preferredPort int) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.Log.Info("httpserver: start called while already running", "port", s.port)
		return nil
	}
	s.mu.Unlock()

	candidates := append([]int{preferredPort}, FallbackPorts...)
	var lastErr error
	for _, p := range candidates {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", p))
		if err == nil {
			s.mu.Lock()
			s.listener = ln
			s.port = p
			s.running = true
			s.lastError = ""
			ctx, cancel := context.WithCancel(context.Background())
			s.cancel = cancel
			s.mu.Unlock()

			s.wg.Add(1)
			go s.acceptLoop(ctx, ln)
			s.Log.Info("httpserver: listening", "port", p)
			return nil
		}
		lastErr = err
		if !isAddrInUse(err) {
			break
		}
	}

	if isAddrInUse(lastErr) {
		lastErr = fmt.Errorf("%w: %v", ErrExhausted, lastErr)
	}
	s.mu.Lock()
	s.lastError = lastErr.Error()
	s.mu.Unlock()
	s.Log.Error("httpserver: exhausted port candidates", "err", lastErr)
	return lastErr
}

func isAddrInUse(err error) bool {
	return err != nil && strings.Contains(err.Error(), "address already in use")
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				s.Log.Warn("httpserver: accept error", "err", err)
				return
			}
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			done := make(chan struct{})
			defer close(done)
			go func() {
				select {
				case <-ctx.Done():
					conn.Close()
				case <-done:
				}
			}()
			ServeConn(conn, s.Router, s.Log)
		}()
	}
}

// Stop cancels the listener and waits for in-flight connections to
// finish. Calling Stop when not running is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	ln := s.listener
	cancel := s.cancel
	s.running = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	if ln != nil {
		err = ln.Close()
	}
	s.wg.Wait()
	return err
}

// Restart stops the server, if running, and starts it again on the last
// bound port. If the server never bound, that port is 0 and the OS
// assigns a free one.
func (s *Server) Restart() error {
	s.mu.Lock()
	port := s.port
	s.mu.Unlock()
	if err := s.Stop(); err != nil {
		return err
	}
	return s.Start(port)
}

// Running reports whether the listener is currently accepting
// connections.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Port returns the currently bound port, or 0 if never bound.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// LastError returns the most recent start failure, or "" if the last
// start attempt succeeded.
func (s *Server) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ErrExhausted is returned when every candidate port, preferred plus
// fallback, failed to bind.
var ErrExhausted = errors.New("httpserver: no candidate port available")
