// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package generator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	available bool
	text      string
	err       error
	calls     int32
	delay     time.Duration
}

func (s *stubGenerator) Generate(ctx context.Context, instructions, prompt string) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubGenerator) Available(ctx context.Context) bool {
	return s.available
}

func TestFacade_HappyPath(t *testing.T) {
	backend := &stubGenerator{available: true, text: "hello world"}
	f := New(backend, 1)
	out := f.Generate(context.Background(), "be helpful", "say hi")
	assert.Equal(t, "hello world", out)
}

func TestFacade_UnavailableReturnsFallback(t *testing.T) {
	backend := &stubGenerator{available: false}
	f := New(backend, 1)
	out := f.Generate(context.Background(), "", "hi")
	assert.Equal(t, FallbackText, out)
	assert.EqualValues(t, 0, backend.calls)
}

func TestFacade_ErrorReturnsFallback(t *testing.T) {
	backend := &stubGenerator{available: true, err: errors.New("boom")}
	f := New(backend, 1)
	out := f.Generate(context.Background(), "", "hi")
	assert.Equal(t, FallbackText, out)
}

func TestFacade_SerializesAdmission(t *testing.T) {
	backend := &stubGenerator{available: true, text: "ok", delay: 30 * time.Millisecond}
	f := New(backend, 1)

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Generate(context.Background(), "", "hi")
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	require.EqualValues(t, 3, backend.calls)
	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
}

func TestFacade_ContextCancelledAwaitingAdmission(t *testing.T) {
	backend := &stubGenerator{available: true, text: "ok", delay: 50 * time.Millisecond}
	f := New(backend, 1)

	go f.Generate(context.Background(), "", "first")
	time.Sleep(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := f.Generate(ctx, "", "second")
	assert.Equal(t, FallbackText, out)
}
