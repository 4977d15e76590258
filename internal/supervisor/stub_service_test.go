// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

var errSimulated = errors.New("simulated failure")

// stubService runs until canceled, optionally failing its first fails starts.
type stubService struct {
	name   string
	fails  int32
	starts atomic.Int32
}

func newStubService(name string, fails int32) *stubService {
	return &stubService{name: name, fails: fails}
}

func (s *stubService) Serve(ctx context.Context) error {
	if n := s.starts.Add(1); n <= s.fails {
		return errSimulated
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) Starts() int32 { return s.starts.Load() }

func (s *stubService) String() string { return s.name }
