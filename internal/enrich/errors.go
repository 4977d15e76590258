// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrich

import (
	"errors"
	"fmt"
)

var (
	// ErrTransientFetch is matched by every *TransientFetchError.
	ErrTransientFetch = errors.New("transient fetch failure")

	// ErrMalformedResponse is matched by every *MalformedResponseError.
	ErrMalformedResponse = errors.New("malformed response")
)

// TransientFetchError is a failure worth retrying: a transport error, a
// timeout, HTTP 429, HTTP 5xx or an open circuit breaker.
type TransientFetchError struct {
	ID         int
	Attempt    int
	StatusCode int
	Err        error
}

func (e *TransientFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch movie %d (attempt %d): status %d", e.ID, e.Attempt, e.StatusCode)
	}
	return fmt.Sprintf("fetch movie %d (attempt %d): %v", e.ID, e.Attempt, e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

func (e *TransientFetchError) Is(target error) bool { return target == ErrTransientFetch }

// MalformedResponseError reports a 2xx body that could not be decoded.
type MalformedResponseError struct {
	ID  int
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("decode movie %d: %v", e.ID, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// StatusError is a non-retryable HTTP status such as 401 or 404.
type StatusError struct {
	ID         int
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch movie %d: status %d", e.ID, e.StatusCode)
}

// IsTransient reports whether err should be retried.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientFetch)
}
